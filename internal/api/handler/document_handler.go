package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Rami23dz/insurance-claims-api/internal/api/metrics"
	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
)

// DocumentHandler handles HTTP requests for claim document operations.
type DocumentHandler struct {
	docService ports.DocumentService
	processor  ports.ProcessorService
}

func NewDocumentHandler(docService ports.DocumentService, processor ports.ProcessorService) *DocumentHandler {
	return &DocumentHandler{docService: docService, processor: processor}
}

type uploadDocumentForm struct {
	Language     string `form:"language" validate:"required,oneof=fr ar"`
	IncidentType string `form:"incidentType" validate:"required"`
}

// Upload accepts a multipart claim file with its metadata.
//
// @Summary      Upload a claim document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        x-auth-token  header    string  true  "Auth token"
// @Param        file          formData  file    true  "Claim PDF"
// @Param        language      formData  string  true  "Document language (fr or ar)"
// @Param        incidentType  formData  string  true  "Incident classification"
// @Success      201  {object}  domain.Document
// @Failure      400  {object}  map[string]string
// @Router       /api/documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var form uploadDocumentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	doc, err := h.docService.Upload(c.Request().Context(), ports.UploadDocumentInput{
		OriginalFilename: fileHeader.Filename,
		FileType:         fileHeader.Header.Get("Content-Type"),
		Language:         form.Language,
		IncidentType:     domain.IncidentType(form.IncidentType),
		Content:          src,
	}, caller)
	if err != nil {
		return err
	}

	metrics.DocumentsUploadedTotal.WithLabelValues(string(doc.IncidentType)).Inc()

	return c.JSON(http.StatusCreated, doc)
}

// List returns the caller's documents, or every document for admins.
//
// @Summary      List claim documents
// @Tags         documents
// @Produce      json
// @Param        x-auth-token  header  string  true  "Auth token"
// @Success      200  {array}  domain.Document
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	docs, err := h.docService.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []*domain.Document{}
	}
	return c.JSON(http.StatusOK, docs)
}

// Get returns a single document by id.
//
// @Summary      Get a claim document
// @Tags         documents
// @Produce      json
// @Param        x-auth-token  header  string  true  "Auth token"
// @Param        id            path    string  true  "Document id"
// @Success      200  {object}  domain.Document
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	doc, err := h.docService.Get(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Process runs the extraction and generation pipeline for one document.
//
// @Summary      Process a claim document
// @Tags         documents
// @Produce      json
// @Param        x-auth-token  header  string  true  "Auth token"
// @Param        id            path    string  true  "Document id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/documents/{id}/process [post]
func (h *DocumentHandler) Process(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	start := time.Now()
	doc, err := h.processor.Process(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		if stage, processed := failureStage(err); processed {
			metrics.ProcessingErrorsTotal.WithLabelValues(stage).Inc()
			metrics.DocumentsProcessedTotal.WithLabelValues("unknown", "failed").Inc()
		}
		return err
	}

	metrics.DocumentsProcessedTotal.WithLabelValues(string(doc.IncidentType), "completed").Inc()
	metrics.ProcessingDuration.WithLabelValues(string(doc.IncidentType)).Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, map[string]string{"message": "Document processed successfully"})
}

// Delete removes a document, its backing file, and generated artifacts.
//
// @Summary      Delete a claim document
// @Tags         documents
// @Produce      json
// @Param        x-auth-token  header  string  true  "Auth token"
// @Param        id            path    string  true  "Document id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.docService.Delete(c.Request().Context(), c.Param("id"), caller); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Document removed"})
}

// failureStage classifies a processing error into a pipeline stage for the
// error counter. Pre-run rejections (not found, conflict, access) are not
// processing failures and are not counted.
func failureStage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrExtractionFailed):
		return "extraction", true
	case errors.Is(err, domain.ErrGenerationFailed):
		return "generation", true
	case errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrDocumentNotPending),
		errors.Is(err, domain.ErrAccessDenied):
		return "", false
	}
	return "persist", true
}
