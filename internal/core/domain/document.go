package domain

import (
	"errors"
	"time"
)

// DocumentStatus represents the lifecycle state of a claim document.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[DocumentStatus][]DocumentStatus{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IncidentType classifies the cause of a claim. The labels match the values
// the declaration forms are filed under, hence the French spelling.
type IncidentType string

const (
	IncidentTheft       IncidentType = "VOL"
	IncidentVandalism   IncidentType = "VANDALISM"
	IncidentWaterDamage IncidentType = "DEGAT DES EAUX"
)

// IsValid reports whether the incident type belongs to the closed enumeration.
func (t IncidentType) IsValid() bool {
	switch t {
	case IncidentTheft, IncidentVandalism, IncidentWaterDamage:
		return true
	}
	return false
}

// RequiresComplaint reports whether the incident type requires filing a
// depot de plainte in addition to the declaration.
func (t IncidentType) RequiresComplaint() bool {
	return t == IncidentTheft || t == IncidentVandalism
}

// GeneratedDocType tags the kind of output artifact produced for a claim.
type GeneratedDocType string

const (
	DocTypeDeclaration GeneratedDocType = "declaration"
	DocTypeComplaint   GeneratedDocType = "depot_de_plainte"
)

const (
	LanguageFrench = "fr"
	LanguageArabic = "ar"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("token is not valid")
var ErrAccessDenied = errors.New("access denied")
var ErrDocumentNotFound = errors.New("document not found")
var ErrDocumentNotPending = errors.New("document is not pending")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrExtractionFailed = errors.New("text extraction failed")
var ErrGenerationFailed = errors.New("document generation failed")
var ErrValidation = errors.New("invalid document metadata")

// ExtractedData holds the structured fields parsed from a document's raw text.
// Field presence varies by incident type: theft claims carry the stolen items
// and perpetrator fields, water damage claims usually do not.
type ExtractedData struct {
	Date            string `json:"date,omitempty" bson:"date,omitempty"`
	Location        string `json:"location,omitempty" bson:"location,omitempty"`
	Description     string `json:"description,omitempty" bson:"description,omitempty"`
	StolenItems     string `json:"stolen_items,omitempty" bson:"stolen_items,omitempty"`
	PerpetratorInfo string `json:"perpetrator_info,omitempty" bson:"perpetrator_info,omitempty"`
}

// GeneratedDocument is one output artifact produced by the generation stage.
type GeneratedDocument struct {
	Type        GeneratedDocType `json:"type" bson:"type"`
	FilePath    string           `json:"file_path" bson:"file_path"`
	GeneratedAt time.Time        `json:"generated_at" bson:"generated_at"`
}

// StatusHistoryEntry records a single status transition on a document.
type StatusHistoryEntry struct {
	Status    DocumentStatus `json:"status" bson:"status"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Notes     string         `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Document is the core aggregate root: one uploaded claim file and everything
// derived from it.
type Document struct {
	ID                 string               `json:"id" bson:"_id,omitempty"`
	OriginalFilename   string               `json:"original_filename" bson:"original_filename"`
	FilePath           string               `json:"file_path" bson:"file_path"`
	FileSize           int64                `json:"file_size" bson:"file_size"`
	FileType           string               `json:"file_type" bson:"file_type"`
	Language           string               `json:"language" bson:"language"`
	IncidentType       IncidentType         `json:"incident_type" bson:"incident_type"`
	UploadedBy         string               `json:"uploaded_by" bson:"uploaded_by"`
	Status             DocumentStatus       `json:"status" bson:"status"`
	ExtractedText      string               `json:"extracted_text,omitempty" bson:"extracted_text,omitempty"`
	ExtractedData      *ExtractedData       `json:"extracted_data,omitempty" bson:"extracted_data,omitempty"`
	GeneratedDocuments []GeneratedDocument  `json:"generated_documents" bson:"generated_documents"`
	StatusHistory      []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	UploadedAt         time.Time            `json:"uploaded_at" bson:"uploaded_at"`
	UpdatedAt          time.Time            `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether the given caller may read or mutate this document.
// Admins have access to every document.
func (d *Document) OwnedBy(userID string, role Role) bool {
	return role == RoleAdmin || d.UploadedBy == userID
}
