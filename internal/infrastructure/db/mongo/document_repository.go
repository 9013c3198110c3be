package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

const documentsCollection = "documents"

type DocumentRepository struct {
	coll *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{coll: db.Collection(documentsCollection)}
}

type mongoDocument struct {
	ID                 primitive.ObjectID          `bson:"_id,omitempty"`
	OriginalFilename   string                      `bson:"original_filename"`
	FilePath           string                      `bson:"file_path"`
	FileSize           int64                       `bson:"file_size"`
	FileType           string                      `bson:"file_type"`
	Language           string                      `bson:"language"`
	IncidentType       string                      `bson:"incident_type"`
	UploadedBy         string                      `bson:"uploaded_by"`
	Status             string                      `bson:"status"`
	ExtractedText      string                      `bson:"extracted_text,omitempty"`
	ExtractedData      *domain.ExtractedData       `bson:"extracted_data,omitempty"`
	GeneratedDocuments []domain.GeneratedDocument  `bson:"generated_documents"`
	StatusHistory      []domain.StatusHistoryEntry `bson:"status_history"`
	UploadedAt         time.Time                   `bson:"uploaded_at"`
	UpdatedAt          time.Time                   `bson:"updated_at"`
}

func (md *mongoDocument) toDomain() *domain.Document {
	return &domain.Document{
		ID:                 md.ID.Hex(),
		OriginalFilename:   md.OriginalFilename,
		FilePath:           md.FilePath,
		FileSize:           md.FileSize,
		FileType:           md.FileType,
		Language:           md.Language,
		IncidentType:       domain.IncidentType(md.IncidentType),
		UploadedBy:         md.UploadedBy,
		Status:             domain.DocumentStatus(md.Status),
		ExtractedText:      md.ExtractedText,
		ExtractedData:      md.ExtractedData,
		GeneratedDocuments: md.GeneratedDocuments,
		StatusHistory:      md.StatusHistory,
		UploadedAt:         md.UploadedAt,
		UpdatedAt:          md.UpdatedAt,
	}
}

func fromDomain(doc *domain.Document) *mongoDocument {
	return &mongoDocument{
		OriginalFilename:   doc.OriginalFilename,
		FilePath:           doc.FilePath,
		FileSize:           doc.FileSize,
		FileType:           doc.FileType,
		Language:           doc.Language,
		IncidentType:       string(doc.IncidentType),
		UploadedBy:         doc.UploadedBy,
		Status:             string(doc.Status),
		ExtractedText:      doc.ExtractedText,
		ExtractedData:      doc.ExtractedData,
		GeneratedDocuments: doc.GeneratedDocuments,
		StatusHistory:      doc.StatusHistory,
		UploadedAt:         doc.UploadedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, fromDomain(doc))
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	created := *doc
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return md.toDomain(), nil
}

// List returns documents uploaded by ownerID, newest first. An empty ownerID
// returns every document (admin view).
func (r *DocumentRepository) List(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["uploaded_by"] = ownerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []*domain.Document{}
	for cursor.Next(ctx) {
		var md mongoDocument
		if err := cursor.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, md.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// TransitionStatus atomically moves a document between statuses and appends a
// history entry. The filter on the current status is what makes concurrent
// processing runs mutually exclusive.
func (r *DocumentRepository) TransitionStatus(ctx context.Context, id string, from, to domain.DocumentStatus, notes string) error {
	if !from.CanTransitionTo(to) {
		return domain.ErrInvalidTransition
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDocumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{
			"$set": bson.M{"status": string(to), "updated_at": now},
			"$push": bson.M{"status_history": domain.StatusHistoryEntry{
				Status:    to,
				Timestamp: now,
				Notes:     notes,
			}},
		},
	)
	if err != nil {
		return fmt.Errorf("transition status: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.classifyMissedTransition(ctx, oid)
	}
	return nil
}

// SaveResults persists the outcome of a processing run and the terminal
// status in a single atomic update, guarded on the processing status.
func (r *DocumentRepository) SaveResults(ctx context.Context, id string, text string, data *domain.ExtractedData, generated []domain.GeneratedDocument, to domain.DocumentStatus, notes string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDocumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.StatusProcessing)},
		bson.M{
			"$set": bson.M{
				"status":              string(to),
				"extracted_text":      text,
				"extracted_data":      data,
				"generated_documents": generated,
				"updated_at":          now,
			},
			"$push": bson.M{"status_history": domain.StatusHistoryEntry{
				Status:    to,
				Timestamp: now,
				Notes:     notes,
			}},
		},
	)
	if err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.classifyMissedTransition(ctx, oid)
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDocumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// classifyMissedTransition distinguishes a vanished document from one whose
// status no longer matches the expected value.
func (r *DocumentRepository) classifyMissedTransition(ctx context.Context, oid primitive.ObjectID) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("classify transition: %w", err)
	}
	if count == 0 {
		return domain.ErrDocumentNotFound
	}
	return domain.ErrDocumentNotPending
}

// EnsureIndexes creates the indexes backing ownership-scoped listing.
func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uploaded_by", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
