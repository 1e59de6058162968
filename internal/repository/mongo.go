package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/entity"
)

const (
	analysesCollection = "analyses"
	emailsCollection   = "emails"
)

type analysisDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	URL       string             `bson:"url"`
	Website   entity.ScrapedSite `bson:"website_data"`
	Analysis  bson.M             `bson:"analysis"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type emailDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	AnalysisID    string               `bson:"analysis_id"`
	Emails        []entity.EmailDraft  `bson:"emails"`
	BusinessInfo  *entity.BusinessInfo `bson:"business_info,omitempty"`
	Opportunity   bson.M               `bson:"opportunity,omitempty"`
	TargetPersona string               `bson:"target_persona"`
	Tone          string               `bson:"tone"`
	CreatedAt     time.Time            `bson:"created_at"`
}

// MongoStore implements Store on two MongoDB collections.
type MongoStore struct {
	client   *mongo.Client
	analyses *mongo.Collection
	emails   *mongo.Collection
	logger   *zap.Logger
	clock    clock
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore binds the store to database and makes sure its indexes exist.
func NewMongoStore(ctx context.Context, client *mongo.Client, database string, logger *zap.Logger) (*MongoStore, error) {
	store := newMongoStore(client, client.Database(database), logger)
	if err := store.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func newMongoStore(client *mongo.Client, db *mongo.Database, logger *zap.Logger) *MongoStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoStore{
		client:   client,
		analyses: db.Collection(analysesCollection),
		emails:   db.Collection(emailsCollection),
		logger:   logger.Named("mongo"),
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	if _, err := s.analyses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create analyses index: %w", err)
	}
	if _, err := s.emails.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "analysis_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create emails index: %w", err)
	}
	return nil
}

func (s *MongoStore) SaveAnalysis(ctx context.Context, record entity.AnalysisRecord) (*entity.AnalysisRecord, error) {
	now := s.clock.now()
	doc := analysisDocument{
		ID:        primitive.NewObjectID(),
		URL:       record.URL,
		Website:   withDefaults(record.Website),
		Analysis:  bson.M(record.Analysis),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.analyses.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert analysis for %s: %w", record.URL, err)
	}

	saved := doc.toEntity()
	if record.Analysis != nil {
		saved.Analysis = record.Analysis
	}
	return &saved, nil
}

func (s *MongoStore) GetAnalysis(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc analysisDocument
	if err := s.analyses.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find analysis %s: %w", id, err)
	}

	record := doc.toEntity()
	return &record, nil
}

func (s *MongoStore) ListAnalyses(ctx context.Context) ([]entity.AnalysisRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(ListLimit)

	cursor, err := s.analyses.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]entity.AnalysisRecord, 0)
	for cursor.Next(ctx) {
		var doc analysisDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode analysis: %w", err)
		}
		records = append(records, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return records, nil
}

func (s *MongoStore) SaveEmail(ctx context.Context, record entity.EmailRecord) (*entity.EmailRecord, error) {
	doc := emailDocument{
		ID:            primitive.NewObjectID(),
		AnalysisID:    record.AnalysisID,
		Emails:        record.Emails,
		BusinessInfo:  record.BusinessInfo,
		TargetPersona: record.TargetPersona,
		Tone:          record.Tone,
		CreatedAt:     s.clock.now(),
	}
	if len(record.Opportunity) > 0 {
		doc.Opportunity = bson.M(record.Opportunity)
	}

	if _, err := s.emails.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert emails for analysis %s: %w", record.AnalysisID, err)
	}

	saved := doc.toEntity()
	saved.Opportunity = record.Opportunity
	return &saved, nil
}

func (s *MongoStore) ListEmails(ctx context.Context, analysisID string) ([]entity.EmailRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.emails.Find(ctx, bson.M{"analysis_id": analysisID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list emails for analysis %s: %w", analysisID, err)
	}
	defer cursor.Close(ctx)

	records := make([]entity.EmailRecord, 0)
	for cursor.Next(ctx) {
		var doc emailDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode emails: %w", err)
		}
		records = append(records, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate emails: %w", err)
	}
	return records, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	s.logger.Info("disconnecting")
	return s.client.Disconnect(ctx)
}

func (d analysisDocument) toEntity() entity.AnalysisRecord {
	record := entity.AnalysisRecord{
		ID:        d.ID.Hex(),
		URL:       d.URL,
		Website:   withDefaults(d.Website),
		Analysis:  entity.AnalysisResult{},
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if m, ok := normalizeBSON(d.Analysis).(map[string]any); ok {
		record.Analysis = m
	}
	return record
}

func (d emailDocument) toEntity() entity.EmailRecord {
	record := entity.EmailRecord{
		ID:            d.ID.Hex(),
		AnalysisID:    d.AnalysisID,
		Emails:        d.Emails,
		BusinessInfo:  d.BusinessInfo,
		TargetPersona: d.TargetPersona,
		Tone:          d.Tone,
		CreatedAt:     d.CreatedAt.UTC(),
	}
	if record.Emails == nil {
		record.Emails = []entity.EmailDraft{}
	}
	if m, ok := normalizeBSON(d.Opportunity).(map[string]any); ok && len(m) > 0 {
		record.Opportunity = m
	}
	return record
}

// normalizeBSON converts decoded BSON containers into plain maps and slices so
// records encode to JSON the same way regardless of the backend.
func normalizeBSON(v any) any {
	switch val := v.(type) {
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeBSON(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeBSON(item)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeBSON(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeBSON(item)
		}
		return out
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	default:
		return v
	}
}
