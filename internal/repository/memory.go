package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/moatezLita/salesGPT/internal/entity"
)

// MemoryStore keeps records in process memory. It is meant for local runs
// and tests; nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]storedAnalysis
	emails   []entity.EmailRecord
	seq      uint64
	clock    clock
}

// storedAnalysis carries the insertion sequence used to order records that
// share a creation timestamp.
type storedAnalysis struct {
	record entity.AnalysisRecord
	seq    uint64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{analyses: make(map[string]storedAnalysis)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) SaveAnalysis(_ context.Context, record entity.AnalysisRecord) (*entity.AnalysisRecord, error) {
	now := s.clock.now()
	record.ID = uuid.NewString()
	record.Website = withDefaults(record.Website)
	record.CreatedAt = now
	record.UpdatedAt = now

	s.mu.Lock()
	s.seq++
	s.analyses[record.ID] = storedAnalysis{record: record, seq: s.seq}
	s.mu.Unlock()

	return &record, nil
}

func (s *MemoryStore) GetAnalysis(_ context.Context, id string) (*entity.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.analyses[id]
	if !ok {
		return nil, ErrNotFound
	}
	record := stored.record
	return &record, nil
}

func (s *MemoryStore) ListAnalyses(_ context.Context) ([]entity.AnalysisRecord, error) {
	s.mu.RLock()
	stored := make([]storedAnalysis, 0, len(s.analyses))
	for _, entry := range s.analyses {
		stored = append(stored, entry)
	}
	s.mu.RUnlock()

	sort.Slice(stored, func(i, j int) bool {
		a, b := stored[i], stored[j]
		if a.record.CreatedAt.Equal(b.record.CreatedAt) {
			return a.seq > b.seq
		}
		return a.record.CreatedAt.After(b.record.CreatedAt)
	})
	if len(stored) > ListLimit {
		stored = stored[:ListLimit]
	}

	records := make([]entity.AnalysisRecord, len(stored))
	for i, entry := range stored {
		records[i] = entry.record
	}
	return records, nil
}

func (s *MemoryStore) SaveEmail(_ context.Context, record entity.EmailRecord) (*entity.EmailRecord, error) {
	record.ID = uuid.NewString()
	record.CreatedAt = s.clock.now()

	s.mu.Lock()
	s.emails = append(s.emails, record)
	s.mu.Unlock()

	return &record, nil
}

func (s *MemoryStore) ListEmails(_ context.Context, analysisID string) ([]entity.EmailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := []entity.EmailRecord{}
	for _, record := range s.emails {
		if record.AnalysisID == analysisID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }
