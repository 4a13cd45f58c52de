package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"donorcheck/internal/inspection/models"
)

// InMemoryStore keeps records in process memory. It backs unit tests and
// local development; production uses the Postgres store.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.InspectionRecord
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]models.InspectionRecord),
		now:     time.Now,
	}
}

// WithClock overrides the store clock. Test hook.
func (s *InMemoryStore) WithClock(now func() time.Time) *InMemoryStore {
	s.now = now
	return s
}

func (s *InMemoryStore) Insert(_ context.Context, record models.InspectionRecord) (models.InspectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	record.ID = uuid.NewString()
	record.SubmissionTime = now
	record.CreatedAt = now
	s.records[record.ID] = record
	return record, nil
}

func (s *InMemoryStore) QueryRecent(_ context.Context, filter RecentFilter) ([]models.InspectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var out []models.InspectionRecord
	for _, r := range s.records {
		if !r.FormDate.Equal(filter.FormDate) || r.InspectorName != filter.InspectorName {
			continue
		}
		out = append(out, r)
	}
	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) FetchByID(_ context.Context, id string) (models.InspectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return models.InspectionRecord{}, ErrNotFound
	}
	return r, nil
}

func (s *InMemoryStore) Update(_ context.Context, id string, record models.InspectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	// Identity and creation metadata are immutable across updates.
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	record.SubmissionTime = existing.SubmissionTime
	s.records[id] = record
	return nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]models.InspectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.InspectionRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(records []models.InspectionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmissionTime.After(records[j].SubmissionTime)
	})
}
