package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-pacs-sync/models"
)

// memoryRunRepository keeps the most recent runs in process memory. It
// backs the status API when no ledger database is configured.
type memoryRunRepository struct {
	mu       sync.RWMutex
	capacity int
	runs     []models.SyncRun
	ids      map[string]struct{}
}

// NewMemoryRunRepository returns a [RunRepository] remembering at most
// capacity runs; older runs are evicted first.
func NewMemoryRunRepository(capacity int) RunRepository {
	if capacity <= 0 {
		capacity = maxRecentRuns
	}
	return &memoryRunRepository{
		capacity: capacity,
		ids:      make(map[string]struct{}),
	}
}

func (m *memoryRunRepository) SaveRun(_ context.Context, run models.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ids[run.RunID]; ok {
		return ErrRunAlreadyRecorded
	}

	run.Failures = slices.Clone(run.Failures)
	m.runs = append(m.runs, run)
	m.ids[run.RunID] = struct{}{}

	if over := len(m.runs) - m.capacity; over > 0 {
		for _, old := range m.runs[:over] {
			delete(m.ids, old.RunID)
		}
		m.runs = slices.Clone(m.runs[over:])
	}
	return nil
}

func (m *memoryRunRepository) RecentRuns(_ context.Context, limit int) ([]models.SyncRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = defaultRecentRuns
	}
	limit = min(limit, len(m.runs))

	out := make([]models.SyncRun, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		run := m.runs[i]
		run.Failures = slices.Clone(run.Failures)
		out = append(out, run)
	}
	return out, nil
}
