package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"jobtion/pkg/tracker"
)

// JobRepository is the in-memory fallback used when DATABASE_URL is unset,
// and by tests. Single-process only; contents vanish on restart.
type JobRepository struct {
	mu   sync.RWMutex
	recs map[uuid.UUID]tracker.JobRecord
}

func NewJobRepository() *JobRepository {
	return &JobRepository{recs: make(map[uuid.UUID]tracker.JobRecord)}
}

func (r *JobRepository) Create(ctx context.Context, rec tracker.JobRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.ID] = rec
	return nil
}

func (r *JobRepository) Update(ctx context.Context, rec tracker.JobRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recs[rec.ID]; !ok {
		return tracker.ErrNotFound
	}
	r.recs[rec.ID] = rec
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (tracker.JobRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return tracker.JobRecord{}, tracker.ErrNotFound
	}
	return rec, nil
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]tracker.JobRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := make([]tracker.JobRecord, 0, len(r.recs))
	for _, rec := range r.recs {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].UpdatedAt.After(recs[j].UpdatedAt) })
	if offset >= len(recs) {
		return []tracker.JobRecord{}, nil
	}
	recs = recs[offset:]
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recs[id]; !ok {
		return tracker.ErrNotFound
	}
	delete(r.recs, id)
	return nil
}

var _ tracker.Repository = (*JobRepository)(nil)
