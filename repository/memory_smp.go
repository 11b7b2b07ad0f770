package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/smpregistry/inspections_backend/models"
)

// MemorySmpRepository keeps the directory in process memory. It backs
// tests and lets the import pipeline run without a database.
type MemorySmpRepository struct {
	mu     sync.RWMutex
	nextId int
	rows   map[int]*models.Smp
}

func NewMemorySmpRepository() *MemorySmpRepository {
	return &MemorySmpRepository{nextId: 1, rows: map[int]*models.Smp{}}
}

func (r *MemorySmpRepository) FindById(_ context.Context, id int) (*models.Smp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *MemorySmpRepository) FindByInn(_ context.Context, inn string) (*models.Smp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.Inn == inn {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MemorySmpRepository) Create(_ context.Context, input *models.NewSmp) (*models.Smp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	row := &models.Smp{
		ID:        r.nextId,
		Name:      input.Name,
		Inn:       input.Inn,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.rows[row.ID] = row
	r.nextId++
	clone := *row
	return &clone, nil
}

func (r *MemorySmpRepository) Search(_ context.Context, term string, limit int) ([]*models.Smp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	term = strings.ToLower(term)
	var out []*models.Smp
	for _, row := range r.rows {
		if term != "" &&
			!strings.Contains(strings.ToLower(row.Name), term) &&
			!strings.Contains(strings.ToLower(row.Inn), term) {
			continue
		}
		clone := *row
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []*models.Smp{}
	}
	return out, nil
}

func (r *MemorySmpRepository) All(ctx context.Context) ([]*models.Smp, error) {
	return r.Search(ctx, "", 0)
}
