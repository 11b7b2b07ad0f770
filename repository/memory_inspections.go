package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/smpregistry/inspections_backend/models"
)

// MemoryInspectionRepository mirrors the MySQL repository semantics in
// process memory, including the left-join presentation of SMP fields.
type MemoryInspectionRepository struct {
	mu     sync.RWMutex
	nextId int
	rows   map[int]*models.PlannedInspection
	smps   *MemorySmpRepository

	// Now is swappable so number generation is testable.
	Now func() time.Time
}

func NewMemoryInspectionRepository(smps *MemorySmpRepository) *MemoryInspectionRepository {
	return &MemoryInspectionRepository{
		nextId: 1,
		rows:   map[int]*models.PlannedInspection{},
		smps:   smps,
		Now:    time.Now,
	}
}

func (r *MemoryInspectionRepository) withSmp(ctx context.Context, row *models.PlannedInspection) *models.InspectionWithSmp {
	out := &models.InspectionWithSmp{PlannedInspection: *row}
	if row.SmpId != nil && r.smps != nil {
		smp, _ := r.smps.FindById(ctx, *row.SmpId)
		if smp != nil {
			out.SmpName = &smp.Name
			inn := smp.Inn
			out.SmpInn = &inn
			out.SmpAddress = smp.Address
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *MemoryInspectionRepository) matches(ctx context.Context, row *models.PlannedInspection, filters models.InspectionFilters) bool {
	joined := r.withSmp(ctx, row)
	smpName := ""
	smpInn := ""
	if joined.SmpName != nil {
		smpName = *joined.SmpName
	}
	if joined.SmpInn != nil {
		smpInn = *joined.SmpInn
	}

	if filters.Q != "" {
		q := filters.Q
		if !containsFold(row.InspectionNumber, q) &&
			!containsFold(smpName, q) &&
			!containsFold(smpInn, q) &&
			!containsFold(row.ControllingAuthority, q) {
			return false
		}
	}
	if filters.SmpName != "" && !containsFold(smpName, filters.SmpName) {
		return false
	}
	if filters.ControllingAuthority != "" && !containsFold(row.ControllingAuthority, filters.ControllingAuthority) {
		return false
	}
	if filters.Status != "" && string(row.Status) != filters.Status {
		return false
	}
	if filters.StartDate != "" && row.StartDate < filters.StartDate {
		return false
	}
	if filters.EndDate != "" && row.EndDate > filters.EndDate {
		return false
	}
	return true
}

func (r *MemoryInspectionRepository) Search(ctx context.Context, filters models.InspectionFilters, limit, offset int) ([]*models.InspectionWithSmp, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.PlannedInspection
	for _, row := range r.rows {
		if r.matches(ctx, row, filters) {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].StartDate != matched[j].StartDate {
			return matched[i].StartDate > matched[j].StartDate
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if limit > 0 {
		if offset >= len(matched) {
			matched = nil
		} else {
			end := offset + limit
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[offset:end]
		}
	}

	out := make([]*models.InspectionWithSmp, 0, len(matched))
	for _, row := range matched {
		out = append(out, r.withSmp(ctx, row))
	}
	return out, total, nil
}

func (r *MemoryInspectionRepository) FindWithSmp(ctx context.Context, id int) (*models.InspectionWithSmp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return r.withSmp(ctx, row), nil
}

func (r *MemoryInspectionRepository) FindById(_ context.Context, id int) (*models.PlannedInspection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *MemoryInspectionRepository) FindByInspectionNumber(_ context.Context, number string) (*models.PlannedInspection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.InspectionNumber == number {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MemoryInspectionRepository) Authorities(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	var list []string
	for _, row := range r.rows {
		authority := strings.TrimSpace(row.ControllingAuthority)
		if authority == "" || seen[authority] {
			continue
		}
		seen[authority] = true
		list = append(list, authority)
	}
	sort.Strings(list)
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (r *MemoryInspectionRepository) NextInspectionNumber(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefix := InspectionNumberPrefix(r.Now())
	last := ""
	for _, row := range r.rows {
		if strings.HasPrefix(row.InspectionNumber, prefix) && row.InspectionNumber > last {
			last = row.InspectionNumber
		}
	}
	return NextSequenceNumber(prefix, last), nil
}

func (r *MemoryInspectionRepository) Create(ctx context.Context, input *models.NewPlannedInspection) (*models.InspectionWithSmp, map[string]string, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, errs, nil
	}

	r.mu.Lock()
	now := time.Now()
	row := mapNewInspection(input)
	row.ID = r.nextId
	row.CreatedAt = now
	row.UpdatedAt = now
	r.rows[row.ID] = row
	r.nextId++
	r.mu.Unlock()

	created, err := r.FindWithSmp(ctx, row.ID)
	return created, nil, err
}

func (r *MemoryInspectionRepository) Update(ctx context.Context, id int, input *models.NewPlannedInspection) (*models.InspectionWithSmp, map[string]string, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, errs, nil
	}

	r.mu.Lock()
	row, ok := r.rows[id]
	if !ok {
		r.mu.Unlock()
		return nil, nil, nil
	}
	smpId := input.SmpId
	row.SmpId = &smpId
	if input.InspectionNumber != "" {
		row.InspectionNumber = input.InspectionNumber
	}
	row.ControllingAuthority = input.ControllingAuthority
	row.StartDate = input.StartDate
	row.EndDate = input.EndDate
	row.PlannedDuration = input.PlannedDuration
	row.Status = models.InspectionStatus(input.Status)
	row.Notes = input.Notes
	row.UpdatedAt = time.Now()
	r.mu.Unlock()

	updated, err := r.FindWithSmp(ctx, id)
	return updated, nil, err
}

func (r *MemoryInspectionRepository) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}
