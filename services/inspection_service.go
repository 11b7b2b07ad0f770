package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/smpregistry/inspections_backend/models"
	"github.com/smpregistry/inspections_backend/repository"
	"github.com/smpregistry/inspections_backend/utils"
)

// InspectionService holds the query/upsert logic the handlers and the
// import pipeline share. Constructed once and passed in explicitly.
type InspectionService struct {
	repo repository.PlannedInspectionRepository
}

func NewInspectionService(repo repository.PlannedInspectionRepository) *InspectionService {
	return &InspectionService{repo: repo}
}

// List returns one clamped page plus pager/meta blocks.
func (s *InspectionService) List(ctx context.Context, params models.ListParams) (*models.InspectionList, error) {
	params.Clamp()

	rows, total, err := s.repo.Search(ctx, params.Filters, params.PerPage, params.Offset())
	if err != nil {
		return nil, err
	}

	totalPages := models.TotalPages(total, params.PerPage)
	from, to := 0, 0
	if total > 0 {
		from = params.Offset() + 1
		to = params.Offset() + params.PerPage
		if to > total {
			to = total
		}
	}

	return &models.InspectionList{
		Success: true,
		Data:    rows,
		Pager: models.Pager{
			CurrentPage: params.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			PerPage:     params.PerPage,
		},
		Meta: models.ListMeta{
			Total:       total,
			PerPage:     params.PerPage,
			CurrentPage: params.Page,
			LastPage:    totalPages,
			From:        from,
			To:          to,
		},
	}, nil
}

func (s *InspectionService) Find(ctx context.Context, id int) (*models.InspectionWithSmp, error) {
	return s.repo.FindWithSmp(ctx, id)
}

func (s *InspectionService) Authorities(ctx context.Context) ([]string, error) {
	return s.repo.Authorities(ctx)
}

func (s *InspectionService) GenerateInspectionNumber(ctx context.Context) (string, error) {
	return s.repo.NextInspectionNumber(ctx)
}

// Create fills a blank inspection number and defaults the status
// before handing off to the repository.
func (s *InspectionService) Create(ctx context.Context, input *models.NewPlannedInspection) (*models.InspectionWithSmp, map[string]string, error) {
	if strings.TrimSpace(input.InspectionNumber) == "" {
		number, err := s.repo.NextInspectionNumber(ctx)
		if err != nil {
			return nil, nil, err
		}
		input.InspectionNumber = number
	}
	if input.Status == "" {
		input.Status = string(models.InspectionStatusPlanned)
	}
	return s.repo.Create(ctx, input)
}

// Update keeps the record's prior status and notes when the request
// omits them; everything else is overwritten.
func (s *InspectionService) Update(ctx context.Context, id int, input *models.NewPlannedInspection) (*models.InspectionWithSmp, map[string]string, error) {
	existing, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if existing == nil {
		return nil, nil, nil
	}
	if input.Status == "" {
		input.Status = string(existing.Status)
	}
	if input.Notes == nil {
		input.Notes = existing.Notes
	}
	return s.repo.Update(ctx, id, input)
}

func (s *InspectionService) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Upsert actions reported back to the import pipeline.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionSkipped = "skipped"
)

// Upsert is the import-side write path: locate an existing record by
// explicit id (when the file carries one) or by inspection number, then
// update or create. A match with updateExisting=false is skipped rather
// then duplicated.
func (s *InspectionService) Upsert(ctx context.Context, explicitId int, input *models.NewPlannedInspection, updateExisting bool) (string, error) {
	existing, err := s.findExisting(ctx, explicitId, input.InspectionNumber)
	if err != nil {
		return ActionSkipped, err
	}

	if existing != nil {
		if !updateExisting {
			return ActionSkipped, nil
		}
		updated, fieldErrs, err := s.repo.Update(ctx, existing.ID, input)
		if err != nil {
			return ActionSkipped, err
		}
		if len(fieldErrs) > 0 {
			return ActionSkipped, fieldErrorsToError(fieldErrs)
		}
		if updated == nil {
			// Matched record vanished between lookup and update.
			return ActionSkipped, utils.ErrorRecordNotFound
		}
		return ActionUpdated, nil
	}

	_, fieldErrs, err := s.repo.Create(ctx, input)
	if err != nil {
		return ActionSkipped, err
	}
	if len(fieldErrs) > 0 {
		return ActionSkipped, fieldErrorsToError(fieldErrs)
	}
	return ActionCreated, nil
}

func (s *InspectionService) findExisting(ctx context.Context, explicitId int, number string) (*models.PlannedInspection, error) {
	if explicitId > 0 {
		return s.repo.FindById(ctx, explicitId)
	}
	if strings.TrimSpace(number) == "" {
		return nil, nil
	}
	return s.repo.FindByInspectionNumber(ctx, number)
}

func fieldErrorsToError(fieldErrs map[string]string) error {
	msgs := make([]string, 0, len(fieldErrs))
	for _, msg := range fieldErrs {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return errors.New(strings.Join(msgs, "; "))
}
