package services

import (
	"context"
	"strings"

	"github.com/smpregistry/inspections_backend/config"
	"github.com/smpregistry/inspections_backend/models"
	"github.com/smpregistry/inspections_backend/repository"
	"github.com/smpregistry/inspections_backend/utils"
)

type SmpService struct {
	repo repository.SmpRepository
}

func NewSmpService(repo repository.SmpRepository) *SmpService {
	return &SmpService{repo: repo}
}

// FindOrCreateSmp resolves an import row to an SMP id. Precedence:
// explicit id, then INN lookup, then create when both name and INN are
// present. Returns 0 when the row carries no resolvable SMP.
func (s *SmpService) FindOrCreateSmp(ctx context.Context, explicitId int, name, inn, address string) (int, error) {
	if explicitId > 0 {
		smp, err := s.repo.FindById(ctx, explicitId)
		if err != nil {
			return 0, err
		}
		if smp != nil {
			return smp.ID, nil
		}
	}

	inn = strings.TrimSpace(inn)
	name = strings.TrimSpace(name)

	if inn != "" {
		smp, err := s.repo.FindByInn(ctx, inn)
		if err != nil {
			return 0, err
		}
		if smp != nil {
			return smp.ID, nil
		}
	}

	if name == "" || inn == "" {
		return 0, nil
	}

	input := &models.NewSmp{
		Name:    name,
		Inn:     inn,
		Address: utils.NilIfEmpty(strings.TrimSpace(address)),
	}
	created, err := s.repo.Create(ctx, input)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// Search returns an empty slice for a blank term instead of the whole
// directory. The limit is clamped to the configured cap.
func (s *SmpService) Search(ctx context.Context, term string, limit int) ([]*models.Smp, error) {
	if strings.TrimSpace(term) == "" {
		return []*models.Smp{}, nil
	}
	if limit <= 0 || limit > config.SearchLimit {
		limit = config.SearchLimit
	}
	return s.repo.Search(ctx, term, limit)
}

func (s *SmpService) Dropdown(ctx context.Context) ([]*models.Smp, error) {
	return s.repo.All(ctx)
}

func (s *SmpService) Find(ctx context.Context, id int) (*models.Smp, error) {
	return s.repo.FindById(ctx, id)
}

func (s *SmpService) Create(ctx context.Context, input *models.NewSmp) (*models.Smp, error) {
	return s.repo.Create(ctx, input)
}
