package repository

import (
	"context"

	"github.com/smpregistry/inspections_backend/models"
)

// PlannedInspectionRepository is the persistence capability the query
// layer and the import pipeline are written against. A missing record
// is reported as a nil result (or false on Delete), not as an error;
// the error return carries infrastructure faults only. Validation
// failures come back as a {field: message} map.
type PlannedInspectionRepository interface {
	Search(ctx context.Context, filters models.InspectionFilters, limit, offset int) ([]*models.InspectionWithSmp, int, error)
	FindWithSmp(ctx context.Context, id int) (*models.InspectionWithSmp, error)
	FindById(ctx context.Context, id int) (*models.PlannedInspection, error)
	FindByInspectionNumber(ctx context.Context, number string) (*models.PlannedInspection, error)
	Authorities(ctx context.Context) ([]string, error)
	NextInspectionNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, input *models.NewPlannedInspection) (*models.InspectionWithSmp, map[string]string, error)
	Update(ctx context.Context, id int, input *models.NewPlannedInspection) (*models.InspectionWithSmp, map[string]string, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// SmpRepository is the business-entity directory.
type SmpRepository interface {
	FindById(ctx context.Context, id int) (*models.Smp, error)
	FindByInn(ctx context.Context, inn string) (*models.Smp, error)
	Create(ctx context.Context, input *models.NewSmp) (*models.Smp, error)
	Search(ctx context.Context, term string, limit int) ([]*models.Smp, error)
	All(ctx context.Context) ([]*models.Smp, error)
}
