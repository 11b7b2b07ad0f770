package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/smpregistry/inspections_backend/models"
)

const (
	inspectionsTable = "planned_inspections"
	smpTable         = "smp"
)

// GormInspectionRepository is the MySQL-backed implementation.
type GormInspectionRepository struct {
	db *gorm.DB

	// now is swappable so number generation is testable.
	now func() time.Time
}

func NewGormInspectionRepository(db *gorm.DB) *GormInspectionRepository {
	return &GormInspectionRepository{db: db, now: time.Now}
}

func (r *GormInspectionRepository) joinedQuery(ctx context.Context) (*gorm.DB, bool) {
	hasSmp := r.db.Migrator().HasTable(smpTable)
	q := r.db.WithContext(ctx).Table(inspectionsTable + " AS pi")
	if hasSmp {
		q = q.Select("pi.*, s.name AS smp_name, s.inn AS smp_inn, s.address AS smp_address").
			Joins("LEFT JOIN " + smpTable + " s ON s.id = pi.smp_id")
	} else {
		q = q.Select("pi.*")
	}
	return q, hasSmp
}

func (r *GormInspectionRepository) Search(ctx context.Context, filters models.InspectionFilters, limit, offset int) ([]*models.InspectionWithSmp, int, error) {
	if !r.db.Migrator().HasTable(inspectionsTable) {
		return []*models.InspectionWithSmp{}, 0, nil
	}

	q, hasSmp := r.joinedQuery(ctx)

	if filters.Q != "" {
		like := "%" + filters.Q + "%"
		group := r.db.Where("pi.inspection_number LIKE ?", like).
			Or("pi.controlling_authority LIKE ?", like)
		if hasSmp {
			group = group.Or("s.name LIKE ?", like).Or("s.inn LIKE ?", like)
		}
		q = q.Where(group)
	}
	if filters.SmpName != "" && hasSmp {
		q = q.Where("s.name LIKE ?", "%"+filters.SmpName+"%")
	}
	if filters.ControllingAuthority != "" {
		q = q.Where("pi.controlling_authority LIKE ?", "%"+filters.ControllingAuthority+"%")
	}
	if filters.Status != "" {
		q = q.Where("pi.status = ?", filters.Status)
	}
	if filters.StartDate != "" {
		q = q.Where("pi.start_date >= ?", filters.StartDate)
	}
	if filters.EndDate != "" {
		q = q.Where("pi.end_date <= ?", filters.EndDate)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("pi.start_date DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rows []*models.InspectionWithSmp
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []*models.InspectionWithSmp{}
	}
	return rows, int(total), nil
}

func (r *GormInspectionRepository) FindWithSmp(ctx context.Context, id int) (*models.InspectionWithSmp, error) {
	q, _ := r.joinedQuery(ctx)
	var row models.InspectionWithSmp
	err := q.Where("pi.id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormInspectionRepository) FindById(ctx context.Context, id int) (*models.PlannedInspection, error) {
	var row models.PlannedInspection
	err := r.db.WithContext(ctx).Take(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormInspectionRepository) FindByInspectionNumber(ctx context.Context, number string) (*models.PlannedInspection, error) {
	var row models.PlannedInspection
	err := r.db.WithContext(ctx).Where("inspection_number = ?", number).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormInspectionRepository) Authorities(ctx context.Context) ([]string, error) {
	if !r.db.Migrator().HasTable(inspectionsTable) {
		return []string{}, nil
	}
	var list []string
	err := r.db.WithContext(ctx).Table(inspectionsTable).
		Distinct("controlling_authority").
		Where("controlling_authority IS NOT NULL").
		Where("TRIM(controlling_authority) != ''").
		Order("controlling_authority ASC").
		Pluck("controlling_authority", &list).Error
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (r *GormInspectionRepository) NextInspectionNumber(ctx context.Context) (string, error) {
	prefix := InspectionNumberPrefix(r.now())
	var last models.PlannedInspection
	err := r.db.WithContext(ctx).
		Where("inspection_number LIKE ?", prefix+"%").
		Order("inspection_number DESC").
		Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NextSequenceNumber(prefix, ""), nil
	}
	if err != nil {
		return "", err
	}
	return NextSequenceNumber(prefix, last.InspectionNumber), nil
}

func (r *GormInspectionRepository) Create(ctx context.Context, input *models.NewPlannedInspection) (*models.InspectionWithSmp, map[string]string, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, errs, nil
	}

	row := mapNewInspection(input)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, nil, err
	}
	created, err := r.FindWithSmp(ctx, row.ID)
	return created, nil, err
}

func (r *GormInspectionRepository) Update(ctx context.Context, id int, input *models.NewPlannedInspection) (*models.InspectionWithSmp, map[string]string, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, errs, nil
	}

	existing, err := r.FindById(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if existing == nil {
		return nil, nil, nil
	}

	updates := map[string]interface{}{
		"smp_id":                input.SmpId,
		"controlling_authority": input.ControllingAuthority,
		"start_date":            input.StartDate,
		"end_date":              input.EndDate,
		"planned_duration":      input.PlannedDuration,
		"status":                models.InspectionStatus(input.Status),
		"notes":                 input.Notes,
	}
	if input.InspectionNumber != "" {
		updates["inspection_number"] = input.InspectionNumber
	}

	err = r.db.WithContext(ctx).Model(&models.PlannedInspection{ID: id}).Updates(updates).Error
	if err != nil {
		return nil, nil, err
	}
	updated, err := r.FindWithSmp(ctx, id)
	return updated, nil, err
}

func (r *GormInspectionRepository) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.PlannedInspection{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func mapNewInspection(input *models.NewPlannedInspection) *models.PlannedInspection {
	smpId := input.SmpId
	return &models.PlannedInspection{
		SmpId:                &smpId,
		InspectionNumber:     input.InspectionNumber,
		ControllingAuthority: input.ControllingAuthority,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		PlannedDuration:      input.PlannedDuration,
		Status:               models.InspectionStatus(input.Status),
		Notes:                input.Notes,
	}
}
