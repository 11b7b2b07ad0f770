package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smpregistry/inspections_backend/models"
)

type GormSmpRepository struct {
	db *gorm.DB
}

func NewGormSmpRepository(db *gorm.DB) *GormSmpRepository {
	return &GormSmpRepository{db: db}
}

func (r *GormSmpRepository) FindById(ctx context.Context, id int) (*models.Smp, error) {
	var row models.Smp
	err := r.db.WithContext(ctx).Take(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormSmpRepository) FindByInn(ctx context.Context, inn string) (*models.Smp, error) {
	var row models.Smp
	err := r.db.WithContext(ctx).Where("inn = ?", inn).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormSmpRepository) Create(ctx context.Context, input *models.NewSmp) (*models.Smp, error) {
	row := models.Smp{
		Name:    input.Name,
		Inn:     input.Inn,
		Address: input.Address,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormSmpRepository) Search(ctx context.Context, term string, limit int) ([]*models.Smp, error) {
	var rows []*models.Smp
	q := r.db.WithContext(ctx).Model(&models.Smp{})
	if term != "" {
		like := "%" + term + "%"
		q = q.Where(r.db.Where("name LIKE ?", like).Or("inn LIKE ?", like))
	}
	q = q.Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.Smp{}
	}
	return rows, nil
}

func (r *GormSmpRepository) All(ctx context.Context) ([]*models.Smp, error) {
	var rows []*models.Smp
	err := r.db.WithContext(ctx).Model(&models.Smp{}).
		Select("id", "name", "inn").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.Smp{}
	}
	return rows, nil
}
