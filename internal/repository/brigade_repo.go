package repository

import (
	"context"

	"gorm.io/gorm"

	"turnout/backend/internal/model"
)

// BrigadeRepository is the brigade data access interface.
type BrigadeRepository interface {
	Create(ctx context.Context, brigade *model.Brigade) error
	GetByID(ctx context.Context, id string) (*model.Brigade, error)
	GetBySlug(ctx context.Context, slug string) (*model.Brigade, error)
	Update(ctx context.Context, brigade *model.Brigade) error
}

type brigadeRepo struct {
	db *gorm.DB
}

func NewBrigadeRepo(db *gorm.DB) BrigadeRepository {
	return &brigadeRepo{db: db}
}

func (r *brigadeRepo) Create(ctx context.Context, brigade *model.Brigade) error {
	return r.db.WithContext(ctx).Create(brigade).Error
}

func (r *brigadeRepo) GetByID(ctx context.Context, id string) (*model.Brigade, error) {
	var brigade model.Brigade
	err := r.db.WithContext(ctx).
		Where("brigade_id = ?", id).
		First(&brigade).Error
	if err != nil {
		return nil, err
	}
	return &brigade, nil
}

func (r *brigadeRepo) GetBySlug(ctx context.Context, slug string) (*model.Brigade, error) {
	var brigade model.Brigade
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&brigade).Error
	if err != nil {
		return nil, err
	}
	return &brigade, nil
}

func (r *brigadeRepo) Update(ctx context.Context, brigade *model.Brigade) error {
	return r.db.WithContext(ctx).Save(brigade).Error
}
