package repository

import (
	"context"

	"gorm.io/gorm"

	"turnout/backend/internal/model"
)

// TruckRepository is the truck and position data access interface.
// Readers always fetch fresh rows: trucks and positions can be edited
// by an administrator while a callout is being taken, so nothing here
// is cached across requests.
type TruckRepository interface {
	Create(ctx context.Context, truck *model.Truck) error
	GetByID(ctx context.Context, id string) (*model.Truck, error)
	ListByBrigade(ctx context.Context, brigadeID string) ([]model.Truck, error)
	StationTruck(ctx context.Context, brigadeID string) (*model.Truck, error)
	Update(ctx context.Context, truck *model.Truck) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, brigadeID string, orderedIDs []string) error

	CreatePosition(ctx context.Context, position *model.Position) error
	GetPosition(ctx context.Context, id string) (*model.Position, error)
	UpdatePosition(ctx context.Context, position *model.Position) error
	DeletePosition(ctx context.Context, id string) error
}

type truckRepo struct {
	db *gorm.DB
}

func NewTruckRepo(db *gorm.DB) TruckRepository {
	return &truckRepo{db: db}
}

func (r *truckRepo) Create(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Create(truck).Error
}

func (r *truckRepo) GetByID(ctx context.Context, id string) (*model.Truck, error) {
	var truck model.Truck
	err := r.db.WithContext(ctx).
		Preload("Positions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC, created_at ASC")
		}).
		Where("truck_id = ?", id).
		First(&truck).Error
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *truckRepo) ListByBrigade(ctx context.Context, brigadeID string) ([]model.Truck, error) {
	var trucks []model.Truck
	err := r.db.WithContext(ctx).
		Preload("Positions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC, created_at ASC")
		}).
		Where("brigade_id = ?", brigadeID).
		Order("sort_index ASC, created_at ASC").
		Find(&trucks).Error
	return trucks, err
}

func (r *truckRepo) StationTruck(ctx context.Context, brigadeID string) (*model.Truck, error) {
	var truck model.Truck
	err := r.db.WithContext(ctx).
		Preload("Positions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC, created_at ASC")
		}).
		Where("brigade_id = ? AND is_station = ?", brigadeID, true).
		Order("sort_index ASC").
		First(&truck).Error
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *truckRepo) Update(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Save(truck).Error
}

func (r *truckRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("truck_id = ?", id).Delete(&model.Position{}).Error; err != nil {
			return err
		}
		return tx.Where("truck_id = ?", id).Delete(&model.Truck{}).Error
	})
}

func (r *truckRepo) Reorder(ctx context.Context, brigadeID string, orderedIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			err := tx.Model(&model.Truck{}).
				Where("truck_id = ? AND brigade_id = ?", id, brigadeID).
				Update("sort_index", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *truckRepo) CreatePosition(ctx context.Context, position *model.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *truckRepo) GetPosition(ctx context.Context, id string) (*model.Position, error) {
	var position model.Position
	err := r.db.WithContext(ctx).
		Preload("Truck").
		Where("position_id = ?", id).
		First(&position).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *truckRepo) UpdatePosition(ctx context.Context, position *model.Position) error {
	return r.db.WithContext(ctx).Save(position).Error
}

func (r *truckRepo) DeletePosition(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("position_id = ?", id).
		Delete(&model.Position{}).Error
}
