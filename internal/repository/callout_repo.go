package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"turnout/backend/internal/model"
	pkgerrors "turnout/backend/pkg/errors"
)

// CalloutRepository is the callout data access interface.
type CalloutRepository interface {
	Create(ctx context.Context, callout *model.Callout) error
	GetByID(ctx context.Context, id string) (*model.Callout, error)
	// GetByIcad returns the most recent callout with the given ICAD
	// number for a brigade, regardless of status.
	GetByIcad(ctx context.Context, brigadeID, icad string) (*model.Callout, error)
	ListActive(ctx context.Context, brigadeID string) ([]model.Callout, error)
	Update(ctx context.Context, callout *model.Callout) error
	CountSince(ctx context.Context, brigadeID string, since time.Time) (int64, error)
	// LastSubmitted returns the most recently submitted callout,
	// optionally restricted to musters or to calls.
	LastSubmitted(ctx context.Context, brigadeID string, muster *bool) (*model.Callout, error)
}

type calloutRepo struct {
	db *gorm.DB
}

func NewCalloutRepo(db *gorm.DB) CalloutRepository {
	return &calloutRepo{db: db}
}

func (r *calloutRepo) Create(ctx context.Context, callout *model.Callout) error {
	return r.db.WithContext(ctx).Create(callout).Error
}

func (r *calloutRepo) GetByID(ctx context.Context, id string) (*model.Callout, error) {
	var callout model.Callout
	err := r.db.WithContext(ctx).
		Where("callout_id = ?", id).
		First(&callout).Error
	if err != nil {
		return nil, err
	}
	return &callout, nil
}

func (r *calloutRepo) GetByIcad(ctx context.Context, brigadeID, icad string) (*model.Callout, error) {
	var callout model.Callout
	err := r.db.WithContext(ctx).
		Where("brigade_id = ? AND icad_number = ?", brigadeID, icad).
		Order("created_at DESC").
		First(&callout).Error
	if err != nil {
		return nil, err
	}
	return &callout, nil
}

func (r *calloutRepo) ListActive(ctx context.Context, brigadeID string) ([]model.Callout, error) {
	var callouts []model.Callout
	err := r.db.WithContext(ctx).
		Where("brigade_id = ? AND status = ?", brigadeID, model.CalloutActive).
		Order("created_at DESC").
		Find(&callouts).Error
	return callouts, err
}

// Update uses the version column as an optimistic lock so two
// concurrent submits (or a submit racing an edit) cannot both win.
func (r *calloutRepo) Update(ctx context.Context, callout *model.Callout) error {
	oldVersion := callout.Version
	result := r.db.WithContext(ctx).
		Model(callout).
		Where("callout_id = ? AND version = ?", callout.CalloutID, oldVersion).
		Updates(map[string]interface{}{
			"icad_number":  callout.IcadNumber,
			"location":     callout.Location,
			"call_type":    callout.CallType,
			"status":       callout.Status,
			"occurred_at":  callout.OccurredAt,
			"submitted_at": callout.SubmittedAt,
			"submitted_by": callout.SubmittedBy,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	callout.Version = oldVersion + 1
	return nil
}

func (r *calloutRepo) CountSince(ctx context.Context, brigadeID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Callout{}).
		Where("brigade_id = ? AND icad_number != ? AND created_at >= ?", brigadeID, model.MusterIcad, since).
		Count(&count).Error
	return count, err
}

func (r *calloutRepo) LastSubmitted(ctx context.Context, brigadeID string, muster *bool) (*model.Callout, error) {
	q := r.db.WithContext(ctx).
		Where("brigade_id = ? AND status = ?", brigadeID, model.CalloutSubmitted)
	if muster != nil {
		if *muster {
			q = q.Where("icad_number = ?", model.MusterIcad)
		} else {
			q = q.Where("icad_number != ?", model.MusterIcad)
		}
	}

	var callout model.Callout
	err := q.Order("submitted_at DESC").First(&callout).Error
	if err != nil {
		return nil, err
	}
	return &callout, nil
}
