package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"turnout/backend/internal/model"
	pkgerrors "turnout/backend/pkg/errors"
)

// AttendanceRepository is the attendance data access interface.
type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (*model.Attendance, error)
	ListByCallout(ctx context.Context, calloutID string) ([]model.Attendance, error)
	FindByCalloutMember(ctx context.Context, calloutID, memberID string) (*model.Attendance, error)
	// Replace writes an attendance row inside one transaction: it
	// deletes any prior row for the member on this callout and inserts
	// the new one, so a "move" never leaves a window where the member
	// holds two slots or none is recorded. With singleOccupant set, the
	// target position's rows are locked and checked first; a different
	// holder aborts with pkgerrors.ErrSlotTaken, making concurrent
	// grabs of the same seat resolve to exactly one winner.
	Replace(ctx context.Context, att *model.Attendance, singleOccupant bool) error
	Delete(ctx context.Context, id string) error
	DeleteByCallout(ctx context.Context, calloutID string) error
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("attendance_id = ?", id).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) ListByCallout(ctx context.Context, calloutID string) ([]model.Attendance, error) {
	var rows []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("callout_id = ?", calloutID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *attendanceRepo) FindByCalloutMember(ctx context.Context, calloutID, memberID string) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.WithContext(ctx).
		Where("callout_id = ? AND member_id = ?", calloutID, memberID).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) Replace(ctx context.Context, att *model.Attendance, singleOccupant bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if singleOccupant && att.PositionID != nil {
			var holders []model.Attendance
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("callout_id = ? AND position_id = ?", att.CalloutID, *att.PositionID).
				Find(&holders).Error
			if err != nil {
				return err
			}
			for _, h := range holders {
				if h.MemberID != att.MemberID {
					return pkgerrors.ErrSlotTaken
				}
			}
		}

		err := tx.Where("callout_id = ? AND member_id = ?", att.CalloutID, att.MemberID).
			Delete(&model.Attendance{}).Error
		if err != nil {
			return err
		}

		return tx.Create(att).Error
	})
}

func (r *attendanceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		Delete(&model.Attendance{}).Error
}

func (r *attendanceRepo) DeleteByCallout(ctx context.Context, calloutID string) error {
	return r.db.WithContext(ctx).
		Where("callout_id = ?", calloutID).
		Delete(&model.Attendance{}).Error
}
