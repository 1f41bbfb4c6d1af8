package repository

import (
	"context"

	"gorm.io/gorm"

	"turnout/backend/internal/model"
)

// MemberRepository is the member data access interface.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	ListByBrigade(ctx context.Context, brigadeID string, includeInactive bool) ([]model.Member, error)
	Update(ctx context.Context, member *model.Member) error
}

type memberRepo struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("member_id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) ListByBrigade(ctx context.Context, brigadeID string, includeInactive bool) ([]model.Member, error) {
	var members []model.Member
	q := r.db.WithContext(ctx).Where("brigade_id = ?", brigadeID)
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	err := q.Order("name ASC").Find(&members).Error
	return members, err
}

func (r *memberRepo) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}
