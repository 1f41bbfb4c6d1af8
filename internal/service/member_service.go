package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/model"
	"turnout/backend/internal/repository"
)

// ── member errors ──

var ErrMemberNotFound = errors.New("member not found")

// MemberService is the roster administration surface for members.
type MemberService interface {
	List(ctx context.Context, brigadeID string, req *dto.MemberListRequest) ([]dto.MemberResponse, error)
	Create(ctx context.Context, brigadeID string, req *dto.CreateMemberRequest) (*dto.MemberResponse, error)
	Update(ctx context.Context, brigadeID, memberID string, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	// Deactivate soft-retires a member: historical attendance keeps
	// referencing them, they just leave the assignable pool.
	Deactivate(ctx context.Context, brigadeID, memberID string) error
}

type memberService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMemberService creates a MemberService.
func NewMemberService(repo *repository.Repository, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, logger: logger}
}

func (s *memberService) List(ctx context.Context, brigadeID string, req *dto.MemberListRequest) ([]dto.MemberResponse, error) {
	members, err := s.repo.Member.ListByBrigade(ctx, brigadeID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("listing members failed", zap.String("brigade_id", brigadeID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		result = append(result, toMemberResponse(&members[i]))
	}
	return result, nil
}

func (s *memberService) Create(ctx context.Context, brigadeID string, req *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	member := &model.Member{
		BrigadeID: brigadeID,
		Name:      req.Name,
		Rank:      req.Rank,
		Active:    true,
	}
	if req.JoinedAt != nil {
		joined, err := parseDate(*req.JoinedAt)
		if err != nil {
			return nil, err
		}
		member.JoinedAt = &joined
	}

	if err := s.repo.Member.Create(ctx, member); err != nil {
		s.logger.Error("creating member failed", zap.Error(err))
		return nil, err
	}

	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *memberService) Update(ctx context.Context, brigadeID, memberID string, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	member, err := s.load(ctx, brigadeID, memberID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Rank != nil {
		member.Rank = *req.Rank
	}
	if req.Active != nil {
		member.Active = *req.Active
	}
	if req.JoinedAt != nil {
		joined, err := parseDate(*req.JoinedAt)
		if err != nil {
			return nil, err
		}
		member.JoinedAt = &joined
	}

	if err := s.repo.Member.Update(ctx, member); err != nil {
		s.logger.Error("updating member failed", zap.String("member_id", memberID), zap.Error(err))
		return nil, err
	}

	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *memberService) Deactivate(ctx context.Context, brigadeID, memberID string) error {
	member, err := s.load(ctx, brigadeID, memberID)
	if err != nil {
		return err
	}

	member.Active = false
	if err := s.repo.Member.Update(ctx, member); err != nil {
		s.logger.Error("deactivating member failed", zap.String("member_id", memberID), zap.Error(err))
		return err
	}
	return nil
}

func (s *memberService) load(ctx context.Context, brigadeID, memberID string) (*model.Member, error) {
	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.BrigadeID != brigadeID {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func toMemberResponse(m *model.Member) dto.MemberResponse {
	resp := dto.MemberResponse{
		ID:        m.MemberID,
		BrigadeID: m.BrigadeID,
		Name:      m.Name,
		Rank:      m.Rank,
		Active:    m.Active,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
	if m.JoinedAt != nil {
		j := m.JoinedAt.Format("2006-01-02")
		resp.JoinedAt = &j
	}
	return resp
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
