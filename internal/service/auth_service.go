package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/repository"
	"turnout/backend/pkg/jwt"
	"turnout/backend/pkg/redis"
)

// ── auth errors ──

var ErrInvalidCredentials = errors.New("unknown brigade or wrong PIN")

// AuthService issues brigade-scoped tokens. There are no per-person
// accounts: a station device logs in once with the brigade slug and
// access PIN.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService. rdb may be nil; logout then
// degrades to a no-op.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	brigade, err := s.repo.Brigade.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("loading brigade failed", zap.String("slug", req.Slug), zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(brigade.PinHash), []byte(req.Pin)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(brigade.BrigadeID, brigade.Slug, brigade.Name)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidCredentials
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed, allowing refresh", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidCredentials
		}
	}

	brigade, err := s.repo.Brigade.GetByID(ctx, claims.BrigadeID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(brigade.BrigadeID, brigade.Slug, brigade.Name)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) issueTokens(brigadeID, slug, name string) (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(brigadeID, slug)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(brigadeID, slug)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		BrigadeID:    brigadeID,
		BrigadeSlug:  slug,
		BrigadeName:  name,
	}, nil
}
