package service

import (
	"go.uber.org/zap"

	"turnout/backend/config"
	"turnout/backend/internal/repository"
	"turnout/backend/pkg/jwt"
	"turnout/backend/pkg/notify"
	"turnout/backend/pkg/redis"
)

// Service aggregates all services.
type Service struct {
	Auth       AuthService
	Member     MemberService
	Truck      TruckService
	Callout    CalloutService
	Attendance AttendanceService
	Stream     StreamService
}

// NewService wires the service aggregate. The notify registry is shared
// between the mutating services and the stream service; it is the only
// channel through which a mutation reaches other clients' streams.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	notifier *notify.Registry,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, rdb, logger),
		Member:     NewMemberService(repo, logger),
		Truck:      NewTruckService(repo, logger),
		Callout:    NewCalloutService(cfg, repo, notifier, logger),
		Attendance: NewAttendanceService(repo, notifier, logger),
		Stream:     NewStreamService(cfg.Stream, repo, notifier, logger),
	}
}
