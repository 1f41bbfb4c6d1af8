package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"turnout/backend/config"
	"turnout/backend/internal/model"
	"turnout/backend/internal/repository"
	"turnout/backend/pkg/notify"
)

// Stream event names. Heartbeats keep intermediary proxies from
// dropping an idle connection; Reconnect tells the client this channel
// instance hit its lifetime cap and a fresh one should be opened after
// a short backoff.
const (
	EventConnected = "connected"
	EventUpdate    = "update"
	EventSubmitted = "submitted"
	EventReconnect = "reconnect"
	EventHeartbeat = "heartbeat"
)

// Event is one message on a live attendance channel.
type Event struct {
	Name string
	Data interface{}
}

// StreamService runs the per-client live sync channels. Each
// subscription is its own goroutine polling the change registry, so any
// number of watching clients never contends with mutation handling.
type StreamService interface {
	// Subscribe opens a channel for a callout. The channel is closed
	// after a terminal event (submitted, reconnect) or when ctx is
	// cancelled. Lifecycle per channel:
	// connected → update* → submitted | reconnect.
	Subscribe(ctx context.Context, brigadeID, calloutID string) (<-chan Event, error)
}

type streamService struct {
	cfg      config.StreamConfig
	repo     *repository.Repository
	notifier *notify.Registry
	logger   *zap.Logger
}

// NewStreamService creates a StreamService.
func NewStreamService(cfg config.StreamConfig, repo *repository.Repository, notifier *notify.Registry, logger *zap.Logger) StreamService {
	return &streamService{cfg: cfg, repo: repo, notifier: notifier, logger: logger}
}

func (s *streamService) Subscribe(ctx context.Context, brigadeID, calloutID string) (<-chan Event, error) {
	callout, err := s.repo.Callout.GetByID(ctx, calloutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalloutNotFound
		}
		return nil, err
	}
	if callout.BrigadeID != brigadeID {
		return nil, ErrCalloutNotFound
	}

	ch := make(chan Event, 8)
	go s.run(ctx, brigadeID, calloutID, ch)
	return ch, nil
}

func (s *streamService) run(ctx context.Context, brigadeID, calloutID string, ch chan<- Event) {
	defer close(ch)

	if !s.send(ctx, ch, Event{Name: EventConnected, Data: map[string]string{
		"callout_id": calloutID,
		"time":       time.Now().Format(time.RFC3339),
	}}) {
		return
	}

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	// Hard cap on channel lifetime bounds per-channel resources; the
	// client reconnects.
	deadline := time.NewTimer(s.cfg.MaxLifetime)
	defer deadline.Stop()

	var lastEmitted time.Time // zero: first touch ever seen triggers a snapshot
	lastSent := time.Now()

	for {
		select {
		case <-ctx.Done():
			return

		case <-deadline.C:
			s.send(ctx, ch, Event{Name: EventReconnect})
			return

		case <-ticker.C:
			callout, err := s.repo.Callout.GetByID(ctx, calloutID)
			if err != nil {
				s.logger.Warn("stream tick: loading callout failed",
					zap.String("callout_id", calloutID), zap.Error(err))
				s.send(ctx, ch, Event{Name: EventReconnect})
				return
			}

			// Submission is terminal for the stream: no reconnect is
			// offered once the callout leaves the active state.
			if callout.Status != model.CalloutActive {
				s.send(ctx, ch, Event{Name: EventSubmitted, Data: calloutToResponse(callout)})
				return
			}

			if s.notifier.ChangedSince(calloutID, lastEmitted) {
				// Read the stamp before building so a touch landing
				// mid-build still triggers the next tick.
				stamp := s.notifier.LastTouched(calloutID)
				board, err := buildBoard(ctx, s.repo, callout)
				if err != nil {
					s.logger.Warn("stream tick: building board failed",
						zap.String("callout_id", calloutID), zap.Error(err))
					continue
				}
				if !s.send(ctx, ch, Event{Name: EventUpdate, Data: board}) {
					return
				}
				lastEmitted = stamp
				lastSent = time.Now()
			} else if time.Since(lastSent) >= s.cfg.HeartbeatInterval {
				if !s.send(ctx, ch, Event{Name: EventHeartbeat}) {
					return
				}
				lastSent = time.Now()
			}
		}
	}
}

// send delivers an event unless the subscriber is gone.
func (s *streamService) send(ctx context.Context, ch chan<- Event, ev Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
