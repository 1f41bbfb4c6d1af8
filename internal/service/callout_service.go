package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"turnout/backend/config"
	"turnout/backend/internal/dto"
	"turnout/backend/internal/model"
	"turnout/backend/internal/repository"
	pkgerrors "turnout/backend/pkg/errors"
	"turnout/backend/pkg/notify"
)

// ── callout errors ──

var (
	ErrInvalidIcad     = errors.New("ICAD number must start with F or be \"muster\"")
	ErrIcadInUse       = errors.New("another active callout already uses this ICAD number")
	ErrNoSourceCallout = errors.New("no previous submitted callout to copy from")
)

// CalloutService owns the callout lifecycle and the bulk attendance
// operations that hang off it (muster seeding, copy-from-previous).
type CalloutService interface {
	ListActive(ctx context.Context, brigadeID string) (*dto.ActiveCalloutsResponse, error)
	Create(ctx context.Context, brigadeID string, req *dto.CreateCalloutRequest) (*dto.CreateCalloutResponse, error)
	Update(ctx context.Context, brigadeID, calloutID string, req *dto.UpdateCalloutRequest) (*dto.CalloutResponse, error)
	Submit(ctx context.Context, brigadeID, calloutID string, req *dto.SubmitCalloutRequest) (*dto.CalloutResponse, error)
	CopyLast(ctx context.Context, brigadeID, calloutID string, req *dto.CopyLastRequest) (*dto.CopyLastResponse, error)
}

type calloutService struct {
	cfg      *config.Config
	repo     *repository.Repository
	notifier *notify.Registry
	logger   *zap.Logger
}

// NewCalloutService creates a CalloutService.
func NewCalloutService(cfg *config.Config, repo *repository.Repository, notifier *notify.Registry, logger *zap.Logger) CalloutService {
	return &calloutService{cfg: cfg, repo: repo, notifier: notifier, logger: logger}
}

// normalizeIcad validates the ICAD format convention: an incident
// number starting with F, or the literal "muster" for roll-calls.
// F-numbers are stored upper-cased, muster lower-cased.
func normalizeIcad(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, model.MusterIcad) {
		return model.MusterIcad, nil
	}
	upper := strings.ToUpper(trimmed)
	if len(upper) < 2 || !strings.HasPrefix(upper, "F") {
		return "", ErrInvalidIcad
	}
	return upper, nil
}

func (s *calloutService) ListActive(ctx context.Context, brigadeID string) (*dto.ActiveCalloutsResponse, error) {
	callouts, err := s.repo.Callout.ListActive(ctx, brigadeID)
	if err != nil {
		s.logger.Error("listing active callouts failed", zap.String("brigade_id", brigadeID), zap.Error(err))
		return nil, err
	}

	boards := make([]dto.BoardResponse, 0, len(callouts))
	for i := range callouts {
		board, err := buildBoard(ctx, s.repo, &callouts[i])
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}

	yearStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	yearCount, err := s.repo.Callout.CountSince(ctx, brigadeID, yearStart)
	if err != nil {
		return nil, err
	}

	resp := &dto.ActiveCalloutsResponse{
		Callouts:  boards,
		YearCount: yearCount,
	}

	if last, err := s.repo.Callout.LastSubmitted(ctx, brigadeID, nil); err == nil {
		lastResp := calloutToResponse(last)
		resp.LastSubmitted = &lastResp
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return resp, nil
}

func (s *calloutService) Create(ctx context.Context, brigadeID string, req *dto.CreateCalloutRequest) (*dto.CreateCalloutResponse, error) {
	icad, err := normalizeIcad(req.IcadNumber)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Callout.GetByIcad(ctx, brigadeID, icad)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("looking up callout by ICAD failed", zap.String("icad", icad), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case model.CalloutActive:
			// Re-entering an active ICAD resumes that callout.
			board, err := buildBoard(ctx, s.repo, existing)
			if err != nil {
				return nil, err
			}
			return &dto.CreateCalloutResponse{Callout: board, Resumed: true}, nil
		default:
			// A submitted F-number is rejected with a soft signal so
			// the client can tell the user without alarm. Musters
			// recur, so a finished muster never blocks the next one.
			if icad != model.MusterIcad {
				resp := &dto.CreateCalloutResponse{AlreadySubmitted: true}
				if existing.SubmittedAt != nil {
					t := existing.SubmittedAt.Format(time.RFC3339)
					resp.SubmittedAt = &t
				}
				return resp, nil
			}
		}
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.OccurredAt)
		if err != nil {
			return nil, ErrInvalidIcad
		}
		occurredAt = parsed
	}

	callout := &model.Callout{
		BrigadeID:  brigadeID,
		IcadNumber: icad,
		Location:   req.Location,
		CallType:   req.CallType,
		Status:     model.CalloutActive,
		OccurredAt: occurredAt,
	}
	if err := s.repo.Callout.Create(ctx, callout); err != nil {
		s.logger.Error("creating callout failed", zap.String("icad", icad), zap.Error(err))
		return nil, err
	}

	if callout.IsMuster() {
		s.seedMuster(ctx, brigadeID, callout)
	}

	s.notifier.Touch(callout.CalloutID)

	board, err := buildBoard(ctx, s.repo, callout)
	if err != nil {
		return nil, err
	}
	return &dto.CreateCalloutResponse{Callout: board}, nil
}

// seedMuster assigns every active member to the station truck's first
// multi-occupancy position, best-effort. Muster-taking then starts from
// "everyone present" and staff remove the absentees, instead of the
// callout default of everyone absent.
func (s *calloutService) seedMuster(ctx context.Context, brigadeID string, callout *model.Callout) {
	station, err := s.repo.Truck.StationTruck(ctx, brigadeID)
	if err != nil {
		s.logger.Warn("muster not seeded: no station truck",
			zap.String("brigade_id", brigadeID), zap.Error(err))
		return
	}

	var slot *model.Position
	for i := range station.Positions {
		if station.Positions[i].AllowMultiple {
			slot = &station.Positions[i]
			break
		}
	}
	if slot == nil {
		s.logger.Warn("muster not seeded: station truck has no multi-occupancy position",
			zap.String("truck_id", station.TruckID))
		return
	}

	members, err := s.repo.Member.ListByBrigade(ctx, brigadeID, false)
	if err != nil {
		s.logger.Warn("muster not seeded: listing members failed", zap.Error(err))
		return
	}

	for _, m := range members {
		att := &model.Attendance{
			CalloutID:  callout.CalloutID,
			MemberID:   m.MemberID,
			TruckID:    &station.TruckID,
			PositionID: &slot.PositionID,
			Status:     model.StatusInAttendance,
			Source:     model.SourceAuto,
		}
		if err := s.repo.Attendance.Replace(ctx, att, false); err != nil {
			s.logger.Debug("muster seed skipped member",
				zap.String("member_id", m.MemberID), zap.Error(err))
		}
	}
}

func (s *calloutService) Update(ctx context.Context, brigadeID, calloutID string, req *dto.UpdateCalloutRequest) (*dto.CalloutResponse, error) {
	callout, err := s.loadActive(ctx, brigadeID, calloutID)
	if err != nil {
		return nil, err
	}

	if req.IcadNumber != nil {
		icad, err := normalizeIcad(*req.IcadNumber)
		if err != nil {
			return nil, err
		}
		if icad != callout.IcadNumber {
			if other, err := s.repo.Callout.GetByIcad(ctx, brigadeID, icad); err == nil && other.Status == model.CalloutActive {
				return nil, ErrIcadInUse
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			callout.IcadNumber = icad
		}
	}
	if req.Location != nil {
		callout.Location = *req.Location
	}
	if req.CallType != nil {
		callout.CallType = *req.CallType
	}

	if err := s.repo.Callout.Update(ctx, callout); err != nil {
		s.logger.Error("updating callout failed", zap.String("callout_id", calloutID), zap.Error(err))
		return nil, err
	}

	s.notifier.Touch(callout.CalloutID)
	resp := calloutToResponse(callout)
	return &resp, nil
}

func (s *calloutService) Submit(ctx context.Context, brigadeID, calloutID string, req *dto.SubmitCalloutRequest) (*dto.CalloutResponse, error) {
	callout, err := s.loadActive(ctx, brigadeID, calloutID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	callout.Status = model.CalloutSubmitted
	callout.SubmittedAt = &now
	callout.SubmittedBy = &req.SubmittedBy

	if err := s.repo.Callout.Update(ctx, callout); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrCalloutNotActive
		}
		s.logger.Error("submitting callout failed", zap.String("callout_id", calloutID), zap.Error(err))
		return nil, err
	}

	// Streams detect the status flip on their next tick; the stamp is
	// no longer needed.
	s.notifier.Forget(callout.CalloutID)

	// Downstream notification is fire-and-forget: a webhook failure is
	// logged, never propagated as a failure of the submission.
	s.fireSubmitWebhook(callout)

	resp := calloutToResponse(callout)
	return &resp, nil
}

func (s *calloutService) fireSubmitWebhook(callout *model.Callout) {
	url := s.cfg.Notify.WebhookURL
	if url == "" {
		return
	}
	payload := calloutToResponse(callout)

	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			s.logger.Error("encoding submit webhook payload failed", zap.Error(err))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Notify.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("building submit webhook request failed", zap.Error(err))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			s.logger.Warn("submit webhook failed",
				zap.String("callout_id", callout.CalloutID), zap.Error(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			s.logger.Warn("submit webhook rejected",
				zap.String("callout_id", callout.CalloutID),
				zap.Int("status", resp.StatusCode))
		}
	}()
}

func (s *calloutService) CopyLast(ctx context.Context, brigadeID, calloutID string, req *dto.CopyLastRequest) (*dto.CopyLastResponse, error) {
	target, err := s.loadActive(ctx, brigadeID, calloutID)
	if err != nil {
		return nil, err
	}

	muster := req.Source == "muster"
	source, err := s.repo.Callout.LastSubmitted(ctx, brigadeID, &muster)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSourceCallout
		}
		return nil, err
	}

	copied, err := s.copyAttendance(ctx, source, target)
	if err != nil {
		return nil, err
	}

	if copied > 0 {
		s.notifier.Touch(target.CalloutID)
	}

	board, err := buildBoard(ctx, s.repo, target)
	if err != nil {
		return nil, err
	}
	return &dto.CopyLastResponse{Copied: copied, Board: board}, nil
}

// copyAttendance copies every non-leave row from source to target,
// skipping members no longer active, slots that no longer exist, and
// members who already hold a row on the target. Best-effort: a row that
// cannot be copied is skipped, not fatal.
func (s *calloutService) copyAttendance(ctx context.Context, source, target *model.Callout) (int, error) {
	rows, err := s.repo.Attendance.ListByCallout(ctx, source.CalloutID)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, row := range rows {
		if row.Status == model.StatusLeave {
			continue
		}

		member, err := s.repo.Member.GetByID(ctx, row.MemberID)
		if err != nil || !member.Active {
			continue
		}

		if _, err := s.repo.Attendance.FindByCalloutMember(ctx, target.CalloutID, row.MemberID); err == nil {
			continue
		}

		singleOccupant := false
		if row.PositionID != nil {
			position, err := s.repo.Truck.GetPosition(ctx, *row.PositionID)
			if err != nil || row.TruckID == nil || position.TruckID != *row.TruckID {
				continue
			}
			singleOccupant = !position.AllowMultiple
		}

		att := &model.Attendance{
			CalloutID:  target.CalloutID,
			MemberID:   row.MemberID,
			TruckID:    row.TruckID,
			PositionID: row.PositionID,
			Status:     row.Status,
			Source:     model.SourceAuto,
		}
		if err := s.repo.Attendance.Replace(ctx, att, singleOccupant); err != nil {
			s.logger.Debug("copy skipped row",
				zap.String("member_id", row.MemberID), zap.Error(err))
			continue
		}
		copied++
	}
	return copied, nil
}

func (s *calloutService) loadActive(ctx context.Context, brigadeID, calloutID string) (*model.Callout, error) {
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
	if callout.Status != model.CalloutActive {
		return nil, ErrCalloutNotActive
	}
	return callout, nil
}
