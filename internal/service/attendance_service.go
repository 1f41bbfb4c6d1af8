package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/model"
	"turnout/backend/internal/repository"
	pkgerrors "turnout/backend/pkg/errors"
	"turnout/backend/pkg/notify"
)

// ── attendance errors ──

var (
	ErrCalloutNotFound      = errors.New("callout not found")
	ErrCalloutNotActive     = errors.New("callout is no longer modifiable")
	ErrMemberInvalid        = errors.New("member not found in this brigade")
	ErrTruckPositionInvalid = errors.New("invalid truck or position")
	ErrAttendanceNotFound   = errors.New("attendance record not found")

	// ErrSlotTaken is the soft conflict: the seat was grabbed by
	// another member, usually by a concurrent user within the same
	// second. Responses carrying it still include a fresh board so the
	// client reconciles silently.
	ErrSlotTaken = pkgerrors.ErrSlotTaken
)

// AttendanceService is the assignment engine: it owns every mutation of
// attendance rows and the occupancy rules around them.
type AttendanceService interface {
	// Assign places a member on a position (status I) or records a
	// leave/absent status. On ErrSlotTaken the returned board is
	// non-nil and reflects the winner.
	Assign(ctx context.Context, brigadeID, calloutID string, req *dto.AssignRequest) (*dto.BoardResponse, error)
	Remove(ctx context.Context, brigadeID, attendanceID string) (*dto.BoardResponse, error)
	Move(ctx context.Context, brigadeID, calloutID string, req *dto.MoveRequest) (*dto.BoardResponse, error)
	Board(ctx context.Context, brigadeID, calloutID string) (*dto.BoardResponse, error)
}

type attendanceService struct {
	repo     *repository.Repository
	notifier *notify.Registry
	logger   *zap.Logger
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(repo *repository.Repository, notifier *notify.Registry, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, notifier: notifier, logger: logger}
}

// activeCallout loads a callout and gates on brigade ownership and the
// active lifecycle state. Precondition order matters: a foreign or
// missing callout is "not found", a submitted one is "not modifiable".
func (s *attendanceService) activeCallout(ctx context.Context, brigadeID, calloutID string) (*model.Callout, error) {
	callout, err := s.repo.Callout.GetByID(ctx, calloutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalloutNotFound
		}
		s.logger.Error("loading callout failed", zap.String("callout_id", calloutID), zap.Error(err))
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

func (s *attendanceService) Assign(ctx context.Context, brigadeID, calloutID string, req *dto.AssignRequest) (*dto.BoardResponse, error) {
	callout, err := s.activeCallout(ctx, brigadeID, calloutID)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberInvalid
		}
		return nil, err
	}
	if member.BrigadeID != brigadeID || !member.Active {
		return nil, ErrMemberInvalid
	}

	status := req.Status
	if status == "" {
		status = model.StatusInAttendance
	}

	att := &model.Attendance{
		CalloutID: callout.CalloutID,
		MemberID:  member.MemberID,
		Status:    status,
		Source:    model.SourceManual,
		Notes:     req.Notes,
	}

	singleOccupant := false
	if status == model.StatusInAttendance {
		if req.TruckID == nil || req.PositionID == nil {
			return nil, ErrTruckPositionInvalid
		}
		position, err := s.repo.Truck.GetPosition(ctx, *req.PositionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTruckPositionInvalid
			}
			return nil, err
		}
		if position.TruckID != *req.TruckID || position.Truck == nil || position.Truck.BrigadeID != brigadeID {
			return nil, ErrTruckPositionInvalid
		}
		att.TruckID = req.TruckID
		att.PositionID = req.PositionID
		singleOccupant = !position.AllowMultiple
	}

	// Idempotent re-assign: the member already holds exactly this slot
	// or status, so the row identity is preserved and nothing is
	// written.
	if existing, err := s.repo.Attendance.FindByCalloutMember(ctx, callout.CalloutID, member.MemberID); err == nil {
		if sameAssignment(existing, att) {
			return buildBoard(ctx, s.repo, callout)
		}
	}

	// One transaction: any prior row for this member is superseded and
	// the occupancy check on a single-occupant target happens under the
	// same lock, so two users tapping the same empty seat resolve to
	// exactly one winner.
	if err := s.repo.Attendance.Replace(ctx, att, singleOccupant); err != nil {
		if errors.Is(err, pkgerrors.ErrSlotTaken) {
			board, boardErr := buildBoard(ctx, s.repo, callout)
			if boardErr != nil {
				return nil, boardErr
			}
			return board, ErrSlotTaken
		}
		s.logger.Error("assigning attendance failed",
			zap.String("callout_id", calloutID),
			zap.String("member_id", req.MemberID),
			zap.Error(err))
		return nil, err
	}

	s.notifier.Touch(callout.CalloutID)
	return buildBoard(ctx, s.repo, callout)
}

func (s *attendanceService) Remove(ctx context.Context, brigadeID, attendanceID string) (*dto.BoardResponse, error) {
	att, err := s.repo.Attendance.GetByID(ctx, attendanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	callout, err := s.activeCallout(ctx, brigadeID, att.CalloutID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Attendance.Delete(ctx, attendanceID); err != nil {
		s.logger.Error("removing attendance failed", zap.String("attendance_id", attendanceID), zap.Error(err))
		return nil, err
	}

	s.notifier.Touch(callout.CalloutID)
	return buildBoard(ctx, s.repo, callout)
}

func (s *attendanceService) Move(ctx context.Context, brigadeID, calloutID string, req *dto.MoveRequest) (*dto.BoardResponse, error) {
	att, err := s.repo.Attendance.GetByID(ctx, req.AttendanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	if att.CalloutID != calloutID {
		return nil, ErrAttendanceNotFound
	}

	// A move is an assign of the same member to the new slot: the
	// replace transaction supersedes the old row and checks the target
	// in one step, so no third party can slip into either seat between
	// "remove" and "assign".
	return s.Assign(ctx, brigadeID, calloutID, &dto.AssignRequest{
		MemberID:   att.MemberID,
		TruckID:    &req.TruckID,
		PositionID: &req.PositionID,
		Notes:      att.Notes,
	})
}

func (s *attendanceService) Board(ctx context.Context, brigadeID, calloutID string) (*dto.BoardResponse, error) {
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
	return buildBoard(ctx, s.repo, callout)
}

func sameAssignment(existing, next *model.Attendance) bool {
	if existing.Status != next.Status {
		return false
	}
	return equalID(existing.TruckID, next.TruckID) && equalID(existing.PositionID, next.PositionID)
}

func equalID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
