package service

import (
	"context"
	"time"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/model"
	"turnout/backend/internal/repository"
)

// buildBoard assembles the grouped attendance snapshot for a callout:
// trucks with their positions and occupants, the leave/absent lists,
// and the ordered availability pool. Trucks, positions and attendance
// are read fresh from the store on every call — an administrator may be
// editing the fleet while attendance is being taken, and stale
// occupancy here is exactly the double-booking bug the engine's
// uniqueness check exists to prevent.
func buildBoard(ctx context.Context, repo *repository.Repository, callout *model.Callout) (*dto.BoardResponse, error) {
	brigade, err := repo.Brigade.GetByID(ctx, callout.BrigadeID)
	if err != nil {
		return nil, err
	}

	trucks, err := repo.Truck.ListByBrigade(ctx, callout.BrigadeID)
	if err != nil {
		return nil, err
	}

	rows, err := repo.Attendance.ListByCallout(ctx, callout.CalloutID)
	if err != nil {
		return nil, err
	}

	members, err := repo.Member.ListByBrigade(ctx, callout.BrigadeID, false)
	if err != nil {
		return nil, err
	}

	byPosition := make(map[string][]dto.OccupantResponse)
	var onLeave, absent []dto.MarkedMember
	for _, row := range rows {
		name, rank := "", ""
		if row.Member != nil {
			name, rank = row.Member.Name, row.Member.Rank
		}
		switch row.Status {
		case model.StatusLeave:
			onLeave = append(onLeave, dto.MarkedMember{
				AttendanceID: row.AttendanceID,
				MemberID:     row.MemberID,
				Name:         name,
				Rank:         rank,
				Notes:        row.Notes,
			})
		case model.StatusAbsent:
			absent = append(absent, dto.MarkedMember{
				AttendanceID: row.AttendanceID,
				MemberID:     row.MemberID,
				Name:         name,
				Rank:         rank,
				Notes:        row.Notes,
			})
		default:
			if row.PositionID == nil {
				continue
			}
			byPosition[*row.PositionID] = append(byPosition[*row.PositionID], dto.OccupantResponse{
				AttendanceID: row.AttendanceID,
				MemberID:     row.MemberID,
				Name:         name,
				Rank:         rank,
				Source:       row.Source,
				Notes:        row.Notes,
			})
		}
	}

	truckGroups := make([]dto.TruckGroup, 0, len(trucks))
	for _, t := range trucks {
		group := dto.TruckGroup{
			ID:        t.TruckID,
			Name:      t.Name,
			IsStation: t.IsStation,
			Positions: make([]dto.PositionGroup, 0, len(t.Positions)),
		}
		for _, p := range t.Positions {
			occupants := byPosition[p.PositionID]
			if occupants == nil {
				occupants = []dto.OccupantResponse{}
			}
			group.Positions = append(group.Positions, dto.PositionGroup{
				ID:            p.PositionID,
				Name:          p.Name,
				AllowMultiple: p.AllowMultiple,
				Occupants:     occupants,
			})
		}
		truckGroups = append(truckGroups, group)
	}

	return &dto.BoardResponse{
		Callout:   calloutToResponse(callout),
		Trucks:    truckGroups,
		OnLeave:   orEmptyMarked(onLeave),
		Absent:    orEmptyMarked(absent),
		Available: availableMembers(members, rows, brigade.SortPreference),
	}, nil
}

func orEmptyMarked(list []dto.MarkedMember) []dto.MarkedMember {
	if list == nil {
		return []dto.MarkedMember{}
	}
	return list
}

func calloutToResponse(c *model.Callout) dto.CalloutResponse {
	resp := dto.CalloutResponse{
		ID:         c.CalloutID,
		BrigadeID:  c.BrigadeID,
		IcadNumber: c.IcadNumber,
		Location:   c.Location,
		CallType:   c.CallType,
		Status:     c.Status,
		IsMuster:   c.IsMuster(),
		OccurredAt: c.OccurredAt.Format(time.RFC3339),
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.SubmittedAt != nil {
		s := c.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &s
	}
	resp.SubmittedBy = c.SubmittedBy
	return resp
}
