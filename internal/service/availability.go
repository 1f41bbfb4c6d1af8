package service

import (
	"sort"
	"strings"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/model"
)

// availableMembers computes the assignable pool for a callout: every
// active member of the brigade minus anyone already holding an
// attendance row (leave and absent rows count — those members are
// tracked in their own lists, not the pool). The result is ordered by
// the brigade's sort preference and is stable across repeated calls
// with unchanged inputs.
func availableMembers(members []model.Member, attendance []model.Attendance, sortPref string) []dto.AvailableMember {
	taken := make(map[string]struct{}, len(attendance))
	for _, a := range attendance {
		taken[a.MemberID] = struct{}{}
	}

	pool := make([]model.Member, 0, len(members))
	for _, m := range members {
		if !m.Active {
			continue
		}
		if _, ok := taken[m.MemberID]; ok {
			continue
		}
		pool = append(pool, m)
	}

	sortMembers(pool, sortPref)

	result := make([]dto.AvailableMember, 0, len(pool))
	for _, m := range pool {
		result = append(result, dto.AvailableMember{
			MemberID: m.MemberID,
			Name:     m.Name,
			Rank:     m.Rank,
		})
	}
	return result
}

// sortMembers orders members in place by the brigade sort preference.
func sortMembers(members []model.Member, sortPref string) {
	sort.SliceStable(members, func(i, j int) bool {
		return memberLess(&members[i], &members[j], sortPref)
	})
}

func memberLess(a, b *model.Member, sortPref string) bool {
	if sortPref == model.SortAlphabetical {
		return nameLess(a, b)
	}

	ra, rb := rankSeniority(a.Rank), rankSeniority(b.Rank)
	if ra != rb {
		return ra < rb
	}

	if sortPref == model.SortRankThenJoined {
		// Join date ascending, nulls last.
		switch {
		case a.JoinedAt == nil && b.JoinedAt == nil:
			// fall through to name tiebreak
		case a.JoinedAt == nil:
			return false
		case b.JoinedAt == nil:
			return true
		case !a.JoinedAt.Equal(*b.JoinedAt):
			return a.JoinedAt.Before(*b.JoinedAt)
		}
	}

	return nameLess(a, b)
}

func nameLess(a, b *model.Member) bool {
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	// Identical names: fall back to ID so the order is deterministic.
	return a.MemberID < b.MemberID
}
