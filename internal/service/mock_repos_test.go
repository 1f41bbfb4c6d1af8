package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"turnout/backend/internal/model"
	pkgerrors "turnout/backend/pkg/errors"
)

// ── Mock BrigadeRepository ──

type mockBrigadeRepo struct {
	brigades map[string]*model.Brigade
}

func newMockBrigadeRepo() *mockBrigadeRepo {
	return &mockBrigadeRepo{brigades: make(map[string]*model.Brigade)}
}

func (m *mockBrigadeRepo) Create(_ context.Context, brigade *model.Brigade) error {
	if brigade.BrigadeID == "" {
		brigade.BrigadeID = "brigade-" + brigade.Slug
	}
	m.brigades[brigade.BrigadeID] = brigade
	return nil
}

func (m *mockBrigadeRepo) GetByID(_ context.Context, id string) (*model.Brigade, error) {
	if b, ok := m.brigades[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBrigadeRepo) GetBySlug(_ context.Context, slug string) (*model.Brigade, error) {
	for _, b := range m.brigades {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBrigadeRepo) Update(_ context.Context, brigade *model.Brigade) error {
	m.brigades[brigade.BrigadeID] = brigade
	return nil
}

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	members map[string]*model.Member
	nextID  int
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.Member)}
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.Member) error {
	if member.MemberID == "" {
		m.nextID++
		member.MemberID = fmt.Sprintf("member-%03d", m.nextID)
	}
	m.members[member.MemberID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.Member, error) {
	if mem, ok := m.members[id]; ok {
		return mem, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) ListByBrigade(_ context.Context, brigadeID string, includeInactive bool) ([]model.Member, error) {
	var result []model.Member
	for _, mem := range m.members {
		if mem.BrigadeID != brigadeID {
			continue
		}
		if !includeInactive && !mem.Active {
			continue
		}
		result = append(result, *mem)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.Member) error {
	m.members[member.MemberID] = member
	return nil
}

// ── Mock TruckRepository ──

type mockTruckRepo struct {
	trucks    map[string]*model.Truck
	positions map[string]*model.Position
}

func newMockTruckRepo() *mockTruckRepo {
	return &mockTruckRepo{
		trucks:    make(map[string]*model.Truck),
		positions: make(map[string]*model.Position),
	}
}

func (m *mockTruckRepo) Create(_ context.Context, truck *model.Truck) error {
	if truck.TruckID == "" {
		truck.TruckID = "truck-" + truck.Name
	}
	m.trucks[truck.TruckID] = truck
	return nil
}

// withPositions returns a copy with the truck's positions attached in
// sort order, matching the repository's preload.
func (m *mockTruckRepo) withPositions(t *model.Truck) model.Truck {
	out := *t
	out.Positions = nil
	for _, p := range m.positions {
		if p.TruckID == t.TruckID {
			cp := *p
			cp.Truck = nil
			out.Positions = append(out.Positions, cp)
		}
	}
	sort.Slice(out.Positions, func(i, j int) bool {
		return out.Positions[i].SortIndex < out.Positions[j].SortIndex
	})
	return out
}

func (m *mockTruckRepo) GetByID(_ context.Context, id string) (*model.Truck, error) {
	if t, ok := m.trucks[id]; ok {
		full := m.withPositions(t)
		return &full, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTruckRepo) ListByBrigade(_ context.Context, brigadeID string) ([]model.Truck, error) {
	var result []model.Truck
	for _, t := range m.trucks {
		if t.BrigadeID == brigadeID {
			result = append(result, m.withPositions(t))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortIndex < result[j].SortIndex })
	return result, nil
}

func (m *mockTruckRepo) StationTruck(_ context.Context, brigadeID string) (*model.Truck, error) {
	for _, t := range m.trucks {
		if t.BrigadeID == brigadeID && t.IsStation {
			full := m.withPositions(t)
			return &full, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTruckRepo) Update(_ context.Context, truck *model.Truck) error {
	m.trucks[truck.TruckID] = truck
	return nil
}

func (m *mockTruckRepo) Delete(_ context.Context, id string) error {
	for pid, p := range m.positions {
		if p.TruckID == id {
			delete(m.positions, pid)
		}
	}
	delete(m.trucks, id)
	return nil
}

func (m *mockTruckRepo) Reorder(_ context.Context, brigadeID string, orderedIDs []string) error {
	for i, id := range orderedIDs {
		if t, ok := m.trucks[id]; ok && t.BrigadeID == brigadeID {
			t.SortIndex = i
		}
	}
	return nil
}

func (m *mockTruckRepo) CreatePosition(_ context.Context, position *model.Position) error {
	if position.PositionID == "" {
		position.PositionID = "pos-" + position.TruckID + "-" + position.Name
	}
	m.positions[position.PositionID] = position
	return nil
}

func (m *mockTruckRepo) GetPosition(_ context.Context, id string) (*model.Position, error) {
	p, ok := m.positions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	if t, ok := m.trucks[p.TruckID]; ok {
		tc := *t
		cp.Truck = &tc
	}
	return &cp, nil
}

func (m *mockTruckRepo) UpdatePosition(_ context.Context, position *model.Position) error {
	m.positions[position.PositionID] = position
	return nil
}

func (m *mockTruckRepo) DeletePosition(_ context.Context, id string) error {
	delete(m.positions, id)
	return nil
}

// ── Mock CalloutRepository ──

type mockCalloutRepo struct {
	callouts map[string]*model.Callout
	nextID   int
}

func newMockCalloutRepo() *mockCalloutRepo {
	return &mockCalloutRepo{callouts: make(map[string]*model.Callout)}
}

func (m *mockCalloutRepo) Create(_ context.Context, callout *model.Callout) error {
	if callout.CalloutID == "" {
		m.nextID++
		callout.CalloutID = fmt.Sprintf("callout-%03d", m.nextID)
	}
	if callout.Version == 0 {
		callout.Version = 1
	}
	if callout.CreatedAt.IsZero() {
		callout.CreatedAt = time.Now()
	}
	m.callouts[callout.CalloutID] = callout
	return nil
}

func (m *mockCalloutRepo) GetByID(_ context.Context, id string) (*model.Callout, error) {
	if c, ok := m.callouts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCalloutRepo) GetByIcad(_ context.Context, brigadeID, icad string) (*model.Callout, error) {
	var newest *model.Callout
	for _, c := range m.callouts {
		if c.BrigadeID != brigadeID || c.IcadNumber != icad {
			continue
		}
		if newest == nil || c.CreatedAt.After(newest.CreatedAt) {
			newest = c
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *newest
	return &cp, nil
}

func (m *mockCalloutRepo) ListActive(_ context.Context, brigadeID string) ([]model.Callout, error) {
	var result []model.Callout
	for _, c := range m.callouts {
		if c.BrigadeID == brigadeID && c.Status == model.CalloutActive {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockCalloutRepo) Update(_ context.Context, callout *model.Callout) error {
	stored, ok := m.callouts[callout.CalloutID]
	if !ok || stored.Version != callout.Version {
		return pkgerrors.ErrOptimisticLock
	}
	callout.Version++
	cp := *callout
	m.callouts[callout.CalloutID] = &cp
	return nil
}

func (m *mockCalloutRepo) CountSince(_ context.Context, brigadeID string, since time.Time) (int64, error) {
	var count int64
	for _, c := range m.callouts {
		if c.BrigadeID == brigadeID && c.IcadNumber != model.MusterIcad && !c.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockCalloutRepo) LastSubmitted(_ context.Context, brigadeID string, muster *bool) (*model.Callout, error) {
	var newest *model.Callout
	for _, c := range m.callouts {
		if c.BrigadeID != brigadeID || c.Status != model.CalloutSubmitted || c.SubmittedAt == nil {
			continue
		}
		if muster != nil && *muster != (c.IcadNumber == model.MusterIcad) {
			continue
		}
		if newest == nil || c.SubmittedAt.After(*newest.SubmittedAt) {
			newest = c
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *newest
	return &cp, nil
}

// ── Mock AttendanceRepository ──

// mockAttendanceRepo keeps the member repo so reads can attach Member
// the way the real repository's preload does.
type mockAttendanceRepo struct {
	rows    map[string]*model.Attendance
	members *mockMemberRepo
	nextID  int
}

func newMockAttendanceRepo(members *mockMemberRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{rows: make(map[string]*model.Attendance), members: members}
}

func (m *mockAttendanceRepo) attach(a *model.Attendance) model.Attendance {
	cp := *a
	if m.members != nil {
		if mem, ok := m.members.members[a.MemberID]; ok {
			mc := *mem
			cp.Member = &mc
		}
	}
	return cp
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.Attendance, error) {
	if a, ok := m.rows[id]; ok {
		cp := m.attach(a)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByCallout(_ context.Context, calloutID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.rows {
		if a.CalloutID == calloutID {
			result = append(result, m.attach(a))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AttendanceID < result[j].AttendanceID })
	return result, nil
}

func (m *mockAttendanceRepo) FindByCalloutMember(_ context.Context, calloutID, memberID string) (*model.Attendance, error) {
	for _, a := range m.rows {
		if a.CalloutID == calloutID && a.MemberID == memberID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Replace mirrors the transactional semantics of the real repository:
// occupancy check first, then supersede the member's prior row.
func (m *mockAttendanceRepo) Replace(_ context.Context, att *model.Attendance, singleOccupant bool) error {
	if singleOccupant && att.PositionID != nil {
		for _, a := range m.rows {
			if a.CalloutID == att.CalloutID && a.PositionID != nil &&
				*a.PositionID == *att.PositionID && a.MemberID != att.MemberID {
				return pkgerrors.ErrSlotTaken
			}
		}
	}
	for id, a := range m.rows {
		if a.CalloutID == att.CalloutID && a.MemberID == att.MemberID {
			delete(m.rows, id)
		}
	}
	if att.AttendanceID == "" {
		m.nextID++
		att.AttendanceID = fmt.Sprintf("att-%03d", m.nextID)
	}
	cp := *att
	m.rows[att.AttendanceID] = &cp
	return nil
}

func (m *mockAttendanceRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *mockAttendanceRepo) DeleteByCallout(_ context.Context, calloutID string) error {
	for id, a := range m.rows {
		if a.CalloutID == calloutID {
			delete(m.rows, id)
		}
	}
	return nil
}
