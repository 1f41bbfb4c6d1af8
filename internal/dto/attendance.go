package dto

// AssignRequest places a member on a truck position (status I), or
// records a leave/absent status with no truck or position.
type AssignRequest struct {
	MemberID   string  `json:"member_id"   binding:"required,uuid"`
	TruckID    *string `json:"truck_id"    binding:"omitempty,uuid"`
	PositionID *string `json:"position_id" binding:"omitempty,uuid"`
	Status     string  `json:"status"      binding:"omitempty,oneof=I L A"`
	Notes      string  `json:"notes"       binding:"max=500"`
}

// MoveRequest relocates an existing attendance row to another position.
type MoveRequest struct {
	AttendanceID string `json:"attendance_id" binding:"required,uuid"`
	TruckID      string `json:"truck_id"      binding:"required,uuid"`
	PositionID   string `json:"position_id"   binding:"required,uuid"`
}

// OccupantResponse is one member occupying a position.
type OccupantResponse struct {
	AttendanceID string `json:"attendance_id"`
	MemberID     string `json:"member_id"`
	Name         string `json:"name"`
	Rank         string `json:"rank,omitempty"`
	Source       string `json:"source"`
	Notes        string `json:"notes,omitempty"`
}

// PositionGroup is a position and its current occupants.
type PositionGroup struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	AllowMultiple bool               `json:"allow_multiple"`
	Occupants     []OccupantResponse `json:"occupants"`
}

// TruckGroup is a truck and its positions.
type TruckGroup struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	IsStation bool            `json:"is_station"`
	Positions []PositionGroup `json:"positions"`
}

// AvailableMember is one entry in the assignable pool, already ordered
// by the brigade's sort preference.
type AvailableMember struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Rank     string `json:"rank,omitempty"`
}

// MarkedMember is a member carrying a leave or absent status.
type MarkedMember struct {
	AttendanceID string `json:"attendance_id"`
	MemberID     string `json:"member_id"`
	Name         string `json:"name"`
	Rank         string `json:"rank,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// BoardResponse is the grouped attendance snapshot: the attendance set
// organized truck → position → occupants, plus the leave/absent lists
// and the ordered availability pool. It is the canonical payload of
// every mutation response and every streamed update.
type BoardResponse struct {
	Callout   CalloutResponse   `json:"callout"`
	Trucks    []TruckGroup      `json:"trucks"`
	OnLeave   []MarkedMember    `json:"on_leave"`
	Absent    []MarkedMember    `json:"absent"`
	Available []AvailableMember `json:"available"`
}
