package model

// Attendance statuses.
const (
	StatusInAttendance = "I"
	StatusLeave        = "L"
	StatusAbsent       = "A"
)

// Attendance record sources.
const (
	SourceManual = "manual"
	SourceAPI    = "api"
	SourceAuto   = "auto"
)

// Attendance joins a member to a callout: either occupying a position
// on a truck (status I) or carrying a non-attending status (L/A) with
// no truck or position. A member has at most one row per callout; the
// unique index is the serialization point for concurrent writes on the
// same member.
type Attendance struct {
	AttendanceID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                  json:"attendance_id"`
	CalloutID    string  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_callout_member"    json:"callout_id"`
	MemberID     string  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_callout_member"    json:"member_id"`
	TruckID      *string `gorm:"type:uuid;index"                                                 json:"truck_id,omitempty"`
	PositionID   *string `gorm:"type:uuid;index"                                                 json:"position_id,omitempty"`
	Status       string  `gorm:"type:varchar(1);not null;default:'I'"                            json:"status"`
	Source       string  `gorm:"type:varchar(10);not null;default:'manual'"                      json:"source"`
	Notes        string  `gorm:"type:text"                                                       json:"notes,omitempty"`
	BaseModel

	Callout  *Callout  `gorm:"foreignKey:CalloutID;references:CalloutID"    json:"callout,omitempty"`
	Member   *Member   `gorm:"foreignKey:MemberID;references:MemberID"      json:"member,omitempty"`
	Truck    *Truck    `gorm:"foreignKey:TruckID;references:TruckID"        json:"truck,omitempty"`
	Position *Position `gorm:"foreignKey:PositionID;references:PositionID"  json:"position,omitempty"`
}

// TableName sets the table name.
func (Attendance) TableName() string { return "attendance" }
