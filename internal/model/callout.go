package model

import "time"

// Callout lifecycle states.
const (
	CalloutActive    = "active"
	CalloutSubmitted = "submitted"
	CalloutLocked    = "locked"
)

// MusterIcad is the literal ICAD value that marks a roll-call event
// rather than an incident. Stored lower-case.
const MusterIcad = "muster"

// Callout is one incident or muster event. The ICAD number is the
// human-facing key: unique per brigade while active, and re-entering an
// already-submitted one is a soft "already submitted" signal rather
// than an error. Multiple callouts can be active at once for a brigade.
type Callout struct {
	CalloutID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"callout_id"`
	BrigadeID   string     `gorm:"type:uuid;not null;index"                       json:"brigade_id"`
	IcadNumber  string     `gorm:"type:varchar(50);not null;index"                json:"icad_number"`
	Location    string     `gorm:"type:varchar(255)"                              json:"location,omitempty"`
	CallType    string     `gorm:"type:varchar(100)"                              json:"call_type,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	OccurredAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"occurred_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	SubmittedBy *string    `gorm:"type:varchar(100)"                              json:"submitted_by,omitempty"`
	Version     int        `gorm:"not null;default:1"                             json:"version"`
	BaseModel

	Brigade *Brigade `gorm:"foreignKey:BrigadeID;references:BrigadeID" json:"brigade,omitempty"`
}

// TableName sets the table name.
func (Callout) TableName() string { return "callouts" }

// IsMuster reports whether this callout is a muster roll-call.
func (c *Callout) IsMuster() bool { return c.IcadNumber == MusterIcad }
