package model

import "time"

// Member is a person belonging to exactly one brigade. Deactivation is
// a soft state change: members with historical attendance stay
// referenced, they just leave the assignable pool.
type Member struct {
	MemberID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	BrigadeID string     `gorm:"type:uuid;not null;index"                       json:"brigade_id"`
	Name      string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Rank      string     `gorm:"type:varchar(50)"                               json:"rank"`
	Active    bool       `gorm:"not null;default:true"                          json:"active"`
	JoinedAt  *time.Time `gorm:"type:date"                                      json:"joined_at,omitempty"`
	BaseModel

	Brigade *Brigade `gorm:"foreignKey:BrigadeID;references:BrigadeID" json:"brigade,omitempty"`
}

// TableName sets the table name.
func (Member) TableName() string { return "members" }
