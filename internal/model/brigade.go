package model

// Member sort preferences. Rank seniority always sorts first except for
// the pure alphabetical preference.
const (
	SortRankThenName   = "rank_name"
	SortRankThenJoined = "rank_joined"
	SortAlphabetical   = "alpha"
)

// Brigade is the tenant root. Every other entity hangs off it by
// foreign key. The slug doubles as the routing key for login.
type Brigade struct {
	BrigadeID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"brigade_id"`
	Name           string `gorm:"type:varchar(100);not null"                      json:"name"`
	Slug           string `gorm:"type:varchar(50);not null;uniqueIndex"           json:"slug"`
	SortPreference string `gorm:"type:varchar(20);not null;default:'rank_name'"   json:"sort_preference"`
	PinHash        string `gorm:"type:varchar(255);not null"                      json:"-"`
	BaseModel
}

// TableName sets the table name.
func (Brigade) TableName() string { return "brigades" }
