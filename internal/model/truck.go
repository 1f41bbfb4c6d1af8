package model

// Truck is a crew vehicle, or the station pseudo-truck when IsStation
// is set. Trucks are drag-reorderable, hence the explicit sort index.
type Truck struct {
	TruckID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"truck_id"`
	BrigadeID string `gorm:"type:uuid;not null;index"                       json:"brigade_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	IsStation bool   `gorm:"not null;default:false"                         json:"is_station"`
	SortIndex int    `gorm:"not null;default:0"                             json:"sort_index"`
	BaseModel

	Brigade   *Brigade   `gorm:"foreignKey:BrigadeID;references:BrigadeID" json:"brigade,omitempty"`
	Positions []Position `gorm:"foreignKey:TruckID;references:TruckID"     json:"positions,omitempty"`
}

// TableName sets the table name.
func (Truck) TableName() string { return "trucks" }

// Position is a named slot on a truck. AllowMultiple distinguishes a
// standard crew seat (at most one occupant per callout) from a
// standby/station slot with unbounded occupancy.
type Position struct {
	PositionID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"position_id"`
	TruckID       string `gorm:"type:uuid;not null;index"                       json:"truck_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	AllowMultiple bool   `gorm:"not null;default:false"                         json:"allow_multiple"`
	SortIndex     int    `gorm:"not null;default:0"                             json:"sort_index"`
	BaseModel

	Truck *Truck `gorm:"foreignKey:TruckID;references:TruckID" json:"truck,omitempty"`
}

// TableName sets the table name.
func (Position) TableName() string { return "positions" }
