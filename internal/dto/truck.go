package dto

// CreateTruckRequest adds a truck (or the station pseudo-truck).
type CreateTruckRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=100"`
	IsStation bool   `json:"is_station"`
}

// UpdateTruckRequest edits a truck.
type UpdateTruckRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	IsStation *bool   `json:"is_station"`
}

// ReorderTrucksRequest sets the display order for the whole fleet.
type ReorderTrucksRequest struct {
	TruckIDs []string `json:"truck_ids" binding:"required,min=1,dive,uuid"`
}

// CreatePositionRequest adds a position to a truck.
type CreatePositionRequest struct {
	Name          string `json:"name"           binding:"required,min=1,max=100"`
	AllowMultiple bool   `json:"allow_multiple"`
}

// UpdatePositionRequest edits a position.
type UpdatePositionRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=1,max=100"`
	AllowMultiple *bool   `json:"allow_multiple"`
}

// PositionResponse is the position detail shape.
type PositionResponse struct {
	ID            string `json:"id"`
	TruckID       string `json:"truck_id"`
	Name          string `json:"name"`
	AllowMultiple bool   `json:"allow_multiple"`
	SortIndex     int    `json:"sort_index"`
}

// TruckResponse is the truck detail shape.
type TruckResponse struct {
	ID        string             `json:"id"`
	BrigadeID string             `json:"brigade_id"`
	Name      string             `json:"name"`
	IsStation bool               `json:"is_station"`
	SortIndex int                `json:"sort_index"`
	Positions []PositionResponse `json:"positions"`
}
