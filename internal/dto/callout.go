package dto

// CreateCalloutRequest opens a callout, or resumes the active one with
// the same ICAD number.
type CreateCalloutRequest struct {
	IcadNumber string  `json:"icad_number" binding:"required,min=1,max=50"`
	Location   string  `json:"location"    binding:"max=255"`
	CallType   string  `json:"call_type"   binding:"max=100"`
	OccurredAt *string `json:"occurred_at" binding:"omitempty"` // RFC 3339
}

// UpdateCalloutRequest edits an active callout.
type UpdateCalloutRequest struct {
	IcadNumber *string `json:"icad_number" binding:"omitempty,min=1,max=50"`
	Location   *string `json:"location"    binding:"omitempty,max=255"`
	CallType   *string `json:"call_type"   binding:"omitempty,max=100"`
}

// SubmitCalloutRequest finalizes a callout.
type SubmitCalloutRequest struct {
	SubmittedBy string `json:"submitted_by" binding:"required,min=1,max=100"`
}

// CopyLastRequest seeds a callout from the last submitted muster or
// call.
type CopyLastRequest struct {
	Source string `json:"source" binding:"required,oneof=muster call"`
}

// CalloutResponse is the callout summary shape.
type CalloutResponse struct {
	ID          string  `json:"id"`
	BrigadeID   string  `json:"brigade_id"`
	IcadNumber  string  `json:"icad_number"`
	Location    string  `json:"location,omitempty"`
	CallType    string  `json:"call_type,omitempty"`
	Status      string  `json:"status"`
	IsMuster    bool    `json:"is_muster"`
	OccurredAt  string  `json:"occurred_at"`
	SubmittedAt *string `json:"submitted_at,omitempty"`
	SubmittedBy *string `json:"submitted_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// CreateCalloutResponse distinguishes a new callout, a resumed one, and
// the soft already-submitted signal (Callout is nil in that case).
type CreateCalloutResponse struct {
	Callout          *BoardResponse `json:"callout,omitempty"`
	Resumed          bool           `json:"resumed"`
	AlreadySubmitted bool           `json:"already_submitted"`
	SubmittedAt      *string        `json:"submitted_at,omitempty"`
}

// ActiveCalloutsResponse is the client bootstrap payload.
type ActiveCalloutsResponse struct {
	Callouts      []BoardResponse  `json:"callouts"`
	YearCount     int64            `json:"year_count"`
	LastSubmitted *CalloutResponse `json:"last_submitted,omitempty"`
}

// CopyLastResponse reports how many rows were copied.
type CopyLastResponse struct {
	Copied int            `json:"copied"`
	Board  *BoardResponse `json:"board"`
}
