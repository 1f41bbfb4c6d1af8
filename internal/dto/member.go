package dto

// CreateMemberRequest adds a member to the brigade roster.
type CreateMemberRequest struct {
	Name     string  `json:"name"      binding:"required,min=1,max=100"`
	Rank     string  `json:"rank"      binding:"max=50"`
	JoinedAt *string `json:"joined_at" binding:"omitempty"` // RFC 3339 date
}

// UpdateMemberRequest edits a member.
type UpdateMemberRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=1,max=100"`
	Rank     *string `json:"rank"      binding:"omitempty,max=50"`
	Active   *bool   `json:"active"`
	JoinedAt *string `json:"joined_at" binding:"omitempty"`
}

// MemberListRequest filters the member list.
type MemberListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// MemberResponse is the member detail shape.
type MemberResponse struct {
	ID        string  `json:"id"`
	BrigadeID string  `json:"brigade_id"`
	Name      string  `json:"name"`
	Rank      string  `json:"rank,omitempty"`
	Active    bool    `json:"active"`
	JoinedAt  *string `json:"joined_at,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
