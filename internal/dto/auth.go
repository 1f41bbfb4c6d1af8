package dto

// LoginRequest authenticates a brigade by slug and access PIN.
type LoginRequest struct {
	Slug string `json:"slug" binding:"required,min=2,max=50"`
	Pin  string `json:"pin"  binding:"required,min=4,max=64"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	BrigadeID    string `json:"brigade_id"`
	BrigadeSlug  string `json:"brigade_slug"`
	BrigadeName  string `json:"brigade_name"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
