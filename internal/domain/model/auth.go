package model

// LoginRequest is the body of a dashboard login call.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful dashboard login. Only the access
// token is kept; the refresh token is not used by the panel.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// DashboardUser is the identity shown in the panel, derived from the decoded
// access token. It is never used for authorization decisions.
type DashboardUser struct {
	Username string
	Roles    []string
}
