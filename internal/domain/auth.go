package domain

// ============================================================
// Auth — Request / Response types
// ============================================================

// LoginRequest is the body for POST /v1/auth/login. Access to the back
// office is gated by a single shared password per deployment.
type LoginRequest struct {
	Password string `json:"senha"`
}

// LoginResponse is the body for 200 from POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}
