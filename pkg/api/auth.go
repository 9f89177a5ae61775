package api

// LoginRequest represents an authentication request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login. The session itself is
// carried in an HTTP cookie; only the user profile travels in the body.
type LoginResponse struct {
	User User `json:"user"`
}

// CSRFResponse carries the anti-forgery token required on mutating calls.
type CSRFResponse struct {
	Token string `json:"csrf_token"`
}

// ErrorResponse represents a well-formed error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the health check body. The client's
// connectivity monitor probes this endpoint to establish real API
// reachability, not just link state.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
