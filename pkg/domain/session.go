package domain

// LoginRequest is the payload of the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login. Only Access is used;
// tokens are never refreshed.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
