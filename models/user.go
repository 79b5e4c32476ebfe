package models

// UserSession represents the mock signed-in user
// Nothing here is verified; it is whatever login/signup fabricated
type UserSession struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest for POST /login
// Password is checked for shape only and never stored
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest for POST /signup
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Terms           bool   `json:"terms"`
}

// AuthResponse is returned by login, signup, logout and /me
type AuthResponse struct {
	Message         string         `json:"message,omitempty"`
	IsAuthenticated bool           `json:"isAuthenticated"`
	User            *UserSession   `json:"user,omitempty"`
	Notifications   []Notification `json:"notifications,omitempty"`
}
