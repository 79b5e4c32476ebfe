package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"

	"storefront/models"
	"storefront/store"
)

// mockUserName is the name given to every login, since no directory is consulted
const mockUserName = "John Doe"

const (
	minPasswordLength = 6
	minNameLength     = 2
)

// AuthHandler serves the mock login/signup flow.
// No credential is checked or stored; sessions live in the visitor's storage.
type AuthHandler struct {
	registry *store.Registry
	cookie   VisitorCookie
	delay    store.Delay
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(registry *store.Registry, cookie VisitorCookie, delay store.Delay) *AuthHandler {
	return &AuthHandler{
		registry: registry,
		cookie:   cookie,
		delay:    delay,
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email, "@")
}

func validateLogin(req models.LoginRequest) string {
	if !validEmail(req.Email) {
		return "Please enter a valid email address"
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return "Password must be at least 6 characters"
	}
	return ""
}

func validateSignup(req models.SignupRequest) string {
	if utf8.RuneCountInString(strings.TrimSpace(req.Name)) < minNameLength {
		return "Name must be at least 2 characters"
	}
	if msg := validateLogin(models.LoginRequest{Email: req.Email, Password: req.Password}); msg != "" {
		return msg
	}
	if req.ConfirmPassword != req.Password {
		return "Passwords don't match"
	}
	if !req.Terms {
		return "You must accept the terms and conditions"
	}
	return ""
}

func authResponse(v *store.Visitor, message string) models.AuthResponse {
	return models.AuthResponse{
		Message:         message,
		IsAuthenticated: v.Auth.IsAuthenticated(),
		User:            v.Auth.User(),
		Notifications:   v.Inbox.Drain(),
	}
}

// establish runs apply after the simulated latency. It returns false, having
// written the error, when the request ended first.
func (h *AuthHandler) establish(ctx context.Context, w http.ResponseWriter, r *http.Request, apply func(ctx context.Context)) bool {
	err := h.delay.Do(ctx, func() {
		// the request may end while we persist; the session must still land whole
		apply(context.WithoutCancel(ctx))
	})
	if err != nil {
		logRequest(ctx, r, "info", "Request ended before session was established", zap.Error(err))
		writeJSON(w, http.StatusRequestTimeout, &errs.AppError{
			Code:    http.StatusRequestTimeout,
			Message: "Request ended before the session was established",
		})
		return false
	}
	return true
}

// Login handles POST /login
func (h *AuthHandler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, r, "info", "Login request")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, r, "error", "Invalid login body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON"))
		return
	}
	if msg := validateLogin(req); msg != "" {
		logRequest(ctx, r, "info", "Login validation failed", zap.String("reason", msg))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError(msg))
		return
	}

	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}

	user := models.UserSession{ID: uuid.New().String(), Name: mockUserName, Email: req.Email}
	if !h.establish(ctx, w, r, func(ctx context.Context) {
		v.Auth.Login(ctx, user)
		v.Inbox.Notify(models.Notification{Title: "Login successful", Description: "Welcome back to Britannia!"})
	}) {
		return
	}

	logRequest(ctx, r, "info", "User logged in", zap.String("user_id", user.ID))
	writeJSON(w, http.StatusOK, authResponse(v, "Login successful"))
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, r, "info", "Signup request")

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, r, "error", "Invalid signup body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON"))
		return
	}
	if msg := validateSignup(req); msg != "" {
		logRequest(ctx, r, "info", "Signup validation failed", zap.String("reason", msg))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError(msg))
		return
	}

	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}

	user := models.UserSession{ID: uuid.New().String(), Name: strings.TrimSpace(req.Name), Email: req.Email}
	if !h.establish(ctx, w, r, func(ctx context.Context) {
		v.Auth.Signup(ctx, user)
		v.Inbox.Notify(models.Notification{Title: "Account created successfully", Description: "Welcome to Britannia!"})
	}) {
		return
	}

	logRequest(ctx, r, "info", "User signed up", zap.String("user_id", user.ID))
	writeJSON(w, http.StatusCreated, authResponse(v, "Account created successfully"))
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}
	v.Auth.Logout(ctx)

	logRequest(ctx, r, "info", "User logged out")
	writeJSON(w, http.StatusOK, authResponse(v, "Logged out"))
}

// Me handles GET /me
func (h *AuthHandler) Me(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	ctx, v, ok := loadVisitor(ctx, w, r, h.registry, h.cookie)
	if !ok {
		return
	}
	if !v.Auth.IsAuthenticated() {
		logRequest(ctx, r, "debug", "No active session")
		writeJSON(w, http.StatusUnauthorized, errs.NewAuthenticationError("Not logged in"))
		return
	}

	writeJSON(w, http.StatusOK, authResponse(v, ""))
}
