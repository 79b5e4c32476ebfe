package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/errs"

	"storefront/models"
	"storefront/store"
)

func newTestAuthHandler(delay time.Duration) *AuthHandler {
	return NewAuthHandler(newTestRegistry(), testCookie, store.NewDelay(delay))
}

func TestAuthHandler_LoginFabricatesUser(t *testing.T) {
	h := newTestAuthHandler(time.Millisecond)
	const visitor = "v1"

	w := call(t, h.Login, http.MethodPost, "/login", models.LoginRequest{Email: "jane@example.com", Password: "secret1"}, visitor, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.AuthResponse](t, w)
	assert.True(t, resp.IsAuthenticated)
	require.NotNil(t, resp.User)
	assert.Equal(t, "John Doe", resp.User.Name)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "Welcome back to Britannia!", resp.Notifications[0].Description)

	w = call(t, h.Me, http.MethodGet, "/me", nil, visitor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resp.User.ID, decode[models.AuthResponse](t, w).User.ID)
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	h := newTestAuthHandler(0)

	cases := map[string]models.LoginRequest{
		"bad email":      {Email: "not-an-email", Password: "secret1"},
		"display name":   {Email: "Jane <jane@example.com>", Password: "secret1"},
		"short password": {Email: "jane@example.com", Password: "12345"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			w := call(t, h.Login, http.MethodPost, "/login", req, "v1", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := call(t, h.Me, http.MethodGet, "/me", nil, "v1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Signup(t *testing.T) {
	h := newTestAuthHandler(0)
	valid := models.SignupRequest{
		Name:            "Asha",
		Email:           "asha@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Terms:           true,
	}

	w := call(t, h.Signup, http.MethodPost, "/signup", valid, "v1", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[models.AuthResponse](t, w)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Asha", resp.User.Name)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "Account created successfully", resp.Notifications[0].Title)

	mismatch := valid
	mismatch.ConfirmPassword = "other12"
	noTerms := valid
	noTerms.Terms = false
	shortName := valid
	shortName.Name = "A"

	for _, req := range []models.SignupRequest{mismatch, noTerms, shortName} {
		w := call(t, h.Signup, http.MethodPost, "/signup", req, "v2", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := newTestAuthHandler(0)
	const visitor = "v1"

	call(t, h.Login, http.MethodPost, "/login", models.LoginRequest{Email: "jane@example.com", Password: "secret1"}, visitor, nil)

	w := call(t, h.Logout, http.MethodPost, "/logout", nil, visitor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.AuthResponse](t, w)
	assert.False(t, resp.IsAuthenticated)
	assert.Nil(t, resp.User)

	w = call(t, h.Me, http.MethodGet, "/me", nil, visitor, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_CancelledLoginIsNotApplied(t *testing.T) {
	h := newTestAuthHandler(time.Hour)

	body, err := json.Marshal(models.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	r := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)).WithContext(ctx)
	r.AddCookie(&http.Cookie{Name: testCookie.Name, Value: visitorID("v1")})
	w := httptest.NewRecorder()

	h.Login(ctx, w, r)
	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	appErr := decode[errs.AppError](t, w)
	assert.Equal(t, http.StatusRequestTimeout, appErr.Code)

	w = call(t, h.Me, http.MethodGet, "/me", nil, "v1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
