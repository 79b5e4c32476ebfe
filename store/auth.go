package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"storefront/models"
)

// DefaultSessionKey is the storage key the mock session lives under
const DefaultSessionKey = "britannia_user"

// Auth holds the optional current user for one visitor.
// It performs no authentication: Login and Signup accept whatever they are given.
// A real deployment has to put a credential-verifying identity provider in front.
type Auth struct {
	mu   sync.RWMutex
	user *models.UserSession

	storage Storage
	key     string
	log     *zap.Logger
}

// LoadAuth restores a persisted session.
// Missing or corrupt data, or a session without a user id, means logged out.
func LoadAuth(ctx context.Context, storage Storage, key string, log *zap.Logger) *Auth {
	if key == "" {
		key = DefaultSessionKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	a := &Auth{storage: storage, key: key, log: log}

	raw, err := storage.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("session unreadable, starting logged out", zap.String("key", key), zap.Error(err))
		}
		return a
	}

	var user models.UserSession
	if err := json.Unmarshal(raw, &user); err != nil {
		log.Warn("session corrupt, starting logged out", zap.String("key", key), zap.Error(err))
		return a
	}
	if user.ID == "" {
		log.Warn("session has no user id, starting logged out", zap.String("key", key))
		return a
	}
	a.user = &user
	return a
}

// Login sets user as the current session
func (a *Auth) Login(ctx context.Context, user models.UserSession) {
	a.setUser(ctx, user)
}

// Signup sets user as the current session; it behaves exactly like Login
func (a *Auth) Signup(ctx context.Context, user models.UserSession) {
	a.setUser(ctx, user)
}

func (a *Auth) setUser(ctx context.Context, user models.UserSession) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.user = &user
	raw, err := json.Marshal(user)
	if err != nil {
		a.log.Error("session encode failed", zap.Error(err))
		return
	}
	if err := a.storage.Set(ctx, a.key, raw); err != nil {
		a.log.Error("session write failed", zap.String("key", a.key), zap.Error(err))
	}
}

// Logout clears the current user and deletes the persisted session
func (a *Auth) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.user = nil
	if err := a.storage.Delete(ctx, a.key); err != nil {
		a.log.Error("session delete failed", zap.String("key", a.key), zap.Error(err))
	}
}

// User returns the current user, or nil when logged out
func (a *Auth) User() *models.UserSession {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// IsAuthenticated reports whether a user is set
func (a *Auth) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user != nil
}
