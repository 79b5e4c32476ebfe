package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/errs"
	"github.com/umakantv/go-utils/httpserver"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"

	"storefront/store"
)

// logRequest logs with the route, method, path and visitor attached.
// Shared by every handler in the package.
func logRequest(ctx context.Context, r *http.Request, level string, message string, fields ...zap.Field) {
	routeName := httpserver.GetRouteName(ctx)
	auth := httpserver.GetRequestAuth(ctx)

	logMsg := time.Now().Format("2006-01-02 15:04:05") + " - " + routeName + " - " + r.Method + " - " + r.URL.Path
	if auth != nil && auth.Client != "" {
		logMsg += " - visitor:" + auth.Client
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}, fields...)
	if id, ok := ctx.Value(visitorIDKey{}).(string); ok {
		allFields = append(allFields, zap.String("visitor_id", id))
	}

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// pathID reads the integer {id} route variable
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return id, true
}

type visitorIDKey struct{}

// AuthTypeVisitor is the route auth type for visitor-scoped routes
const AuthTypeVisitor = "visitor"

// VisitorCookie identifies a browser across requests
type VisitorCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// read returns the cookie's visitor id if it is present and well formed
func (c VisitorCookie) read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// CheckAuth is the httpserver auth callback for visitor routes.
// Every request is admitted; a well-formed visitor cookie names the client.
func (c VisitorCookie) CheckAuth(r *http.Request) (bool, httpserver.RequestAuth) {
	id, _ := c.read(r)
	return true, httpserver.RequestAuth{
		Type:   AuthTypeVisitor,
		Client: id,
	}
}

// resolve returns the caller's visitor id, issuing a new cookie when the
// request has no usable one
func (c VisitorCookie) resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) string {
	if auth := httpserver.GetRequestAuth(ctx); auth != nil && auth.Type == AuthTypeVisitor {
		if auth.Client != "" {
			return auth.Client
		}
	} else if id, ok := c.read(r); ok {
		return id
	}

	id := store.NewVisitorID()
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.TTL.Seconds()),
	})
	return id
}

// loadVisitor resolves the caller's visitor state; on failure it has already
// written the error response
func loadVisitor(ctx context.Context, w http.ResponseWriter, r *http.Request, registry *store.Registry, cookie VisitorCookie) (context.Context, *store.Visitor, bool) {
	id := cookie.resolve(ctx, w, r)
	ctx = context.WithValue(ctx, visitorIDKey{}, id)

	v, err := registry.Get(ctx, id)
	if err != nil {
		logRequest(ctx, r, "error", "Failed to load visitor", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Failed to load visitor state"))
		return ctx, nil, false
	}
	return ctx, v, true
}
