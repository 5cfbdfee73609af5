package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/opina-app/opina-backend/internal/errs"
)

type Middleware struct {
	AuthClient *auth.Client
}

func NewMiddleware(client *auth.Client) *Middleware {
	return &Middleware{AuthClient: client}
}

// context keys
type contextKey string

const (
	UIDKey   contextKey = "uid"
	EmailKey contextKey = "email"
	NameKey  contextKey = "name"
	GuestKey contextKey = "guest"
)

// FirebaseAuth verifies the bearer ID token and stores the session identity
// in the request context. Anonymous sign-ins pass but are flagged as guests.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, errs.Friendly("ID_TOKEN_INVALID"), http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, errs.Friendly("ID_TOKEN_INVALID"), http.StatusUnauthorized)
			return
		}

		token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			http.Error(w, errs.Friendly(authErrorCode(err)), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UIDKey, token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			ctx = context.WithValue(ctx, EmailKey, email)
		}
		if name, ok := token.Claims["name"].(string); ok {
			ctx = context.WithValue(ctx, NameKey, name)
		}
		if token.Firebase.SignInProvider == "anonymous" {
			ctx = context.WithValue(ctx, GuestKey, true)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireFullAccount gates endpoints that guest sessions may not use; the
// app shows a sign-up prompt on this status.
func (m *Middleware) RequireFullAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Guest(r.Context()) {
			http.Error(w, errs.Friendly("PERMISSION_DENIED"), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func authErrorCode(err error) string {
	switch {
	case auth.IsIDTokenExpired(err):
		return "ID_TOKEN_EXPIRED"
	case auth.IsIDTokenRevoked(err):
		return "ID_TOKEN_REVOKED"
	case auth.IsUserDisabled(err):
		return "USER_DISABLED"
	default:
		return "ID_TOKEN_INVALID"
	}
}

// Helpers to extract session identity.

func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

func Name(ctx context.Context) string {
	name, _ := ctx.Value(NameKey).(string)
	return name
}

func Guest(ctx context.Context) bool {
	guest, _ := ctx.Value(GuestKey).(bool)
	return guest
}
