package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const accountKey contextKey = "account"

// defaultAccountID scopes requests that carry no account parameter. Matches
// the seeded admin, so a single-organizer deployment needs no extra setup.
const defaultAccountID = "admin-001"

// paramsMiddleware handles common query parameters like 'verbose' and
// 'account'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		accountID := r.URL.Query().Get("account")
		if accountID == "" {
			accountID = defaultAccountID
		}
		ctx := context.WithValue(r.Context(), accountKey, accountID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accountFromContext is a helper to safely retrieve the account id from the
// request context.
func accountFromContext(r *http.Request) string {
	accountID, ok := r.Context().Value(accountKey).(string)
	if !ok || accountID == "" {
		return defaultAccountID
	}
	return accountID
}
