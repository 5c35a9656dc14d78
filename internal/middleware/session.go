package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
)

const CartSessionHeader = "X-Cart-Session"

type sessionKey struct{}

// CartSession makes sure every cart request carries a session id. A missing
// or malformed X-Cart-Session header gets a fresh id, echoed back in the
// response header.
func CartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := strings.TrimSpace(r.Header.Get(CartSessionHeader))
		if _, err := uuid.Parse(session); err != nil {
			session = uuid.NewString()
		}

		w.Header().Set(CartSessionHeader, session)

		ctx := context.WithValue(r.Context(), sessionKey{}, session)
		ctx = logger.WithCartSession(ctx, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CartSessionFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey{}).(string); ok {
		return v
	}
	return ""
}
