package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// uuidParam answers notFound for a malformed id in the named URL parameter.
// Postgres would otherwise reject the cast with 22P02.
func uuidParam(name string, notFound error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validUUID(chi.URLParam(r, name)) {
				writeError(w, r, notFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// validUUID accepts only the hyphenated 36 character form.
func validUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// malformedID reports a non-blank body id that is not a UUID. Blank ids are
// left to the services, which report them as missing.
func malformedID(s string) bool {
	return strings.TrimSpace(s) != "" && !validUUID(s)
}
