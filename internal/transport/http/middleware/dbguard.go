package middleware

import (
	"net/http"
)

// ConnChecker reports whether the database is currently reachable.
type ConnChecker interface {
	Connected() bool
}

// WriteGuard rejects mutating requests with 503 while the database is
// unreachable. Reads pass through and degrade at the store layer instead.
func WriteGuard(checker ConnChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
				if !checker.Connected() {
					writeJSONError(w, http.StatusServiceUnavailable, "database unavailable, try again shortly")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
