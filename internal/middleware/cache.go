package middleware

import (
	"net/http"
)

// NoStore disables client and intermediary caching on every response.
// Form definitions, summaries and exports change between requests, so a
// cached copy is never acceptable.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Pragma and Expires cover legacy HTTP/1.0 intermediaries.
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
