package middleware

import (
	"net/http"
)

// SecurityHeaders sets browser hardening headers on every response. The API
// serves JSON only, so the CSP can stay as strict as the router configures.
// HSTS is set only when secure is true; emitting it over plain HTTP would be
// ignored at best and pin a dev host at worst.
func SecurityHeaders(secure bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
			if csp != "" {
				h.Set("Content-Security-Policy", csp)
			}
			if secure {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
