// Package limits exposes the rate limit API: the hot check endpoint, the
// read-only stats projection, and the admin override writer.
package limits

import (
	"net/http"

	limiterUC "tierlimit/internal/usecase/limiter"
)

// Register registers the rate limit HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *limiterUC.Service) {
	mux.Handle("GET /api/check", CheckHandler{svc})
	mux.Handle("GET /rate-limit-stats", StatsHandler{svc})
	mux.Handle("PUT /users/{userId}/rate-limits", OverrideHandler{svc})
}
