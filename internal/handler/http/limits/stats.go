package limits

import (
	"net/http"

	"tierlimit/internal/handler/http/respond"
	limiterUC "tierlimit/internal/usecase/limiter"
)

type StatsHandler struct{ Svc *limiterUC.Service }

type statsDTO struct {
	UserID        string `json:"userId"`
	Tier          string `json:"tier"`
	Limit         int    `json:"limit"`
	WindowSeconds int    `json:"windowSeconds"`
	CurrentCount  int64  `json:"currentCount"`

	// SecondsUntilReset carries the raw store TTL, including the -1
	// (no expiry) and -2 (no bucket yet) sentinels.
	SecondsUntilReset int64 `json:"secondsUntilReset"`
	OverrideActive    bool  `json:"overrideActive"`
}

// ServeHTTP reports the caller's current bucket without consuming from it.
func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if !requireUserID(w, userID) {
		return
	}

	stats, err := h.Svc.Stats(r.Context(), userID)
	if err != nil {
		writeDomainError(w, userID, err)
		return
	}

	respond.JSON(w, http.StatusOK, statsDTO{
		UserID:            stats.UserID,
		Tier:              string(stats.Tier),
		Limit:             stats.Limit,
		WindowSeconds:     stats.WindowSeconds,
		CurrentCount:      stats.CurrentCount,
		SecondsUntilReset: stats.SecondsUntilReset,
		OverrideActive:    stats.OverrideActive,
	})
}
