package limits

import (
	"net/http"
	"strconv"

	"tierlimit/internal/handler/http/respond"
	limiterUC "tierlimit/internal/usecase/limiter"
)

type CheckHandler struct{ Svc *limiterUC.Service }

type checkAllowedDTO struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
}

type checkDeniedDTO struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	RetryAfter string `json:"RetryAfter"`
}

// ServeHTTP consumes one request from the caller's bucket and reports the
// verdict. The increment happens before the decision, so a 429 response
// has still been counted against the window.
func (h CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if !requireUserID(w, userID) {
		return
	}

	decision, err := h.Svc.Check(r.Context(), userID)
	if err != nil {
		writeDomainError(w, userID, err)
		return
	}

	if decision.Allowed {
		respond.JSON(w, http.StatusOK, checkAllowedDTO{
			StatusCode: http.StatusOK,
			Status:     "ALLOWED",
		})
		return
	}

	retryAfter := strconv.FormatInt(decision.RetryAfterSeconds, 10)
	w.Header().Set("Retry-After", retryAfter)
	respond.JSON(w, http.StatusTooManyRequests, checkDeniedDTO{
		StatusCode: http.StatusTooManyRequests,
		Status:     "NOT ALLOWED",
		RetryAfter: retryAfter,
	})
}
