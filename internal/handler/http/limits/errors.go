package limits

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"tierlimit/internal/domain/entity"
	"tierlimit/internal/handler/http/respond"
	"tierlimit/pkg/ratelimit"
)

// requireUserID validates the user identifier at the edge so malformed
// input never reaches the stores. Returns false after writing a 400.
func requireUserID(w http.ResponseWriter, userID string) bool {
	if _, err := uuid.Parse(userID); err != nil {
		respond.JSON(w, http.StatusBadRequest,
			map[string]string{"error": "userId must be a valid UUID"})
		return false
	}
	return true
}

// writeDomainError maps the error taxonomy onto the external contract.
// Each kind has exactly one classified message; the cause is logged with
// the user id and never leaks into the body.
func writeDomainError(w http.ResponseWriter, userID string, err error) {
	var (
		ve *entity.ValidationError
		ce *ratelimit.ConfigError
		se *ratelimit.StoreError
	)
	switch {
	case errors.As(err, &ve):
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
		return
	case errors.Is(err, entity.ErrNotFound):
		respond.JSON(w, http.StatusNotFound,
			map[string]string{"error": fmt.Sprintf("User %s not found", userID)})
		return
	case errors.As(err, &se):
		logDomainError(userID, "counter store failure", err)
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Cache error"})
		return
	case errors.As(err, &ce):
		logDomainError(userID, "rate limit configuration failure", err)
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Config error"})
		return
	case errors.Is(err, entity.ErrUserStore):
		logDomainError(userID, "user store failure", err)
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
		return
	}

	logDomainError(userID, "unclassified failure", err)
	respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func logDomainError(userID, msg string, err error) {
	slog.Error(msg,
		slog.String("user_id", userID),
		slog.Any("error", err))
}
