package limits

import (
	"encoding/json"
	"net/http"
	"time"

	"tierlimit/internal/domain/entity"
	"tierlimit/internal/handler/http/respond"
	limiterUC "tierlimit/internal/usecase/limiter"
)

type OverrideHandler struct{ Svc *limiterUC.Service }

type overrideBodyDTO struct {
	OverrideLimit         *int       `json:"overrideLimit"`
	OverrideWindowSeconds *int       `json:"overrideWindowSeconds"`
	OverrideExpiry        *time.Time `json:"overrideExpiry"`
}

type overrideUpdatedDTO struct {
	OverrideLimit         *int       `json:"overrideLimit"`
	OverrideWindowSeconds *int       `json:"overrideWindowSeconds"`
	OverrideExpiry        *time.Time `json:"overrideExpiry"`
}

type overrideResponseDTO struct {
	Success bool               `json:"success"`
	UserID  string             `json:"userId"`
	Updated overrideUpdatedDTO `json:"updated"`
}

// ServeHTTP persists a partial override update. Omitted fields keep their
// stored values; a JSON null is treated the same as omission. The write
// never touches live counters, so an existing bucket finishes its window
// under the budget it was created with.
func (h OverrideHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !requireUserID(w, userID) {
		return
	}

	var body overrideBodyDTO
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respond.JSON(w, http.StatusBadRequest,
			map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	override, err := h.Svc.SetOverride(r.Context(), userID, entity.OverridePatch{
		Limit:         body.OverrideLimit,
		WindowSeconds: body.OverrideWindowSeconds,
		ExpiresAt:     body.OverrideExpiry,
	})
	if err != nil {
		writeDomainError(w, userID, err)
		return
	}

	respond.JSON(w, http.StatusOK, overrideResponseDTO{
		Success: true,
		UserID:  userID,
		Updated: overrideUpdatedDTO{
			OverrideLimit:         override.Limit,
			OverrideWindowSeconds: override.WindowSeconds,
			OverrideExpiry:        override.ExpiresAt,
		},
	})
}
