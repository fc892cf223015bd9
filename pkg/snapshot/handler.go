package snapshot

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Fooracles/SystemApp-sub009/internal/rest"
	"github.com/Fooracles/SystemApp-sub009/pkg/user"
)

type Handler struct {
	freezer      *Freezer
	historyWeeks int
}

func NewHandler(freezer *Freezer, historyWeeks int) *Handler {
	return &Handler{freezer: freezer, historyWeeks: historyWeeks}
}

// FreezeWeeks godoc
// @Summary Freeze missing trailing completed weeks for all active users
// @Description Maintenance sweep; safe to call repeatedly, a no-op once caught up.
// @Tags Snapshots
// @Produce json
// @Param weeks query int false "How many trailing weeks to top up (defaults to the configured history depth)"
// @Success 202 {string} string "Accepted"
// @Failure 400 {object} rest.ErrorResponse "Invalid weeks value"
// @Failure 403 {string} string "Admin only"
// @Router /api/snapshots/freeze [post]
// @Security XUserId
func (h *Handler) FreezeWeeks(w http.ResponseWriter, r *http.Request) {
	caller, err := user.CurrentUser(r.Context())
	if err != nil || !caller.IsAdmin() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	weeks := h.historyWeeks
	if weeksParam := r.URL.Query().Get("weeks"); weeksParam != "" {
		parsed, err := strconv.Atoi(weeksParam)
		if err != nil || parsed <= 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid weeks value",
				Details: "weeks must be a positive integer",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		weeks = parsed
	}

	if err := h.freezer.EnsureWeeksFrozen(r.Context(), weeks); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
