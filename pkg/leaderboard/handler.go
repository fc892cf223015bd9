package leaderboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Fooracles/SystemApp-sub009/internal/rest"
	"github.com/Fooracles/SystemApp-sub009/pkg/performance"
	"github.com/Fooracles/SystemApp-sub009/pkg/user"
)

type EntryDTO struct {
	Rank            int     `json:"rank"`
	UserId          int     `json:"userId"`
	Username        string  `json:"username"`
	DisplayName     string  `json:"displayName"`
	TotalTasks      int     `json:"totalTasks"`
	CompletedOnTime int     `json:"completedOnTime"`
	WND             float64 `json:"wnd"`
	WNDOnTime       float64 `json:"wndOnTime"`
	RqcScore        float64 `json:"rqcScore"`
	PerformanceRate float64 `json:"performanceRate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetLeaderboard godoc
// @Summary Get the ranked performance leaderboard
// @Description Non-admin callers receive the top 3 plus their own entry.
// @Tags Leaderboard
// @Produce json
// @Param from query string false "Range start in RFC3339 format"
// @Param to query string false "Range end in RFC3339 format"
// @Param limit query int false "Max entries returned to admins; 0 means all"
// @Success 200 {array} EntryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid parameter"
// @Failure 403 {string} string "User not found"
// @Router /api/leaderboard [get]
// @Security XUserId
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, err := user.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "user not found", http.StatusForbidden)
		return
	}

	window := performance.Lifetime()
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")
	if fromString != "" || toString != "" {
		from, err := time.Parse(time.RFC3339, fromString)
		if err != nil {
			writeBadRequest(w, "Invalid from format", "from must be in RFC3339 format")
			return
		}
		to, err := time.Parse(time.RFC3339, toString)
		if err != nil {
			writeBadRequest(w, "Invalid to format", "to must be in RFC3339 format")
			return
		}
		window = performance.NewWindow(from, to)
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			writeBadRequest(w, "Invalid limit", "limit must be a non-negative integer")
			return
		}
	}

	entries, err := h.service.Rank(r.Context(), caller, window, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, EntryDTO{
			Rank:            e.Rank,
			UserId:          e.User.Id,
			Username:        e.User.Username,
			DisplayName:     e.User.DisplayName,
			TotalTasks:      e.Stats.TotalTasks,
			CompletedOnTime: e.Stats.CompletedOnTime,
			WND:             e.Stats.WND,
			WNDOnTime:       e.Stats.WNDOnTime,
			RqcScore:        e.RqcScore,
			PerformanceRate: e.PerformanceRate,
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
