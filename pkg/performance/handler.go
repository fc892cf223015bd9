package performance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Fooracles/SystemApp-sub009/internal/rest"
	"github.com/Fooracles/SystemApp-sub009/pkg/user"
)

type PersonalStatsDTO struct {
	CompletedOnTime int     `json:"completedOnTime"`
	CurrentPending  int     `json:"currentPending"`
	CurrentDelayed  int     `json:"currentDelayed"`
	TotalTasks      int     `json:"totalTasks"`
	TotalTasksAll   int     `json:"totalTasksAll"`
	ShiftedTasks    int     `json:"shiftedTasks"`
	WND             float64 `json:"wnd"`
	WNDOnTime       float64 `json:"wndOnTime"`
}

type UserStatsDTO struct {
	Stats           PersonalStatsDTO `json:"stats"`
	RqcScore        float64          `json:"rqcScore"`
	PerformanceRate float64          `json:"performanceRate"`
	Frozen          bool             `json:"frozen"`
}

type ScopeStatsDTO struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
	DelayedTasks   int `json:"delayedTasks"`
	TotalTasksAll  int `json:"totalTasksAll"`
	ShiftedTasks   int `json:"shiftedTasks"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetUserStats godoc
// @Summary Get personal task stats over a date range
// @Description Without from/to the lifetime stats are returned. Admins may pass userId to query another user.
// @Tags Performance
// @Produce json
// @Param from query string false "Range start in RFC3339 format"
// @Param to query string false "Range end in RFC3339 format"
// @Param userId query int false "Target user id (admin only)"
// @Success 200 {object} UserStatsDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Failure 403 {string} string "User not found"
// @Router /api/performance/user [get]
// @Security XUserId
func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, err := user.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "user not found", http.StatusForbidden)
		return
	}

	targetId := caller.Id
	if userIdParam := r.URL.Query().Get("userId"); userIdParam != "" {
		id, err := strconv.Atoi(userIdParam)
		if err != nil {
			writeBadRequest(w, "Invalid userId", "userId must be an integer")
			return
		}
		if id != caller.Id && !caller.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		targetId = id
	}

	window, ok := windowFromQuery(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetUserStats(r.Context(), targetId, window)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(userStatsToDTO(stats)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetTeamStats godoc
// @Summary Get week-relative stats for the caller's direct reports
// @Tags Performance
// @Produce json
// @Param date query string true "Any day of the requested week, RFC3339"
// @Success 200 {object} ScopeStatsDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Failure 403 {string} string "User not found"
// @Router /api/performance/team [get]
// @Security XUserId
func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, err := user.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "user not found", http.StatusForbidden)
		return
	}

	date, ok := dateFromQuery(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetTeamStats(r.Context(), caller.Id, date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(scopeStatsToDTO(stats)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetGlobalStats godoc
// @Summary Get week-relative stats across all users
// @Tags Performance
// @Produce json
// @Param date query string true "Any day of the requested week, RFC3339"
// @Success 200 {object} ScopeStatsDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/performance/global [get]
// @Security XUserId
func (h *Handler) GetGlobalStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date, ok := dateFromQuery(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetGlobalStats(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(scopeStatsToDTO(stats)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func windowFromQuery(w http.ResponseWriter, r *http.Request) (Window, bool) {
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")
	if fromString == "" && toString == "" {
		return Lifetime(), true
	}
	from, err := time.Parse(time.RFC3339, fromString)
	if err != nil {
		writeBadRequest(w, "Invalid from format", "from must be in RFC3339 format")
		return Window{}, false
	}
	to, err := time.Parse(time.RFC3339, toString)
	if err != nil {
		writeBadRequest(w, "Invalid to format", "to must be in RFC3339 format")
		return Window{}, false
	}
	return NewWindow(from, to), true
}

func dateFromQuery(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateString := r.URL.Query().Get("date")
	date, err := time.Parse(time.RFC3339, dateString)
	if err != nil {
		writeBadRequest(w, "Invalid date format", "date must be in RFC3339 format")
		return time.Time{}, false
	}
	return date, true
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func userStatsToDTO(s UserStats) UserStatsDTO {
	return UserStatsDTO{
		Stats: PersonalStatsDTO{
			CompletedOnTime: s.Stats.CompletedOnTime,
			CurrentPending:  s.Stats.CurrentPending,
			CurrentDelayed:  s.Stats.CurrentDelayed,
			TotalTasks:      s.Stats.TotalTasks,
			TotalTasksAll:   s.Stats.TotalTasksAll,
			ShiftedTasks:    s.Stats.ShiftedTasks,
			WND:             s.Stats.WND,
			WNDOnTime:       s.Stats.WNDOnTime,
		},
		RqcScore:        s.RqcScore,
		PerformanceRate: s.PerformanceRate,
		Frozen:          s.Frozen,
	}
}

func scopeStatsToDTO(s ScopeStats) ScopeStatsDTO {
	return ScopeStatsDTO{
		TotalTasks:     s.TotalTasks,
		CompletedTasks: s.CompletedTasks,
		PendingTasks:   s.PendingTasks,
		DelayedTasks:   s.DelayedTasks,
		TotalTasksAll:  s.TotalTasksAll,
		ShiftedTasks:   s.ShiftedTasks,
	}
}
