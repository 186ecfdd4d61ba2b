package handlers

import (
	"net/http"
	"strconv"

	"veridia/internal/app"
	"veridia/internal/domain/user"
	"veridia/internal/http/middleware"
	"veridia/internal/http/response"
)

type DashboardHandler struct {
	reports *app.ReportingService
}

func NewDashboardHandler(reports *app.ReportingService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// Stats serves both dashboards: admins get the org-wide numbers, applicants
// get their own funnel.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	if role == user.RoleAdmin {
		stats, err := h.reports.AdminStats(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, stats)
		return
	}
	stats, err := h.reports.ApplicantStats(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.reports.Analytics(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, analytics)
}

func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	items, err := h.reports.RecentActivity(r.Context(), limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *DashboardHandler) UpcomingInterviews(w http.ResponseWriter, r *http.Request) {
	interviews, err := h.reports.UpcomingInterviews(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, interviews)
}
