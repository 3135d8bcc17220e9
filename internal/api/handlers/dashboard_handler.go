package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campusboard/coursefeed-be/internal/services"
	"github.com/rs/zerolog/log"
)

// DashboardHandler serves the aggregated statistics behind the dashboard.
type DashboardHandler struct {
	service services.DashboardServiceProvider
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service services.DashboardServiceProvider) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary returns the headline counts and comment rate.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute dashboard summary")
		http.Error(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// Barchart returns the most-commented courses for the bar chart.
func (h *DashboardHandler) Barchart(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 5 // Default limit
	}

	counts, err := h.service.TopCourses(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute top courses")
		http.Error(w, "Failed to compute top courses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}

// Piechart returns course counts grouped by course type.
func (h *DashboardHandler) Piechart(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.CoursesByType()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute course type counts")
		http.Error(w, "Failed to compute course type counts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}

// Snapshots returns recent stored summaries, newest first.
func (h *DashboardHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 24
	}

	snapshots, err := h.service.RecentSnapshots(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve snapshots")
		http.Error(w, "Failed to retrieve snapshots", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshots)
}
