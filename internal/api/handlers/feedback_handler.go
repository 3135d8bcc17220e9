package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campusboard/coursefeed-be/internal/auth"
	"github.com/campusboard/coursefeed-be/internal/services"
	"github.com/rs/zerolog/log"
)

// FeedbackHandler handles HTTP requests for course feedback.
type FeedbackHandler struct {
	service services.FeedbackServiceProvider
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service services.FeedbackServiceProvider) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// List returns every feedback row joined with course name and username.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListWithNames()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list feedback")
		http.Error(w, "Failed to list feedback", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// SubmitPayload is the loosely-validated body of the public submit endpoint.
type SubmitPayload struct {
	CourseID int64  `json:"courseId"`
	UserID   string `json:"userId"`
	Feedback string `json:"feedback"`
}

// Submit preserves the public submission contract: an empty or unreadable
// JSON body is a 400 with {"message": "No data received"}, anything else is
// acknowledged with 200. A payload that resolves to a course and user is
// persisted; persistence failures do not change the acknowledgement.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || len(raw) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "No data received"})
		return
	}

	var payload SubmitPayload
	if data, err := json.Marshal(raw); err == nil {
		json.Unmarshal(data, &payload)
	}
	if payload.CourseID != 0 && payload.UserID != "" {
		if _, err := h.service.CreateFeedback(payload.CourseID, payload.UserID, payload.Feedback); err != nil {
			log.Warn().Err(err).Int64("course_id", payload.CourseID).Msg("Submitted feedback not persisted")
		}
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Data received!"})
}

// Create persists feedback for the authenticated user.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(auth.UserClaimsKey).(*auth.Claims)
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload struct {
		CourseID int64  `json:"courseId"`
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fb, err := h.service.CreateFeedback(payload.CourseID, claims.UserID, payload.Feedback)
	if err != nil {
		log.Error().Err(err).Int64("course_id", payload.CourseID).Str("user_id", claims.UserID).Msg("Failed to create feedback")
		http.Error(w, "Failed to create feedback: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(fb)
}
