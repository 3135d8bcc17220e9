package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campusboard/coursefeed-be/internal/models"
	"github.com/campusboard/coursefeed-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CourseHandler handles HTTP requests for courses.
type CourseHandler struct {
	service services.CourseServiceProvider
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(service services.CourseServiceProvider) *CourseHandler {
	return &CourseHandler{service: service}
}

// List returns every course.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.GetAllCourses()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list courses")
		http.Error(w, "Failed to list courses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courses)
}

// Get handles retrieving a course by its ID.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	course, err := h.service.GetCourseByID(id)
	if err != nil {
		log.Warn().Err(err).Int64("course_id", id).Msg("Failed to get course")
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

// Create handles adding a new course.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var course models.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if course.Code == "" || course.Name == "" || course.Semester == "" {
		http.Error(w, "code, name and semester are required", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateCourse(course)
	if err != nil {
		log.Error().Err(err).Str("code", course.Code).Msg("Failed to create course")
		http.Error(w, "Failed to create course: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}
