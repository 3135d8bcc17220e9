package models

import "time"

// Event represents a loggable action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "user.register", "feedback.create"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	CourseID  *int64    `json:"courseId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
