package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/campusboard/coursefeed-be/internal/models"
)

// Broadcaster pushes a message to connected live-feed clients. The websocket
// hub implements it; services stay decoupled from the transport.
type Broadcaster interface {
	BroadcastMessage(action string, payload interface{})
}

// FeedbackServiceProvider defines the interface for feedback services.
type FeedbackServiceProvider interface {
	CreateFeedback(courseID int64, userID, text string) (models.Feedback, error)
	ListWithNames() ([]models.FeedbackRow, error)
}

// FeedbackService provides business logic for course feedback.
type FeedbackService struct {
	db     *sql.DB
	events EventServiceProvider
	hub    Broadcaster
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(db *sql.DB, events EventServiceProvider, hub Broadcaster) *FeedbackService {
	return &FeedbackService{db: db, events: events, hub: hub}
}

// CreateFeedback stores a comment a user left on a course. The course name
// and username are denormalized into the row for display. A user can leave
// one feedback per course.
func (s *FeedbackService) CreateFeedback(courseID int64, userID, text string) (models.Feedback, error) {
	var courseName string
	if err := s.db.QueryRow("SELECT name FROM courses WHERE id = ?", courseID).Scan(&courseName); err != nil {
		if err == sql.ErrNoRows {
			return models.Feedback{}, fmt.Errorf("course with ID %d not found", courseID)
		}
		return models.Feedback{}, err
	}

	var username string
	if err := s.db.QueryRow("SELECT username FROM users WHERE id = ?", userID).Scan(&username); err != nil {
		if err == sql.ErrNoRows {
			return models.Feedback{}, fmt.Errorf("user with ID %s not found", userID)
		}
		return models.Feedback{}, err
	}

	fb := models.Feedback{
		CourseID:   courseID,
		UserID:     userID,
		Feedback:   text,
		CourseName: courseName,
		Username:   username,
		CreatedAt:  time.Now().UTC(),
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO feedback (course_id, user_id, feedback, course_name, username, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Feedback{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(fb.CourseID, fb.UserID, fb.Feedback, fb.CourseName, fb.Username, fb.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.Feedback{}, fmt.Errorf("feedback for course %d already submitted by this user", courseID)
		}
		return models.Feedback{}, err
	}

	fb.ID, err = res.LastInsertId()
	if err != nil {
		return models.Feedback{}, err
	}

	if s.events != nil {
		s.events.CreateEvent("feedback.create", "info",
			fmt.Sprintf("Feedback submitted for course '%s' by %s.", courseName, username), &courseID)
	}
	if s.hub != nil {
		s.hub.BroadcastMessage("feedback.created", models.FeedbackRow{
			CourseName: fb.CourseName,
			Feedback:   fb.Feedback,
			Username:   fb.Username,
		})
	}
	return fb, nil
}

// ListWithNames returns every feedback row joined with its course name and
// author username.
func (s *FeedbackService) ListWithNames() ([]models.FeedbackRow, error) {
	rows, err := s.db.Query(`
		SELECT COALESCE(c.name, ''), f.feedback, COALESCE(u.username, '')
		FROM feedback f
		LEFT JOIN courses c ON f.course_id = c.id
		LEFT JOIN users u ON f.user_id = u.id
		ORDER BY f.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.FeedbackRow{}
	for rows.Next() {
		var row models.FeedbackRow
		if err := rows.Scan(&row.CourseName, &row.Feedback, &row.Username); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
