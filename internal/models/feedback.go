package models

import "time"

// Feedback is a single free-text comment a user left on a course.
// CourseName and Username are denormalized copies kept for display.
type Feedback struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"courseId"`
	UserID     string    `json:"userId"`
	Feedback   string    `json:"feedback"`
	CourseName string    `json:"courseName"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FeedbackRow is the joined projection served by the feedback listing:
// course name and author resolved at query time.
type FeedbackRow struct {
	CourseName string `json:"courseName"`
	Feedback   string `json:"feedback"`
	Username   string `json:"username"`
}
