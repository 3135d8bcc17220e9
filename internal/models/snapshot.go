package models

import "time"

// DashboardSummary holds the headline numbers for the dashboard cards.
// CommentRate is feedback over courses as a percentage string with two
// decimals; it is "0.00%" when there are no courses.
type DashboardSummary struct {
	CoursesCount  int    `json:"coursesCount"`
	FeedbackCount int    `json:"feedbackCount"`
	UsersCount    int    `json:"usersCount"`
	CommentRate   string `json:"commentRate"`
}

// DashboardSnapshot is a stored copy of the summary taken on a schedule.
type DashboardSnapshot struct {
	ID        string           `json:"id"`
	Summary   DashboardSummary `json:"summary"`
	CreatedAt time.Time        `json:"createdAt"`
}

// CourseFeedbackCount is one bar of the "top courses" chart.
type CourseFeedbackCount struct {
	CourseID      int64  `json:"courseId"`
	CourseName    string `json:"courseName"`
	FeedbackCount int    `json:"feedbackCount"`
}

// CourseTypeCount is one slice of the course-type pie chart.
type CourseTypeCount struct {
	CourseType string `json:"courseType"`
	Count      int    `json:"count"`
}
