package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/campusboard/coursefeed-be/internal/models"
	"github.com/google/uuid"
)

// DashboardServiceProvider defines the interface for dashboard aggregation.
type DashboardServiceProvider interface {
	Summary() (models.DashboardSummary, error)
	TopCourses(limit int) ([]models.CourseFeedbackCount, error)
	CoursesByType() ([]models.CourseTypeCount, error)
	SaveSnapshot(summary models.DashboardSummary) (models.DashboardSnapshot, error)
	RecentSnapshots(limit int) ([]models.DashboardSnapshot, error)
}

// DashboardService computes read-only statistics over users, courses and
// feedback. Nothing here mutates domain state; snapshots are the one write
// and live in their own table.
type DashboardService struct {
	db *sql.DB
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Summary returns the headline counts and the comment rate.
func (s *DashboardService) Summary() (models.DashboardSummary, error) {
	var summary models.DashboardSummary

	for _, c := range []struct {
		table string
		dest  *int
	}{
		{"courses", &summary.CoursesCount},
		{"feedback", &summary.FeedbackCount},
		{"users", &summary.UsersCount},
	} {
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dest); err != nil {
			return models.DashboardSummary{}, err
		}
	}

	summary.CommentRate = commentRate(summary.FeedbackCount, summary.CoursesCount)
	return summary, nil
}

// commentRate formats feedback/courses as a percentage with two decimals.
// With no courses the rate is reported as "0.00%" instead of faulting.
func commentRate(feedback, courses int) string {
	if courses == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(feedback)/float64(courses)*100)
}

// TopCourses groups feedback by course and returns the most-commented
// courses, capped at limit (5 when limit is not positive). Equal counts
// order by ascending course ID so the chart is deterministic.
func (s *DashboardService) TopCourses(limit int) ([]models.CourseFeedbackCount, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.Query(`
		SELECT f.course_id, COALESCE(c.name, ''), COUNT(*) AS feedback_count
		FROM feedback f
		LEFT JOIN courses c ON f.course_id = c.id
		GROUP BY f.course_id
		ORDER BY feedback_count DESC, f.course_id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.CourseFeedbackCount{}
	for rows.Next() {
		var c models.CourseFeedbackCount
		if err := rows.Scan(&c.CourseID, &c.CourseName, &c.FeedbackCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CoursesByType groups courses by their type attribute and counts members.
func (s *DashboardService) CoursesByType() ([]models.CourseTypeCount, error) {
	rows, err := s.db.Query(`
		SELECT course_type, COUNT(*) FROM courses
		GROUP BY course_type ORDER BY course_type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.CourseTypeCount{}
	for rows.Next() {
		var c models.CourseTypeCount
		if err := rows.Scan(&c.CourseType, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// SaveSnapshot persists a timestamped copy of a summary.
func (s *DashboardService) SaveSnapshot(summary models.DashboardSummary) (models.DashboardSnapshot, error) {
	snapshot := models.DashboardSnapshot{
		ID:        uuid.New().String(),
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO dashboard_snapshots (id, courses_count, feedback_count, users_count, comment_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.DashboardSnapshot{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(snapshot.ID, summary.CoursesCount, summary.FeedbackCount,
		summary.UsersCount, summary.CommentRate, snapshot.CreatedAt)
	if err != nil {
		return models.DashboardSnapshot{}, err
	}
	return snapshot, nil
}

// RecentSnapshots retrieves stored summaries, newest first.
func (s *DashboardService) RecentSnapshots(limit int) ([]models.DashboardSnapshot, error) {
	rows, err := s.db.Query(`
		SELECT id, courses_count, feedback_count, users_count, comment_rate, created_at
		FROM dashboard_snapshots ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []models.DashboardSnapshot{}
	for rows.Next() {
		var snap models.DashboardSnapshot
		if err := rows.Scan(&snap.ID, &snap.Summary.CoursesCount, &snap.Summary.FeedbackCount,
			&snap.Summary.UsersCount, &snap.Summary.CommentRate, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
