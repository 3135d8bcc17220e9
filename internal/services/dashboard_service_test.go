package services

import (
	"testing"

	"github.com/campusboard/coursefeed-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryEmptyDatabase(t *testing.T) {
	db := setupDB(t, "dash_empty")
	svc := NewDashboardService(db)

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, models.DashboardSummary{CommentRate: "0.00%"}, summary)
}

func TestSummaryCounts(t *testing.T) {
	db := setupDB(t, "dash_counts")
	svc := NewDashboardService(db)

	insertUser(t, db, "u1", "alice")
	insertUser(t, db, "u2", "bob")
	insertUser(t, db, "u3", "carol")
	insertCourse(t, db, 1, "Databases", "core")
	insertCourse(t, db, 2, "Compilers", "elective")
	insertFeedback(t, db, 1, "u1", "great course")

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, models.DashboardSummary{
		CoursesCount:  2,
		FeedbackCount: 1,
		UsersCount:    3,
		CommentRate:   "50.00%",
	}, summary)
}

func TestCommentRate(t *testing.T) {
	assert.Equal(t, "0.00%", commentRate(0, 0))
	assert.Equal(t, "0.00%", commentRate(5, 0))
	assert.Equal(t, "50.00%", commentRate(1, 2))
	assert.Equal(t, "150.00%", commentRate(3, 2))
	assert.Equal(t, "33.33%", commentRate(1, 3))
}

func TestTopCoursesOrderAndTieBreak(t *testing.T) {
	db := setupDB(t, "dash_top")
	svc := NewDashboardService(db)

	for _, u := range []string{"u1", "u2", "u3"} {
		insertUser(t, db, u, u)
	}
	insertCourse(t, db, 1, "Algorithms", "core")
	insertCourse(t, db, 2, "Networks", "core")
	insertCourse(t, db, 3, "Ethics", "elective")

	// Counts: course 1 -> 3, course 2 -> 3, course 3 -> 1
	for _, u := range []string{"u1", "u2", "u3"} {
		insertFeedback(t, db, 1, u, "ok")
		insertFeedback(t, db, 2, u, "ok")
	}
	insertFeedback(t, db, 3, "u1", "ok")

	counts, err := svc.TopCourses(5)
	require.NoError(t, err)
	require.Len(t, counts, 3)

	// Equal counts order by ascending course ID.
	assert.Equal(t, models.CourseFeedbackCount{CourseID: 1, CourseName: "Algorithms", FeedbackCount: 3}, counts[0])
	assert.Equal(t, models.CourseFeedbackCount{CourseID: 2, CourseName: "Networks", FeedbackCount: 3}, counts[1])
	assert.Equal(t, models.CourseFeedbackCount{CourseID: 3, CourseName: "Ethics", FeedbackCount: 1}, counts[2])
}

func TestTopCoursesLimit(t *testing.T) {
	db := setupDB(t, "dash_limit")
	svc := NewDashboardService(db)

	insertUser(t, db, "u1", "alice")
	for id := int64(1); id <= 7; id++ {
		insertCourse(t, db, id, "Course", "core")
		insertFeedback(t, db, id, "u1", "ok")
	}

	counts, err := svc.TopCourses(0) // non-positive falls back to 5
	require.NoError(t, err)
	assert.Len(t, counts, 5)

	counts, err = svc.TopCourses(2)
	require.NoError(t, err)
	assert.Len(t, counts, 2)
}

func TestCoursesByType(t *testing.T) {
	db := setupDB(t, "dash_types")
	svc := NewDashboardService(db)

	insertCourse(t, db, 1, "Algorithms", "core")
	insertCourse(t, db, 2, "Networks", "core")
	insertCourse(t, db, 3, "Ethics", "elective")

	counts, err := svc.CoursesByType()
	require.NoError(t, err)
	assert.Equal(t, []models.CourseTypeCount{
		{CourseType: "core", Count: 2},
		{CourseType: "elective", Count: 1},
	}, counts)
}

func TestCoursesByTypeEmpty(t *testing.T) {
	db := setupDB(t, "dash_types_empty")
	svc := NewDashboardService(db)

	counts, err := svc.CoursesByType()
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := setupDB(t, "dash_snap")
	svc := NewDashboardService(db)

	summary := models.DashboardSummary{CoursesCount: 2, FeedbackCount: 1, UsersCount: 3, CommentRate: "50.00%"}
	snap, err := svc.SaveSnapshot(summary)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)

	stored, err := svc.RecentSnapshots(10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, snap.ID, stored[0].ID)
	assert.Equal(t, summary, stored[0].Summary)
}
