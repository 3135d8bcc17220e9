package services

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/campusboard/coursefeed-be/internal/database"
	"github.com/stretchr/testify/require"
)

// setupDB opens a named in-memory sqlite database and applies the schema.
func setupDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := database.New(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func insertUser(t *testing.T, db *sql.DB, id, username string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO users (id, username, email, password_hash, active, created_at)
		VALUES (?, ?, ?, 'x', TRUE, ?)`,
		id, username, username+"@example.com", time.Now().UTC())
	require.NoError(t, err)
}

func insertCourse(t *testing.T, db *sql.DB, id int64, name, courseType string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO courses (id, code, name, semester, course_type)
		VALUES (?, ?, ?, '2025-fall', ?)`,
		id, fmt.Sprintf("C-%d", id), name, courseType)
	require.NoError(t, err)
}

func insertFeedback(t *testing.T, db *sql.DB, courseID int64, userID, text string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO feedback (course_id, user_id, feedback, created_at)
		VALUES (?, ?, ?, ?)`,
		courseID, userID, text, time.Now().UTC())
	require.NoError(t, err)
}
