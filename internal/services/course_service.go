package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/campusboard/coursefeed-be/internal/models"
)

// CourseServiceProvider defines the interface for course services.
type CourseServiceProvider interface {
	GetAllCourses() ([]models.Course, error)
	GetCourseByID(id int64) (models.Course, error)
	CreateCourse(course models.Course) (models.Course, error)
}

// CourseService provides business logic for course management.
type CourseService struct {
	db *sql.DB
}

// NewCourseService creates a new CourseService.
func NewCourseService(db *sql.DB) *CourseService {
	return &CourseService{db: db}
}

// GetAllCourses retrieves every course, ordered by ID.
func (s *CourseService) GetAllCourses() ([]models.Course, error) {
	rows, err := s.db.Query(`
		SELECT id, code, name, description, semester, link, course_type
		FROM courses ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Semester, &c.Link, &c.CourseType); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourseByID retrieves a single course.
func (s *CourseService) GetCourseByID(id int64) (models.Course, error) {
	row := s.db.QueryRow(`
		SELECT id, code, name, description, semester, link, course_type
		FROM courses WHERE id = ?`, id)
	var c models.Course
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Semester, &c.Link, &c.CourseType)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Course{}, fmt.Errorf("course with ID %d not found", id)
		}
		return models.Course{}, err
	}
	return c, nil
}

// CreateCourse inserts a new course. The course code is unique.
func (s *CourseService) CreateCourse(course models.Course) (models.Course, error) {
	stmt, err := s.db.Prepare(`
		INSERT INTO courses (code, name, description, semester, link, course_type)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Course{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(course.Code, course.Name, course.Description, course.Semester, course.Link, course.CourseType)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.Course{}, fmt.Errorf("course code %s already exists", course.Code)
		}
		return models.Course{}, err
	}

	course.ID, err = res.LastInsertId()
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}
