package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/campusboard/coursefeed-be/internal/auth"
	"github.com/campusboard/coursefeed-be/internal/models"
	"github.com/google/uuid"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	Register(form RegisterForm, mode RegisterMode) (models.User, FieldErrors, error)
	AuthenticateUser(username, password string) (models.User, error)
	ListUsers() ([]models.UserView, error)
	UpdatePassword(id, currentPassword, newPassword string) error
	DeleteUser(id string) error
}

// UserService provides business logic for user management.
type UserService struct {
	db         *sql.DB
	bcryptCost int
	events     EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, bcryptCost int, events EventServiceProvider) *UserService {
	return &UserService{db: db, bcryptCost: bcryptCost, events: events}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, email, first_name, last_name, active, is_admin, created_at
		FROM users WHERE id = ?`, id)
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName,
		&user.LastName, &user.Active, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user with ID %s not found", id)
		}
		return models.User{}, err
	}
	return user, nil
}

// getUserByUsername retrieves a user by username, including the password hash.
func (s *UserService) getUserByUsername(username string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, email, password_hash, first_name, last_name, active, is_admin, created_at
		FROM users WHERE username = ?`, username)
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Active, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s not found", username)
		}
		return models.User{}, err
	}
	return user, nil
}

// UsernameExists reports whether a username is already registered.
func (s *UserService) UsernameExists(username string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&n)
	return n > 0, err
}

// EmailExists reports whether an email is already registered.
func (s *UserService) EmailExists(email string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&n)
	return n > 0, err
}

// Register validates a registration submission and creates the account.
// Validation failures come back as FieldErrors, never as an error; the error
// return is reserved for store access problems.
func (s *UserService) Register(form RegisterForm, mode RegisterMode) (models.User, FieldErrors, error) {
	if mode == RegisterQuick {
		// The dashboard signup flow registers the email as the username.
		form.Username = form.Email
	}

	fieldErrs, err := form.Validate(s, mode)
	if err != nil {
		return models.User{}, nil, err
	}
	if fieldErrs.Any() {
		return models.User{}, fieldErrs, nil
	}

	hash, err := auth.HashPassword(form.Password, s.bcryptCost)
	if err != nil {
		return models.User{}, nil, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, active, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.User{}, nil, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Active, user.IsAdmin, user.CreatedAt)
	if err != nil {
		// A concurrent registration can slip between the uniqueness check and
		// the insert; the constraint violation becomes a field error.
		if fe, ok := constraintFieldError(err); ok {
			return models.User{}, fe, nil
		}
		return models.User{}, nil, err
	}

	if s.events != nil {
		s.events.CreateEvent("user.register", "info",
			fmt.Sprintf("User '%s' registered.", user.Username), nil)
	}

	user.PasswordHash = ""
	return user, nil, nil
}

// constraintFieldError maps a unique-constraint violation on the users table
// to the matching "already registered" field error.
func constraintFieldError(err error) (FieldErrors, bool) {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil, false
	}
	fe := FieldErrors{}
	if strings.Contains(msg, "users.username") {
		fe.Add("username", "Username already registered")
	} else if strings.Contains(msg, "users.email") {
		fe.Add("email", "Email already registered")
	} else {
		return nil, false
	}
	return fe, true
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	user, err := s.getUserByUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("authentication failed: user not found")
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, fmt.Errorf("authentication failed: invalid password")
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// ListUsers returns the projection of every user, newest first.
func (s *UserService) ListUsers() ([]models.UserView, error) {
	rows, err := s.db.Query(`
		SELECT id, username, email, first_name, last_name, active, is_admin, created_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []models.UserView{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName,
			&user.LastName, &user.Active, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, err
		}
		views = append(views, user.View())
	}
	return views, rows.Err()
}

// UpdatePassword verifies the current password, then hashes and sets a new one.
func (s *UserService) UpdatePassword(id, currentPassword, newPassword string) error {
	var storedHash string
	if err := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id).Scan(&storedHash); err != nil {
		return fmt.Errorf("could not find user to update password")
	}

	if !auth.CheckPassword(storedHash, currentPassword) {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", hash, id)
	return err
}

// DeleteUser removes a user from the database.
func (s *UserService) DeleteUser(id string) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}
