package services

import (
	"fmt"
	"net/mail"
)

// FieldErrors collects validation failures keyed by input field name.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Any reports whether any field failed validation.
func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}

// UserFinder is the lookup capability the registration validator needs
// from the user store.
type UserFinder interface {
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
}

// RegisterMode selects which uniqueness checks a registration flow runs.
type RegisterMode int

const (
	// RegisterFull checks both username and email uniqueness.
	RegisterFull RegisterMode = iota
	// RegisterQuick is the dashboard signup flow: the email doubles as the
	// username and the username-uniqueness check is intentionally skipped.
	RegisterQuick
)

// RegisterForm is a registration submission.
type RegisterForm struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Confirm   string `json:"confirm"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Validate runs structural checks first and returns without touching the
// store if any fail. Only then are the uniqueness lookups performed, one at
// a time: a taken username short-circuits before the email is checked.
func (f *RegisterForm) Validate(store UserFinder, mode RegisterMode) (FieldErrors, error) {
	fe := FieldErrors{}

	if mode == RegisterFull {
		checkLength(fe, "username", f.Username, 3, 25)
	} else {
		checkLength(fe, "firstName", f.FirstName, 3, 25)
		checkLength(fe, "lastName", f.LastName, 3, 25)
	}

	checkLength(fe, "email", f.Email, 6, 40)
	if _, err := mail.ParseAddress(f.Email); err != nil {
		fe.Add("email", "Invalid email address")
	}

	checkLength(fe, "password", f.Password, 6, 40)
	if f.Confirm != f.Password {
		fe.Add("confirm", "Passwords must match")
	}

	if fe.Any() {
		return fe, nil
	}

	if mode == RegisterFull {
		taken, err := store.UsernameExists(f.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			fe.Add("username", "Username already registered")
			return fe, nil
		}
	}

	taken, err := store.EmailExists(f.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		fe.Add("email", "Email already registered")
	}
	return fe, nil
}

func checkLength(fe FieldErrors, field, value string, min, max int) {
	if len(value) < min || len(value) > max {
		fe.Add(field, fmt.Sprintf("Field must be between %d and %d characters long", min, max))
	}
}
