package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T, name string) *UserService {
	t.Helper()
	db := setupDB(t, name)
	return NewUserService(db, bcrypt.MinCost, NewEventService(db))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newUserService(t, "usersvc_register")

	user, fieldErrs, err := svc.Register(validForm(), RegisterFull)
	require.NoError(t, err)
	require.False(t, fieldErrs.Any())

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "gopher", user.Username)
	assert.True(t, user.Active)
	assert.Empty(t, user.PasswordHash, "hash must not be returned to callers")

	authed, err := svc.AuthenticateUser("gopher", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.Empty(t, authed.PasswordHash)

	_, err = svc.AuthenticateUser("gopher", "wrong-password")
	assert.Error(t, err)

	_, err = svc.AuthenticateUser("nobody", "hunter22")
	assert.Error(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newUserService(t, "usersvc_dup_username")

	_, fieldErrs, err := svc.Register(validForm(), RegisterFull)
	require.NoError(t, err)
	require.False(t, fieldErrs.Any())

	form := validForm()
	form.Email = "other@example.com"
	_, fieldErrs, err = svc.Register(form, RegisterFull)
	require.NoError(t, err)
	assert.Equal(t, []string{"Username already registered"}, fieldErrs["username"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService(t, "usersvc_dup_email")

	_, fieldErrs, err := svc.Register(validForm(), RegisterFull)
	require.NoError(t, err)
	require.False(t, fieldErrs.Any())

	form := validForm()
	form.Username = "other"
	_, fieldErrs, err = svc.Register(form, RegisterFull)
	require.NoError(t, err)
	assert.Equal(t, []string{"Email already registered"}, fieldErrs["email"])
}

func TestRegisterQuickUsesEmailAsUsername(t *testing.T) {
	svc := newUserService(t, "usersvc_quick")

	form := validForm()
	form.Username = ""
	user, fieldErrs, err := svc.Register(form, RegisterQuick)
	require.NoError(t, err)
	require.False(t, fieldErrs.Any())

	assert.Equal(t, "gopher@example.com", user.Username)
	assert.Equal(t, "Gordon", user.FirstName)

	_, err = svc.AuthenticateUser("gopher@example.com", "hunter22")
	assert.NoError(t, err)
}

func TestListUsersProjection(t *testing.T) {
	svc := newUserService(t, "usersvc_list")

	_, fieldErrs, err := svc.Register(validForm(), RegisterFull)
	require.NoError(t, err)
	require.False(t, fieldErrs.Any())

	views, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "gopher", view.Username)
	assert.Equal(t, "Gordon Gopher", view.FullName)
	require.NotNil(t, view.CreatedAt)

	// The raw credential never appears in the serialized projection.
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter22")
	assert.NotContains(t, string(data), "password")
}

func TestUpdatePassword(t *testing.T) {
	svc := newUserService(t, "usersvc_password")

	user, fieldErrs, err := svc.Register(validForm(), RegisterFull)
	require.NoError(t, err)
	require.False(t, fieldErrs.Any())

	require.Error(t, svc.UpdatePassword(user.ID, "wrong", "newpassword"))
	require.NoError(t, svc.UpdatePassword(user.ID, "hunter22", "newpassword"))

	_, err = svc.AuthenticateUser("gopher", "hunter22")
	assert.Error(t, err)
	_, err = svc.AuthenticateUser("gopher", "newpassword")
	assert.NoError(t, err)
}

func TestConstraintFieldError(t *testing.T) {
	fe, ok := constraintFieldError(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"))
	require.True(t, ok)
	assert.Equal(t, []string{"Username already registered"}, fe["username"])

	fe, ok = constraintFieldError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))
	require.True(t, ok)
	assert.Equal(t, []string{"Email already registered"}, fe["email"])

	_, ok = constraintFieldError(errors.New("database is locked"))
	assert.False(t, ok)
}
