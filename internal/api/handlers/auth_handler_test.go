package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusboard/coursefeed-be/internal/auth"
	"github.com/campusboard/coursefeed-be/internal/models"
	"github.com/campusboard/coursefeed-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	user      models.User
	fieldErrs services.FieldErrors
	authErr   error
	lastMode  services.RegisterMode
}

func (s *stubUserService) GetUserByID(id string) (models.User, error) { return s.user, nil }

func (s *stubUserService) Register(form services.RegisterForm, mode services.RegisterMode) (models.User, services.FieldErrors, error) {
	s.lastMode = mode
	if s.fieldErrs.Any() {
		return models.User{}, s.fieldErrs, nil
	}
	return s.user, nil, nil
}

func (s *stubUserService) AuthenticateUser(username, password string) (models.User, error) {
	if s.authErr != nil {
		return models.User{}, s.authErr
	}
	return s.user, nil
}

func (s *stubUserService) ListUsers() ([]models.UserView, error) { return nil, nil }
func (s *stubUserService) UpdatePassword(id, current, next string) error {
	return nil
}
func (s *stubUserService) DeleteUser(id string) error { return nil }

func TestRegisterReturnsFieldErrors(t *testing.T) {
	fe := services.FieldErrors{}
	fe.Add("username", "Username already registered")
	svc := &stubUserService{fieldErrs: fe}
	h := NewAuthHandler(svc, auth.NewManager("test-secret"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"username":"gopher","email":"gopher@example.com","password":"hunter22","confirm":"hunter22"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Username already registered"}, resp.Errors["username"])
	assert.Equal(t, services.RegisterFull, svc.lastMode)
}

func TestSignupUsesQuickMode(t *testing.T) {
	svc := &stubUserService{user: models.User{ID: "u-1", Username: "gopher@example.com"}}
	h := NewAuthHandler(svc, auth.NewManager("test-secret"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"firstName":"Gordon","lastName":"Gopher","email":"gopher@example.com","password":"hunter22","confirm":"hunter22"}`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, services.RegisterQuick, svc.lastMode)
}

func TestLoginSetsTokenAndCookie(t *testing.T) {
	svc := &stubUserService{user: models.User{ID: "u-1", Username: "gopher"}}
	h := NewAuthHandler(svc, auth.NewManager("test-secret"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"gopher","password":"hunter22"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string          `json:"token"`
		User  models.UserView `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "gopher", resp.User.Username)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)

	// The issued token round-trips through the validator.
	claims, err := auth.NewManager("test-secret").ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := &stubUserService{authErr: assert.AnError}
	h := NewAuthHandler(svc, auth.NewManager("test-secret"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"gopher","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
