package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jialekhooo/interviewbot/internal/config"
	"github.com/jialekhooo/interviewbot/internal/types"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	svc, _ := newTestUserService(t)
	jwtSvc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	return NewAuthHandler(svc, jwtSvc)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "long enough password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	h := newTestAuthHandler(t)

	// Password below the minimum length.
	rec := postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "not-an-email",
		Password: "long enough password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "long enough password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", types.LoginRequest{
		Email:    "ada@example.com",
		Password: "long enough password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", types.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong password here",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
