package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jialekhooo/interviewbot/internal/db"
	"github.com/jialekhooo/interviewbot/internal/server/middleware"
	"github.com/jialekhooo/interviewbot/internal/types"
)

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	users *UserService
	jwt   *JWTService
}

func NewAuthHandler(users *UserService, jwt *JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		log.Printf("[AUTH] register failed for %s: %v", req.Email, err)
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := h.jwt.Generate(user.ID.String())
	if err != nil {
		log.Printf("[AUTH] token generation failed: %v", err)
		errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	jsonResponse(w, http.StatusCreated, types.LoginResponse{
		User:  apiUser(user),
		Token: token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := h.jwt.Generate(user.ID.String())
	if err != nil {
		log.Printf("[AUTH] token generation failed: %v", err)
		errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	jsonResponse(w, http.StatusOK, types.LoginResponse{
		User:  apiUser(user),
		Token: token,
	})
}

// UpdatePassword handles PUT /auth/password for the authenticated user.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := h.users.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func apiUser(u *db.User) *types.User {
	return &types.User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		PasswordSet: u.PasswordSet,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// authenticatedUserID pulls the user ID that the auth middleware stored on
// the request context.
func authenticatedUserID(r *http.Request) (uuid.UUID, error) {
	raw, ok := middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil, fmt.Errorf("no user in context")
	}
	return uuid.Parse(raw)
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		parts = append(parts, fmt.Sprintf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
