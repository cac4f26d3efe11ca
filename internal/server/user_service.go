package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jialekhooo/interviewbot/internal/config"
	"github.com/jialekhooo/interviewbot/internal/db"
)

// UserStore is the subset of database operations the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// UserService implements registration, login and password changes on top of
// the user store and the password hashing config.
type UserService struct {
	store    UserStore
	password *config.PasswordConfig
}

func NewUserService(store UserStore, password *config.PasswordConfig) *UserService {
	return &UserService{store: store, password: password}
}

// Register creates a new user with a hashed password. Returns
// ErrEmailAlreadyExists when the email is taken.
func (s *UserService) Register(ctx context.Context, name, email, phone, password string) (*db.User, error) {
	exists, err := s.store.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.password.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	id, err := s.store.CreateUser(ctx, name, email, phone)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, id, hash); err != nil {
		return nil, fmt.Errorf("setting password: %w", err)
	}

	return s.store.GetUser(ctx, id)
}

// Login verifies the credentials and returns the user. Every failure mode
// returns ErrInvalidCredentials so callers cannot probe for registered emails.
func (s *UserService) Login(ctx context.Context, email, password string) (*db.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil || !user.PasswordSet {
		return nil, ErrInvalidCredentials
	}
	if !s.password.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdatePassword changes a user's password after verifying the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !s.password.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.password.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.store.UpdatePassword(ctx, userID, hash)
}
