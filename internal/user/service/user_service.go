package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/evoltsoft/station-api/internal/platform/logger"
	"github.com/evoltsoft/station-api/internal/platform/token"
	"github.com/evoltsoft/station-api/internal/user/domain"
	"github.com/evoltsoft/station-api/internal/user/repository"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrMissingContact    = errors.New("please provide either email or phone")
	ErrMissingPassword   = errors.New("password is required")
)

type UserService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens *token.Manager
}

func NewUserService(repo repository.UserRepository, tokens *token.Manager) UserService {
	return &userService{repo: repo, tokens: tokens}
}

// normalizeContact trims both identifiers, lowercases the email and drops
// fields that are empty after trimming.
func normalizeContact(email, phone *string) (*string, *string) {
	if email != nil {
		e := strings.TrimSpace(strings.ToLower(*email))
		if e == "" {
			email = nil
		} else {
			email = &e
		}
	}
	if phone != nil {
		p := strings.TrimSpace(*phone)
		if p == "" {
			phone = nil
		} else {
			phone = &p
		}
	}
	return email, phone
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	email, phone := normalizeContact(req.Email, req.Phone)
	if email == nil && phone == nil {
		return nil, ErrMissingContact
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, ErrMissingPassword
	}

	var fieldErrs []string
	if email != nil && !domain.ValidEmail(*email) {
		fieldErrs = append(fieldErrs, "please enter a valid email")
	}
	if phone != nil && !domain.ValidPhone(*phone) {
		fieldErrs = append(fieldErrs, "please enter a valid phone number")
	}
	if len(fieldErrs) > 0 {
		return nil, &domain.ValidationError{Errors: fieldErrs}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("User %d", rand.Intn(10000))
	}

	// Best-effort pre-check; the unique indexes are the real guarantee.
	_, err := s.repo.FindByEmailOrPhone(ctx, email, phone)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		logger.Error("Register: failed to check existing user", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserConflict) {
			return nil, ErrUserAlreadyExists
		}
		logger.Error("Register: failed to create user in repo", err)
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	user.PasswordHash = "" // Strip before returning
	return user, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	email, phone := normalizeContact(req.Email, req.Phone)
	if email == nil && phone == nil {
		return nil, ErrMissingContact
	}

	user, err := s.repo.FindByEmailOrPhone(ctx, email, phone)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, repository.ErrUserNotFound
		}
		logger.Error("Login: failed to look up user", err)
		return nil, fmt.Errorf("could not process login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	tokenString, err := s.tokens.Create(user.ID)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	user.PasswordHash = "" // Strip before returning
	return &domain.LoginResponse{
		User:  *user,
		Token: tokenString,
	}, nil
}
