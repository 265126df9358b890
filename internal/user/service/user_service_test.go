package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/evoltsoft/station-api/internal/platform/token"
	"github.com/evoltsoft/station-api/internal/user/domain"
	"github.com/evoltsoft/station-api/internal/user/repository"
	"github.com/evoltsoft/station-api/internal/user/repository/mocks"
)

func strPtr(s string) *string { return &s }

func newTestService(repo repository.UserRepository) UserService {
	return NewUserService(repo, token.NewManager("test-secret"))
}

func TestUserService_Register(t *testing.T) {
	ctx := context.TODO()

	t.Run("Successful registration", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(nil, repository.ErrUserNotFound).Once()
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		user, err := svc.Register(ctx, domain.RegisterRequest{
			Name:     "Alice",
			Email:    strPtr("  Alice@Example.com "),
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "alice@example.com", *user.Email) // normalized
		assert.NotEmpty(t, user.ID)
		assert.Empty(t, user.PasswordHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Name defaults when omitted", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(nil, repository.ErrUserNotFound).Once()
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		user, err := svc.Register(ctx, domain.RegisterRequest{
			Email:    strPtr("bob@example.com"),
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.Regexp(t, `^User \d{1,4}$`, user.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing email and phone", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		user, err := svc.Register(ctx, domain.RegisterRequest{Password: "password123"})

		assert.ErrorIs(t, err, ErrMissingContact)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Blank email and phone after trimming", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		_, err := svc.Register(ctx, domain.RegisterRequest{
			Email:    strPtr("   "),
			Phone:    strPtr(""),
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrMissingContact)
	})

	t.Run("Missing password", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		_, err := svc.Register(ctx, domain.RegisterRequest{
			Email: strPtr("alice@example.com"),
		})

		assert.ErrorIs(t, err, ErrMissingPassword)
	})

	t.Run("Invalid email pattern", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		_, err := svc.Register(ctx, domain.RegisterRequest{
			Email:    strPtr("not-an-email"),
			Password: "password123",
		})

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("User already exists via pre-check", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		existing := &domain.User{ID: "user-1", Email: strPtr("alice@example.com")}
		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(existing, nil).Once()

		user, err := svc.Register(ctx, domain.RegisterRequest{
			Email:    strPtr("alice@example.com"),
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("User already exists via unique index", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(nil, repository.ErrUserNotFound).Once()
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*domain.User")).
			Return(repository.ErrUserConflict).Once()

		_, err := svc.Register(ctx, domain.RegisterRequest{
			Email:    strPtr("alice@example.com"),
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error on CreateUser", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(nil, repository.ErrUserNotFound).Once()
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*domain.User")).
			Return(errors.New("database error")).Once()

		_, err := svc.Register(ctx, domain.RegisterRequest{
			Email:    strPtr("alice@example.com"),
			Password: "password123",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "could not save user")
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.TODO()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	storedUser := func() *domain.User {
		return &domain.User{
			ID:           "user-123",
			Name:         "Alice",
			Email:        strPtr("alice@example.com"),
			PasswordHash: string(hashedPassword),
		}
	}

	t.Run("Successful login", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(storedUser(), nil).Once()

		resp, err := svc.Login(ctx, domain.LoginRequest{
			Email:    strPtr("alice@example.com"),
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, "user-123", resp.User.ID)
		assert.NotEmpty(t, resp.Token)
		assert.Empty(t, resp.User.PasswordHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Token embeds the user id", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		tm := token.NewManager("test-secret")
		svc := NewUserService(mockRepo, tm)

		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(storedUser(), nil).Once()

		resp, err := svc.Login(ctx, domain.LoginRequest{
			Email:    strPtr("alice@example.com"),
			Password: "password123",
		})

		assert.NoError(t, err)
		userID, err := tm.Verify(resp.Token)
		assert.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("Missing email and phone", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		resp, err := svc.Login(ctx, domain.LoginRequest{Password: "password123"})

		assert.ErrorIs(t, err, ErrMissingContact)
		assert.Nil(t, resp)
	})

	t.Run("User not found", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(nil, repository.ErrUserNotFound).Once()

		resp, err := svc.Login(ctx, domain.LoginRequest{
			Email:    strPtr("nobody@example.com"),
			Password: "password123",
		})

		assert.ErrorIs(t, err, repository.ErrUserNotFound)
		assert.Nil(t, resp)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("FindByEmailOrPhone", ctx, mock.Anything, mock.Anything).
			Return(storedUser(), nil).Once()

		resp, err := svc.Login(ctx, domain.LoginRequest{
			Email:    strPtr("alice@example.com"),
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, ErrInvalidPassword)
		assert.Nil(t, resp)
	})
}
