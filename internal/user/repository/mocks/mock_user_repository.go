package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/evoltsoft/station-api/internal/user/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	// The real repository fills in store-assigned fields on success.
	if user != nil && args.Error(0) == nil {
		user.ID = "mocked-user-id"
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmailOrPhone(ctx context.Context, email, phone *string) (*domain.User, error) {
	args := m.Called(ctx, email, phone)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
