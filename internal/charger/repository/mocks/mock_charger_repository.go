package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/evoltsoft/station-api/internal/charger/domain"
)

type MockChargerRepository struct {
	mock.Mock
}

func (m *MockChargerRepository) CreateCharger(ctx context.Context, charger *domain.Charger) error {
	args := m.Called(ctx, charger)
	// The real repository fills in store-assigned fields on success.
	if charger != nil && args.Error(0) == nil {
		charger.ID = "mocked-charger-id"
		charger.CreatedAt = time.Now()
		charger.UpdatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockChargerRepository) GetChargerByID(ctx context.Context, id string) (*domain.Charger, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*domain.Charger), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChargerRepository) GetChargerByName(ctx context.Context, name string) (*domain.Charger, error) {
	args := m.Called(ctx, name)
	if res := args.Get(0); res != nil {
		return res.(*domain.Charger), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChargerRepository) ListChargers(ctx context.Context, filter domain.ListFilter) ([]domain.Charger, error) {
	args := m.Called(ctx, filter)
	if res := args.Get(0); res != nil {
		return res.([]domain.Charger), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChargerRepository) UpdateCharger(ctx context.Context, id string, changes domain.UpdateChargerRequest) (*domain.Charger, error) {
	args := m.Called(ctx, id, changes)
	if res := args.Get(0); res != nil {
		return res.(*domain.Charger), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChargerRepository) DeleteCharger(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
