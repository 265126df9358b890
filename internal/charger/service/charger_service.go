package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/evoltsoft/station-api/internal/charger/domain"
	"github.com/evoltsoft/station-api/internal/charger/repository"
	"github.com/evoltsoft/station-api/internal/platform/logger"
)

var ErrChargerAlreadyExists = errors.New("charger already exists")

type ChargerService interface {
	CreateCharger(ctx context.Context, req domain.CreateChargerRequest) (*domain.Charger, error)
	GetChargerByID(ctx context.Context, id string) (*domain.Charger, error)
	ListChargers(ctx context.Context, filter domain.ListFilter) ([]domain.Charger, error)
	UpdateCharger(ctx context.Context, id string, changes domain.UpdateChargerRequest) (*domain.Charger, error)
	DeleteCharger(ctx context.Context, id string) error
}

type chargerService struct {
	repo repository.ChargerRepository
}

func NewChargerService(repo repository.ChargerRepository) ChargerService {
	return &chargerService{repo: repo}
}

func (s *chargerService) CreateCharger(ctx context.Context, req domain.CreateChargerRequest) (*domain.Charger, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	charger := req.ToCharger()

	// Best-effort pre-check; the unique index on name is the real guarantee.
	_, err := s.repo.GetChargerByName(ctx, charger.Name)
	if err == nil {
		return nil, ErrChargerAlreadyExists
	}
	if !errors.Is(err, repository.ErrChargerNotFound) {
		logger.Error("CreateCharger: failed to check existing charger", err)
		return nil, fmt.Errorf("could not check existing charger: %w", err)
	}

	if err := s.repo.CreateCharger(ctx, charger); err != nil {
		if errors.Is(err, repository.ErrChargerConflict) {
			return nil, ErrChargerAlreadyExists
		}
		logger.Error("CreateCharger: failed to create charger in repo", err)
		return nil, fmt.Errorf("could not save charger: %w", err)
	}
	return charger, nil
}

func (s *chargerService) GetChargerByID(ctx context.Context, id string) (*domain.Charger, error) {
	return s.repo.GetChargerByID(ctx, id)
}

func (s *chargerService) ListChargers(ctx context.Context, filter domain.ListFilter) ([]domain.Charger, error) {
	return s.repo.ListChargers(ctx, filter)
}

func (s *chargerService) UpdateCharger(ctx context.Context, id string, changes domain.UpdateChargerRequest) (*domain.Charger, error) {
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	charger, err := s.repo.UpdateCharger(ctx, id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrChargerConflict) {
			return nil, ErrChargerAlreadyExists
		}
		return nil, err
	}
	return charger, nil
}

func (s *chargerService) DeleteCharger(ctx context.Context, id string) error {
	return s.repo.DeleteCharger(ctx, id)
}
