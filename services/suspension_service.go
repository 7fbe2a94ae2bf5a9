package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/repositories"
	"github.com/emontecinos/futbol-tracker/utils"
	"github.com/google/uuid"
)

type SuspensionService interface {
	Create(ctx context.Context, input models.SuspensionInput) (*models.Suspension, error)
	Update(ctx context.Context, id string, input models.SuspensionInput) (*models.Suspension, error)
	List(ctx context.Context) ([]models.Suspension, error)
	ListActive(ctx context.Context, at time.Time) ([]models.Suspension, error)
}

type suspensionService struct {
	suspensionRepo repositories.SuspensionRepository
	playerRepo     repositories.PlayerRepository
}

func NewSuspensionService(suspensionRepo repositories.SuspensionRepository, playerRepo repositories.PlayerRepository) SuspensionService {
	return &suspensionService{
		suspensionRepo: suspensionRepo,
		playerRepo:     playerRepo,
	}
}

func (s *suspensionService) validate(ctx context.Context, input *models.SuspensionInput) error {
	if !utils.ValidateRut(input.PlayerRut) {
		return fmt.Errorf("%w: %q", ErrInvalidRut, input.PlayerRut)
	}
	if input.Duration <= 0 {
		return ErrSuspensionBadRange
	}
	if !input.Unit.Valid() {
		return fmt.Errorf("%w: unknown suspension unit %q", ErrValidationFailed, input.Unit)
	}
	if input.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrValidationFailed)
	}

	input.PlayerRut = utils.FormatRut(input.PlayerRut)
	if _, err := s.playerRepo.GetByRut(ctx, nil, input.PlayerRut); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to verify player %s: %w", input.PlayerRut, err)
	}
	return nil
}

func (s *suspensionService) Create(ctx context.Context, input models.SuspensionInput) (*models.Suspension, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	suspension := &models.Suspension{
		ID:              uuid.NewString(),
		SuspensionInput: input,
		EndDate:         utils.CalculateEndDate(input.StartDate, input.Duration, input.Unit),
	}
	if err := s.suspensionRepo.Create(ctx, nil, suspension); err != nil {
		return nil, fmt.Errorf("failed to create suspension: %w", err)
	}
	return suspension, nil
}

func (s *suspensionService) Update(ctx context.Context, id string, input models.SuspensionInput) (*models.Suspension, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	suspension := &models.Suspension{
		ID:              id,
		SuspensionInput: input,
		EndDate:         utils.CalculateEndDate(input.StartDate, input.Duration, input.Unit),
	}
	if err := s.suspensionRepo.Update(ctx, nil, suspension); err != nil {
		if errors.Is(err, repositories.ErrSuspensionNotFound) {
			return nil, ErrSuspensionNotFound
		}
		return nil, fmt.Errorf("failed to update suspension %s: %w", id, err)
	}
	return suspension, nil
}

func (s *suspensionService) List(ctx context.Context) ([]models.Suspension, error) {
	suspensions, err := s.suspensionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list suspensions: %w", err)
	}
	return suspensions, nil
}

// ListActive filtra los castigos vigentes al día indicado. El fin es
// exclusivo, el día de término el jugador ya queda libre.
func (s *suspensionService) ListActive(ctx context.Context, at time.Time) ([]models.Suspension, error) {
	all, err := s.suspensionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list suspensions: %w", err)
	}
	active := make([]models.Suspension, 0)
	for _, suspension := range all {
		if suspension.ActiveAt(at) {
			active = append(active, suspension)
		}
	}
	return active, nil
}
