package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/repositories"
	"github.com/emontecinos/futbol-tracker/utils"
	"github.com/google/uuid"
)

type PlayerService interface {
	Register(ctx context.Context, input models.PlayerInput) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	GetByRut(ctx context.Context, rut string) (*models.Player, error)
	ListByClub(ctx context.Context, clubID string) ([]models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	clubRepo   repositories.ClubRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, clubRepo repositories.ClubRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		clubRepo:   clubRepo,
	}
}

func (s *playerService) Register(ctx context.Context, input models.PlayerInput) (*models.Player, error) {
	if !utils.ValidateRut(input.Rut) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRut, input.Rut)
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrValidationFailed)
	}
	if input.BirthDate.IsZero() || input.BirthDate.After(time.Now()) {
		return nil, fmt.Errorf("%w: birth date must be in the past", ErrValidationFailed)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, input.Category)
	}

	if _, err := s.clubRepo.GetByID(ctx, nil, input.ClubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to verify club %s: %w", input.ClubID, err)
	}

	now := time.Now().UTC()
	input.Rut = utils.FormatRut(input.Rut)
	player := &models.Player{
		ID:               uuid.NewString(),
		PlayerInput:      input,
		Age:              utils.CalculateAge(input.BirthDate, now),
		RegistrationDate: now,
	}

	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerRutConflict) {
			return nil, ErrPlayerRutConflict
		}
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) GetByRut(ctx context.Context, rut string) (*models.Player, error) {
	player, err := s.playerRepo.GetByRut(ctx, nil, utils.FormatRut(rut))
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", rut, err)
	}
	return player, nil
}

func (s *playerService) ListByClub(ctx context.Context, clubID string) ([]models.Player, error) {
	players, err := s.playerRepo.ListByClub(ctx, nil, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for club %s: %w", clubID, err)
	}
	return players, nil
}
