package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/repositories"
	"github.com/emontecinos/futbol-tracker/storage"
	"github.com/google/uuid"
)

// MaxCrestSizeBytes limita el peso del escudo subido.
const MaxCrestSizeBytes = 2 << 20

type ClubService interface {
	List(ctx context.Context) ([]models.ClubRanking, error)
	GetByID(ctx context.Context, clubID string) (*models.ClubRanking, error)
	UploadCrest(ctx context.Context, clubID string, contentType string, size int64, file io.Reader) (*models.ClubRanking, error)
	RemoveCrest(ctx context.Context, clubID string) error
}

type clubService struct {
	clubRepo repositories.ClubRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewClubService(clubRepo repositories.ClubRepository, uploader storage.FileUploader, logger *slog.Logger) ClubService {
	return &clubService{
		clubRepo: clubRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *clubService) List(ctx context.Context) ([]models.ClubRanking, error) {
	clubs, err := s.clubRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	for i := range clubs {
		s.populateCrestURL(&clubs[i])
	}
	return clubs, nil
}

func (s *clubService) GetByID(ctx context.Context, clubID string) (*models.ClubRanking, error) {
	club, err := s.clubRepo.GetByID(ctx, nil, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %s: %w", clubID, err)
	}
	s.populateCrestURL(club)
	return club, nil
}

func (s *clubService) UploadCrest(ctx context.Context, clubID string, contentType string, size int64, file io.Reader) (*models.ClubRanking, error) {
	if s.uploader == nil {
		return nil, ErrCrestStorageOffline
	}
	if size > MaxCrestSizeBytes {
		return nil, ErrCrestFileTooLarge
	}
	ext, err := crestExtension(contentType)
	if err != nil {
		return nil, ErrCrestInvalidFormat
	}

	club, err := s.clubRepo.GetByID(ctx, nil, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %s: %w", clubID, err)
	}

	key := fmt.Sprintf("crests/%s/%s%s", clubID, uuid.NewString(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, io.LimitReader(file, MaxCrestSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for club %s: %w", clubID, err)
	}

	previousKey := club.CrestKey
	if err := s.clubRepo.UpdateCrestKey(ctx, nil, clubID, &result.Key); err != nil {
		// El objeto ya quedó en el bucket; se intenta limpiar.
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.Warn("no se pudo limpiar el escudo huérfano", "key", result.Key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to save crest key for club %s: %w", clubID, err)
	}

	if previousKey != nil && *previousKey != "" {
		if delErr := s.uploader.Delete(ctx, *previousKey); delErr != nil {
			s.logger.Warn("no se pudo borrar el escudo anterior", "key", *previousKey, "error", delErr)
		}
	}

	club.CrestKey = &result.Key
	s.populateCrestURL(club)
	return club, nil
}

func (s *clubService) RemoveCrest(ctx context.Context, clubID string) error {
	if s.uploader == nil {
		return ErrCrestStorageOffline
	}
	club, err := s.clubRepo.GetByID(ctx, nil, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return ErrClubNotFound
		}
		return fmt.Errorf("failed to get club %s: %w", clubID, err)
	}
	if club.CrestKey == nil || *club.CrestKey == "" {
		return nil
	}

	if err := s.clubRepo.UpdateCrestKey(ctx, nil, clubID, nil); err != nil {
		return fmt.Errorf("failed to clear crest key for club %s: %w", clubID, err)
	}
	if delErr := s.uploader.Delete(ctx, *club.CrestKey); delErr != nil {
		s.logger.Warn("no se pudo borrar el escudo del bucket", "key", *club.CrestKey, "error", delErr)
	}
	return nil
}

func (s *clubService) populateCrestURL(club *models.ClubRanking) {
	if club == nil || s.uploader == nil {
		return
	}
	if club.CrestKey != nil && *club.CrestKey != "" {
		if url := s.uploader.GetPublicURL(*club.CrestKey); url != "" {
			club.CrestURL = &url
		}
	}
}

func crestExtension(contentType string) (string, error) {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported crest content type %q", contentType)
	}
}
