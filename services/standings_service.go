package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/emontecinos/futbol-tracker/live"
	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/repositories"
	"github.com/emontecinos/futbol-tracker/standings"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// StandingsService coordina toda mutación de la tabla de posiciones.
// Las escrituras se serializan detrás de un mutex único: el recálculo de
// la general y el bono Sub12 leen el conjunto completo de clubes, así que
// dos mutaciones concurrentes producirían lecturas a medio actualizar.
type StandingsService interface {
	ListRankings(ctx context.Context) ([]models.ClubRanking, error)
	GetClub(ctx context.Context, clubID string) (*models.ClubRanking, error)
	SeasonState(ctx context.Context) (models.SeasonState, error)

	ListMatches(ctx context.Context) ([]models.MatchResult, error)
	GetMatch(ctx context.Context, matchID string) (*models.MatchResult, error)

	RecordMatch(ctx context.Context, input models.MatchResultInput) (*models.MatchResult, error)
	EditMatch(ctx context.Context, matchID string, input models.MatchResultInput) (*models.MatchResult, error)
	SetSeriesDisabled(ctx context.Context, clubID string, category models.Category, disabled bool) (*models.ClubRanking, error)
	SetDate3Passed(ctx context.Context, passed bool) (models.SeasonState, error)
	Recalculate(ctx context.Context) ([]models.ClubRanking, error)
	RolloverSeason(ctx context.Context) ([]models.ClubRanking, error)
}

type standingsService struct {
	db         *sql.DB
	clubRepo   repositories.ClubRepository
	matchRepo  repositories.MatchRepository
	seasonRepo repositories.SeasonRepository
	hub        *live.Hub
	logger     *slog.Logger

	mu sync.Mutex
}

func NewStandingsService(
	db *sql.DB,
	clubRepo repositories.ClubRepository,
	matchRepo repositories.MatchRepository,
	seasonRepo repositories.SeasonRepository,
	hub *live.Hub,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		db:         db,
		clubRepo:   clubRepo,
		matchRepo:  matchRepo,
		seasonRepo: seasonRepo,
		hub:        hub,
		logger:     logger,
	}
}

// snapshot es el estado completo de la liga cargado de una vez: toda
// transformación del motor opera sobre esta copia en memoria y el
// resultado se persiste entero dentro de una transacción.
type snapshot struct {
	rankings []models.ClubRanking
	history  []models.MatchResult
	season   models.SeasonState
}

func (s *standingsService) loadSnapshot(ctx context.Context) (*snapshot, error) {
	var snap snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rankings, err := s.clubRepo.List(gCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to load club rankings: %w", err)
		}
		snap.rankings = rankings
		return nil
	})
	g.Go(func() error {
		history, err := s.matchRepo.List(gCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to load match history: %w", err)
		}
		snap.history = history
		return nil
	})
	g.Go(func() error {
		season, err := s.seasonRepo.Get(gCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to load season state: %w", err)
		}
		snap.season = season
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// persistSnapshot escribe el snapshot completo en una transacción. extra
// recibe la transacción para operaciones adicionales (alta o edición del
// partido, vaciado del historial).
func (s *standingsService) persistSnapshot(ctx context.Context, snap *snapshot, extra func(tx *sql.Tx) error) (err error) {
	tx, beginErr := s.db.BeginTx(ctx, nil)
	if beginErr != nil {
		return fmt.Errorf("failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback falló", "error", rbErr, "causa", err)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()

	if extra != nil {
		if err = extra(tx); err != nil {
			return err
		}
	}
	if err = s.clubRepo.SaveAll(ctx, tx, snap.rankings); err != nil {
		return fmt.Errorf("failed to save rankings: %w", err)
	}
	if err = s.seasonRepo.Save(ctx, tx, snap.season); err != nil {
		return fmt.Errorf("failed to save season state: %w", err)
	}
	return nil
}

func validateMatchInput(input models.MatchResultInput) error {
	if input.LocalClubID == "" || input.VisitorClubID == "" {
		return fmt.Errorf("%w: both clubs are required", ErrValidationFailed)
	}
	if input.LocalClubID == input.VisitorClubID {
		return ErrSameClub
	}
	if !input.HasRecordedCategory() {
		return ErrNoRecordedResults
	}
	for category, score := range input.Results {
		if !category.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
		}
		if score.LocalGoals != nil && *score.LocalGoals < 0 {
			return fmt.Errorf("%w: negative goals for %s", ErrValidationFailed, category)
		}
		if score.VisitorGoals != nil && *score.VisitorGoals < 0 {
			return fmt.Errorf("%w: negative goals for %s", ErrValidationFailed, category)
		}
	}
	return nil
}

// checkSameDivision rechaza el cruce de divisiones antes de tocar la
// tabla: las fechas siempre enfrentan clubes de la misma división,
// aunque la Sub12 se tabule unificada. Un club ausente no se reporta
// aquí; ApplyMatch lo detecta con su propio error.
func checkSameDivision(rankings []models.ClubRanking, localID, visitorID string) error {
	var local, visitor *models.ClubRanking
	for i := range rankings {
		switch rankings[i].ID {
		case localID:
			local = &rankings[i]
		case visitorID:
			visitor = &rankings[i]
		}
	}
	if local == nil || visitor == nil {
		return nil
	}
	if local.Division != visitor.Division {
		return fmt.Errorf("%w: %s (%s) vs %s (%s)",
			ErrDivisionMismatch, local.Name, local.Division, visitor.Name, visitor.Division)
	}
	return nil
}

// refreshSub12 reaplica el bono Sub12 cuando corresponde. Una vez
// finalizada, la serie se refinaliza en cada cambio de la tabla; la
// bandera solo vuelve a falso con el cierre de temporada.
func refreshSub12(snap *snapshot) (becameFinal bool) {
	if snap.season.Sub12Finalized || standings.CheckSub12Completion(snap.rankings) {
		snap.rankings = standings.FinalizeSub12(snap.rankings)
		becameFinal = !snap.season.Sub12Finalized
		snap.season.Sub12Finalized = true
	}
	return becameFinal
}

// hasDisabledSeries informa si alguno de los clubes indicados tiene al
// menos una serie deshabilitada.
func hasDisabledSeries(rankings []models.ClubRanking, clubIDs ...string) bool {
	for _, club := range rankings {
		for _, id := range clubIDs {
			if club.ID == id && len(club.DisabledSeries) > 0 {
				return true
			}
		}
	}
	return false
}

func (s *standingsService) ListRankings(ctx context.Context) ([]models.ClubRanking, error) {
	rankings, err := s.clubRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}
	return rankings, nil
}

func (s *standingsService) GetClub(ctx context.Context, clubID string) (*models.ClubRanking, error) {
	club, err := s.clubRepo.GetByID(ctx, nil, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %s: %w", clubID, err)
	}
	return club, nil
}

func (s *standingsService) SeasonState(ctx context.Context) (models.SeasonState, error) {
	season, err := s.seasonRepo.Get(ctx, nil)
	if err != nil {
		return models.SeasonState{}, fmt.Errorf("failed to get season state: %w", err)
	}
	return season, nil
}

func (s *standingsService) ListMatches(ctx context.Context) ([]models.MatchResult, error) {
	matches, err := s.matchRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *standingsService) GetMatch(ctx context.Context, matchID string) (*models.MatchResult, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return match, nil
}

func (s *standingsService) RecordMatch(ctx context.Context, input models.MatchResultInput) (*models.MatchResult, error) {
	if err := validateMatchInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkSameDivision(snap.rankings, input.LocalClubID, input.VisitorClubID); err != nil {
		return nil, err
	}

	match := &models.MatchResult{
		ID:               uuid.NewString(),
		MatchResultInput: input,
	}
	match.Results = input.CloneResults()

	updated, localPoints, visitorPoints, err := standings.ApplyMatch(*match, snap.rankings, standings.Apply)
	if err != nil {
		if errors.Is(err, standings.ErrClubNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrClubNotFound, err)
		}
		return nil, fmt.Errorf("failed to apply match: %w", err)
	}
	match.LocalPoints = localPoints
	match.VisitorPoints = visitorPoints

	snap.rankings = updated
	snap.history = append(snap.history, *match)

	// Con castigos activos sobre alguno de los dos clubes, la ruta
	// incremental no basta: la sobrecarga punitiva se resuelve siempre
	// desde el historial completo.
	if snap.season.Date3Passed && hasDisabledSeries(snap.rankings, match.LocalClubID, match.VisitorClubID) {
		snap.rankings = standings.RecalculateFromMatches(snap.rankings, snap.history, snap.season.Date3Passed)
	}

	becameFinal := refreshSub12(snap)

	err = s.persistSnapshot(ctx, snap, func(tx *sql.Tx) error {
		return s.matchRepo.Create(ctx, tx, match)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fecha registrada",
		"match_id", match.ID, "local", match.LocalClubID, "visitante", match.VisitorClubID,
		"puntos_local", localPoints, "puntos_visitante", visitorPoints)

	s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventMatchRecorded, Payload: match})
	s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventStandingsUpdated, Payload: snap.rankings})
	if becameFinal {
		s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventSub12Finalized, Payload: snap.rankings})
	}
	return match, nil
}

func (s *standingsService) EditMatch(ctx context.Context, matchID string, input models.MatchResultInput) (*models.MatchResult, error) {
	if err := validateMatchInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	existingIdx := -1
	for i := range snap.history {
		if snap.history[i].ID == matchID {
			existingIdx = i
			break
		}
	}
	if existingIdx < 0 {
		return nil, ErrMatchNotFound
	}
	previous := snap.history[existingIdx]

	if err := checkSameDivision(snap.rankings, input.LocalClubID, input.VisitorClubID); err != nil {
		return nil, err
	}

	// Revertir la versión anterior y aplicar la nueva es la misma
	// transformación con factor opuesto, así la edición nunca deja
	// residuos en las estadísticas.
	reverted, _, _, err := standings.ApplyMatch(previous, snap.rankings, standings.Revert)
	if err != nil {
		return nil, fmt.Errorf("failed to revert previous result: %w", err)
	}

	match := &models.MatchResult{
		ID:               matchID,
		MatchResultInput: input,
	}
	match.Results = input.CloneResults()
	updated, localPoints, visitorPoints, err := standings.ApplyMatch(*match, reverted, standings.Apply)
	if err != nil {
		if errors.Is(err, standings.ErrClubNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrClubNotFound, err)
		}
		return nil, fmt.Errorf("failed to apply edited match: %w", err)
	}
	match.LocalPoints = localPoints
	match.VisitorPoints = visitorPoints

	snap.rankings = updated
	snap.history[existingIdx] = *match

	affected := []string{previous.LocalClubID, previous.VisitorClubID, match.LocalClubID, match.VisitorClubID}
	if snap.season.Date3Passed && hasDisabledSeries(snap.rankings, affected...) {
		snap.rankings = standings.RecalculateFromMatches(snap.rankings, snap.history, snap.season.Date3Passed)
	}

	becameFinal := refreshSub12(snap)

	err = s.persistSnapshot(ctx, snap, func(tx *sql.Tx) error {
		return s.matchRepo.Update(ctx, tx, match)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fecha editada", "match_id", match.ID)

	s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventMatchEdited, Payload: match})
	s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventStandingsUpdated, Payload: snap.rankings})
	if becameFinal {
		s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventSub12Finalized, Payload: snap.rankings})
	}
	return match, nil
}

func (s *standingsService) SetSeriesDisabled(ctx context.Context, clubID string, category models.Category, disabled bool) (*models.ClubRanking, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	clubIdx := -1
	for i := range snap.rankings {
		if snap.rankings[i].ID == clubID {
			clubIdx = i
			break
		}
	}
	if clubIdx < 0 {
		return nil, ErrClubNotFound
	}

	club := &snap.rankings[clubIdx]
	if disabled {
		if club.DisabledSeries == nil {
			club.DisabledSeries = make(map[models.Category]bool)
		}
		club.DisabledSeries[category] = true
	} else {
		delete(club.DisabledSeries, category)
		if len(club.DisabledSeries) == 0 {
			club.DisabledSeries = nil
		}
	}

	// La aplicabilidad del castigo cambió: recálculo completo desde el
	// historial para todos los pares club/serie.
	snap.rankings = standings.RecalculateFromMatches(snap.rankings, snap.history, snap.season.Date3Passed)
	becameFinal := refreshSub12(snap)

	if err = s.persistSnapshot(ctx, snap, nil); err != nil {
		return nil, err
	}

	s.logger.Info("serie deshabilitada actualizada",
		"club_id", clubID, "serie", category, "deshabilitada", disabled)

	s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventStandingsUpdated, Payload: snap.rankings})
	if becameFinal {
		s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventSub12Finalized, Payload: snap.rankings})
	}

	result := snap.rankings[clubIdx]
	return &result, nil
}

func (s *standingsService) SetDate3Passed(ctx context.Context, passed bool) (models.SeasonState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return models.SeasonState{}, err
	}

	snap.season.Date3Passed = passed
	snap.rankings = standings.RecalculateFromMatches(snap.rankings, snap.history, snap.season.Date3Passed)
	refreshSub12(snap)

	if err = s.persistSnapshot(ctx, snap, nil); err != nil {
		return models.SeasonState{}, err
	}

	s.logger.Info("fecha 3 actualizada", "pasada", passed)
	s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventStandingsUpdated, Payload: snap.rankings})
	return snap.season, nil
}

// Recalculate reconstruye toda la tabla desde el historial. Existe como
// operación administrativa para reparar una tabla inconsistente.
func (s *standingsService) Recalculate(ctx context.Context) ([]models.ClubRanking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	snap.rankings = standings.RecalculateFromMatches(snap.rankings, snap.history, snap.season.Date3Passed)
	refreshSub12(snap)

	if err = s.persistSnapshot(ctx, snap, nil); err != nil {
		return nil, err
	}

	s.logger.Info("tabla recalculada desde el historial", "partidos", len(snap.history))
	s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventStandingsUpdated, Payload: snap.rankings})
	return snap.rankings, nil
}

func (s *standingsService) RolloverSeason(ctx context.Context) ([]models.ClubRanking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	next, err := standings.RolloverSeason(snap.rankings)
	if err != nil {
		if errors.Is(err, standings.ErrInsufficientClubs) {
			return nil, fmt.Errorf("%w: %v", ErrRolloverNotPossible, err)
		}
		return nil, fmt.Errorf("failed to roll over season: %w", err)
	}

	// Temporada nueva: sin castigos arrastrados, banderas en cero y el
	// historial de fechas vacío.
	for i := range next {
		next[i].DisabledSeries = nil
	}
	snap.rankings = next
	snap.season = models.SeasonState{}

	err = s.persistSnapshot(ctx, snap, func(tx *sql.Tx) error {
		return s.matchRepo.DeleteAll(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("temporada cerrada", "clubes", len(snap.rankings))
	s.hub.BroadcastToRoom(live.RoomStandings, live.Event{Type: live.EventSeasonRolledOver, Payload: snap.rankings})
	return snap.rankings, nil
}
