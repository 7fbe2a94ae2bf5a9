package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emontecinos/futbol-tracker/models"
)

var ErrClubNotFound = errors.New("club not found")

// ClubRepository persiste el listado autoritativo de clubes. La estadística
// por serie y las series deshabilitadas van como JSONB: el motor siempre
// carga y guarda el listado completo (load-modify-save), nunca hace
// updates parciales de campos.
type ClubRepository interface {
	List(ctx context.Context, exec SQLExecutor) ([]models.ClubRanking, error)
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.ClubRanking, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	BatchCreate(ctx context.Context, exec SQLExecutor, clubs []models.ClubRanking) error
	SaveAll(ctx context.Context, exec SQLExecutor, clubs []models.ClubRanking) error
	UpdateCrestKey(ctx context.Context, exec SQLExecutor, id string, crestKey *string) error
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

func (r *postgresClubRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const clubColumns = `id, name, division, points, played, won, drawn, lost,
	goals_for, goals_against, goal_difference, category_stats, disabled_series, crest_key`

func (r *postgresClubRepository) scanClub(rowScanner interface{ Scan(...interface{}) error }) (*models.ClubRanking, error) {
	var club models.ClubRanking
	var categoryStatsJSON []byte
	var disabledSeriesJSON []byte
	err := rowScanner.Scan(
		&club.ID, &club.Name, &club.Division,
		&club.Points, &club.Played, &club.Won, &club.Drawn, &club.Lost,
		&club.GoalsFor, &club.GoalsAgainst, &club.GoalDifference,
		&categoryStatsJSON, &disabledSeriesJSON, &club.CrestKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	club.CategoryStats = make(map[models.Category]models.TeamStats, len(models.Categories))
	if len(categoryStatsJSON) > 0 {
		if err := json.Unmarshal(categoryStatsJSON, &club.CategoryStats); err != nil {
			return nil, fmt.Errorf("club %s: decode category_stats: %w", club.ID, err)
		}
	}
	// migración de forma guardada: series que falten arrancan en cero
	for _, category := range models.Categories {
		if _, ok := club.CategoryStats[category]; !ok {
			club.CategoryStats[category] = models.TeamStats{}
		}
	}
	if len(disabledSeriesJSON) > 0 {
		if err := json.Unmarshal(disabledSeriesJSON, &club.DisabledSeries); err != nil {
			return nil, fmt.Errorf("club %s: decode disabled_series: %w", club.ID, err)
		}
		if len(club.DisabledSeries) == 0 {
			club.DisabledSeries = nil
		}
	}
	return &club, nil
}

func (r *postgresClubRepository) List(ctx context.Context, exec SQLExecutor) ([]models.ClubRanking, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + clubColumns + ` FROM clubs ORDER BY id`
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := make([]models.ClubRanking, 0)
	for rows.Next() {
		club, errScan := r.scanClub(rows)
		if errScan != nil {
			return nil, errScan
		}
		clubs = append(clubs, *club)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.ClubRanking, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`
	return r.scanClub(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresClubRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM clubs`).Scan(&count)
	return count, err
}

func (r *postgresClubRepository) BatchCreate(ctx context.Context, exec SQLExecutor, clubs []models.ClubRanking) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO clubs
			(id, name, division, points, played, won, drawn, lost,
			 goals_for, goals_against, goal_difference, category_stats, disabled_series, crest_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, club := range clubs {
		categoryStatsJSON, disabledSeriesJSON, err := marshalClubMaps(club)
		if err != nil {
			return err
		}
		if _, err := executor.ExecContext(ctx, query,
			club.ID, club.Name, club.Division,
			club.Points, club.Played, club.Won, club.Drawn, club.Lost,
			club.GoalsFor, club.GoalsAgainst, club.GoalDifference,
			categoryStatsJSON, disabledSeriesJSON, club.CrestKey,
		); err != nil {
			return fmt.Errorf("insert club %s: %w", club.ID, err)
		}
	}
	return nil
}

// SaveAll reescribe la fila completa de cada club del snapshot. Se invoca
// dentro de la transacción de la escritura lógica que lo produjo.
func (r *postgresClubRepository) SaveAll(ctx context.Context, exec SQLExecutor, clubs []models.ClubRanking) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE clubs SET
			name = $2, division = $3, points = $4, played = $5, won = $6,
			drawn = $7, lost = $8, goals_for = $9, goals_against = $10,
			goal_difference = $11, category_stats = $12, disabled_series = $13
		WHERE id = $1`
	for _, club := range clubs {
		categoryStatsJSON, disabledSeriesJSON, err := marshalClubMaps(club)
		if err != nil {
			return err
		}
		result, err := executor.ExecContext(ctx, query,
			club.ID, club.Name, club.Division,
			club.Points, club.Played, club.Won, club.Drawn, club.Lost,
			club.GoalsFor, club.GoalsAgainst, club.GoalDifference,
			categoryStatsJSON, disabledSeriesJSON,
		)
		if err != nil {
			return fmt.Errorf("save club %s: %w", club.ID, err)
		}
		if err := checkAffectedRows(result, ErrClubNotFound); err != nil {
			return fmt.Errorf("save club %s: %w", club.ID, err)
		}
	}
	return nil
}

func (r *postgresClubRepository) UpdateCrestKey(ctx context.Context, exec SQLExecutor, id string, crestKey *string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE clubs SET crest_key = $2 WHERE id = $1`, id, crestKey)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func marshalClubMaps(club models.ClubRanking) ([]byte, []byte, error) {
	categoryStatsJSON, err := json.Marshal(club.CategoryStats)
	if err != nil {
		return nil, nil, fmt.Errorf("club %s: encode category_stats: %w", club.ID, err)
	}
	var disabledSeriesJSON []byte
	if len(club.DisabledSeries) > 0 {
		disabledSeriesJSON, err = json.Marshal(club.DisabledSeries)
		if err != nil {
			return nil, nil, fmt.Errorf("club %s: encode disabled_series: %w", club.ID, err)
		}
	}
	return categoryStatsJSON, disabledSeriesJSON, nil
}
