package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emontecinos/futbol-tracker/models"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchRepository persiste el historial de fechas. Los marcadores por serie
// van como JSONB (pares nullable, igual que el front los ingresa). Las
// ediciones actualizan la fila en el lugar; el historial solo se vacía
// completo al cerrar la temporada.
type MatchRepository interface {
	List(ctx context.Context, exec SQLExecutor) ([]models.MatchResult, error)
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.MatchResult, error)
	Create(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error
	Update(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, local_club_id, visitor_club_id, match_date, results, local_points, visitor_points`

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.MatchResult, error) {
	var match models.MatchResult
	var resultsJSON []byte
	err := rowScanner.Scan(
		&match.ID, &match.LocalClubID, &match.VisitorClubID, &match.Date,
		&resultsJSON, &match.LocalPoints, &match.VisitorPoints,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	match.Results = make(map[models.Category]models.CategoryScore)
	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &match.Results); err != nil {
			return nil, fmt.Errorf("match %s: decode results: %w", match.ID, err)
		}
	}
	return &match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]models.MatchResult, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY match_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.MatchResult, 0)
	for rows.Next() {
		match, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.MatchResult, error) {
	executor := r.getExecutor(exec)
	return r.scanMatch(executor.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error {
	executor := r.getExecutor(exec)
	resultsJSON, err := json.Marshal(match.Results)
	if err != nil {
		return fmt.Errorf("match %s: encode results: %w", match.ID, err)
	}
	_, err = executor.ExecContext(ctx, `
		INSERT INTO matches (id, local_club_id, visitor_club_id, match_date, results, local_points, visitor_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		match.ID, match.LocalClubID, match.VisitorClubID, match.Date,
		resultsJSON, match.LocalPoints, match.VisitorPoints,
	)
	return err
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error {
	executor := r.getExecutor(exec)
	resultsJSON, err := json.Marshal(match.Results)
	if err != nil {
		return fmt.Errorf("match %s: encode results: %w", match.ID, err)
	}
	result, err := executor.ExecContext(ctx, `
		UPDATE matches SET
			local_club_id = $2, visitor_club_id = $3, match_date = $4,
			results = $5, local_points = $6, visitor_points = $7
		WHERE id = $1`,
		match.ID, match.LocalClubID, match.VisitorClubID, match.Date,
		resultsJSON, match.LocalPoints, match.VisitorPoints,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// DeleteAll vacía el historial completo. Solo se usa al cerrar la temporada.
func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM matches`)
	return err
}
