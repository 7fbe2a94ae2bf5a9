package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emontecinos/futbol-tracker/models"
)

// SeasonRepository guarda los dos flags globales en una fila única.
type SeasonRepository interface {
	Get(ctx context.Context, exec SQLExecutor) (models.SeasonState, error)
	Save(ctx context.Context, exec SQLExecutor, state models.SeasonState) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSeasonRepository) Get(ctx context.Context, exec SQLExecutor) (models.SeasonState, error) {
	executor := r.getExecutor(exec)
	var state models.SeasonState
	err := executor.QueryRowContext(ctx,
		`SELECT sub12_finalized, date3_passed FROM season_state WHERE id = 1`,
	).Scan(&state.Sub12Finalized, &state.Date3Passed)
	if errors.Is(err, sql.ErrNoRows) {
		// temporada nueva: ambos flags apagados
		return models.SeasonState{}, nil
	}
	return state, err
}

func (r *postgresSeasonRepository) Save(ctx context.Context, exec SQLExecutor, state models.SeasonState) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `
		INSERT INTO season_state (id, sub12_finalized, date3_passed)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET sub12_finalized = $1, date3_passed = $2`,
		state.Sub12Finalized, state.Date3Passed,
	)
	return err
}
