package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emontecinos/futbol-tracker/models"
)

var ErrSuspensionNotFound = errors.New("suspension not found")

type SuspensionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, suspension *models.Suspension) error
	Update(ctx context.Context, exec SQLExecutor, suspension *models.Suspension) error
	List(ctx context.Context, exec SQLExecutor) ([]models.Suspension, error)
}

type postgresSuspensionRepository struct {
	db *sql.DB
}

func NewPostgresSuspensionRepository(db *sql.DB) SuspensionRepository {
	return &postgresSuspensionRepository{db: db}
}

func (r *postgresSuspensionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSuspensionRepository) Create(ctx context.Context, exec SQLExecutor, suspension *models.Suspension) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `
		INSERT INTO suspensions (id, player_rut, start_date, duration, unit, reason, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		suspension.ID, suspension.PlayerRut, suspension.StartDate,
		suspension.Duration, suspension.Unit, suspension.Reason, suspension.EndDate,
	)
	return err
}

func (r *postgresSuspensionRepository) Update(ctx context.Context, exec SQLExecutor, suspension *models.Suspension) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `
		UPDATE suspensions SET
			player_rut = $2, start_date = $3, duration = $4, unit = $5, reason = $6, end_date = $7
		WHERE id = $1`,
		suspension.ID, suspension.PlayerRut, suspension.StartDate,
		suspension.Duration, suspension.Unit, suspension.Reason, suspension.EndDate,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSuspensionNotFound)
}

func (r *postgresSuspensionRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Suspension, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, `
		SELECT id, player_rut, start_date, duration, unit, reason, end_date
		FROM suspensions ORDER BY start_date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suspensions := make([]models.Suspension, 0)
	for rows.Next() {
		var s models.Suspension
		if err := rows.Scan(&s.ID, &s.PlayerRut, &s.StartDate, &s.Duration, &s.Unit, &s.Reason, &s.EndDate); err != nil {
			return nil, err
		}
		suspensions = append(suspensions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return suspensions, nil
}
