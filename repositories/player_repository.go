package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/emontecinos/futbol-tracker/models"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerRutConflict = errors.New("player rut already registered")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	List(ctx context.Context, exec SQLExecutor) ([]models.Player, error)
	GetByRut(ctx context.Context, exec SQLExecutor, rut string) (*models.Player, error)
	ListByClub(ctx context.Context, exec SQLExecutor, clubID string) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, rut, first_name, last_name, birth_date, club_id, category, age, registration_date`

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := rowScanner.Scan(
		&p.ID, &p.Rut, &p.FirstName, &p.LastName, &p.BirthDate,
		&p.ClubID, &p.Category, &p.Age, &p.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `
		INSERT INTO players (id, rut, first_name, last_name, birth_date, club_id, category, age, registration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		player.ID, player.Rut, player.FirstName, player.LastName, player.BirthDate,
		player.ClubID, player.Category, player.Age, player.RegistrationDate,
	)
	if err != nil {
		// unique constraint sobre rut
		if strings.Contains(err.Error(), "players_rut_key") || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return ErrPlayerRutConflict
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Player, error) {
	executor := r.getExecutor(exec)
	return r.listQuery(ctx, executor, `SELECT `+playerColumns+` FROM players ORDER BY last_name, first_name`)
}

func (r *postgresPlayerRepository) ListByClub(ctx context.Context, exec SQLExecutor, clubID string) ([]models.Player, error) {
	executor := r.getExecutor(exec)
	return r.listQuery(ctx, executor, `SELECT `+playerColumns+` FROM players WHERE club_id = $1 ORDER BY last_name, first_name`, clubID)
}

func (r *postgresPlayerRepository) listQuery(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, errScan := r.scanPlayer(rows)
		if errScan != nil {
			return nil, errScan
		}
		players = append(players, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) GetByRut(ctx context.Context, exec SQLExecutor, rut string) (*models.Player, error) {
	executor := r.getExecutor(exec)
	return r.scanPlayer(executor.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE rut = $1`, rut))
}
