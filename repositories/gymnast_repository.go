package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/registration-system/models"
	"github.com/lib/pq"
)

var (
	ErrGymnastNotFound      = errors.New("gymnast not found")
	ErrGymnastFigIDConflict = errors.New("gymnast with this FIG ID already exists")
)

type GymnastRepository interface {
	Create(ctx context.Context, g *models.Gymnast) error
	// UpsertByFigID создаёт запись либо перезаписывает поля существующей
	// свежими данными. Вызывается на каждую регистрацию программы, чтобы
	// локальная копия не расходилась с внешним реестром.
	UpsertByFigID(ctx context.Context, exec SQLExecutor, g *models.Gymnast) error
	FindByFigID(ctx context.Context, figID string) (*models.Gymnast, error)
	FindByID(ctx context.Context, id string) (*models.Gymnast, error)
}

type postgresGymnastRepository struct {
	db *sql.DB
}

func NewPostgresGymnastRepository(db *sql.DB) GymnastRepository {
	return &postgresGymnastRepository{db: db}
}

func (r *postgresGymnastRepository) Create(ctx context.Context, g *models.Gymnast) error {
	query := `
		INSERT INTO gymnasts (fig_id, first_name, last_name, full_name, gender, country, birth_date, license_valid, is_local)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		g.FigID, g.FirstName, g.LastName, g.FullName, g.Gender, g.Country,
		g.BirthDate, g.LicenseValid, g.IsLocal,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrGymnastFigIDConflict
		}
		return fmt.Errorf("failed to create gymnast: %w", err)
	}
	return nil
}

func (r *postgresGymnastRepository) UpsertByFigID(ctx context.Context, exec SQLExecutor, g *models.Gymnast) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	query := `
		INSERT INTO gymnasts (fig_id, first_name, last_name, full_name, gender, country, birth_date, license_valid, is_local)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (fig_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			full_name = EXCLUDED.full_name,
			gender = EXCLUDED.gender,
			country = EXCLUDED.country,
			birth_date = EXCLUDED.birth_date,
			license_valid = EXCLUDED.license_valid,
			is_local = EXCLUDED.is_local,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		g.FigID, g.FirstName, g.LastName, g.FullName, g.Gender, g.Country,
		g.BirthDate, g.LicenseValid, g.IsLocal,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert gymnast %s: %w", g.FigID, err)
	}
	return nil
}

func (r *postgresGymnastRepository) FindByFigID(ctx context.Context, figID string) (*models.Gymnast, error) {
	query := r.selectQuery() + ` WHERE fig_id = $1`
	return r.findOne(ctx, query, figID)
}

func (r *postgresGymnastRepository) FindByID(ctx context.Context, id string) (*models.Gymnast, error) {
	query := r.selectQuery() + ` WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresGymnastRepository) selectQuery() string {
	return `
		SELECT id, fig_id, first_name, last_name, full_name, gender, country,
			birth_date, license_valid, is_local, created_at, updated_at
		FROM gymnasts`
}

func (r *postgresGymnastRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Gymnast, error) {
	g := &models.Gymnast{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&g.ID, &g.FigID, &g.FirstName, &g.LastName, &g.FullName, &g.Gender,
		&g.Country, &g.BirthDate, &g.LicenseValid, &g.IsLocal, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymnastNotFound
		}
		return nil, fmt.Errorf("failed to find gymnast: %w", err)
	}
	return g, nil
}
