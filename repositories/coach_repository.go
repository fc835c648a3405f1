package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/registration-system/models"
	"github.com/lib/pq"
)

var (
	ErrCoachNotFound          = errors.New("coach not found")
	ErrCoachConflict          = errors.New("coach already registered for this tournament")
	ErrCoachTournamentInvalid = errors.New("coach tournament reference invalid")
)

// TournamentCount — агрегат для статистики тренеров страны по турнирам.
type TournamentCount struct {
	TournamentName string `json:"tournament_name"`
	Count          int    `json:"count"`
}

type CoachRepository interface {
	Create(ctx context.Context, c *models.Coach) error
	Update(ctx context.Context, c *models.Coach) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Coach, error)
	FindByFigAndTournament(ctx context.Context, figID, tournamentID string) (*models.Coach, error)
	List(ctx context.Context, filter ListRegistrationsFilter) ([]models.Coach, error)
	UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error)
	CountryStatsByTournament(ctx context.Context, country string) ([]TournamentCount, error)
}

type postgresCoachRepository struct {
	db *sql.DB
}

func NewPostgresCoachRepository(db *sql.DB) CoachRepository {
	return &postgresCoachRepository{db: db}
}

func (r *postgresCoachRepository) Create(ctx context.Context, c *models.Coach) error {
	query := `
		INSERT INTO coaches (fig_id, first_name, last_name, full_name, gender, country, level, level_description, tournament_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, status, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.FigID, c.FirstName, c.LastName, c.FullName, c.Gender, c.Country,
		c.Level, c.LevelDescription, c.TournamentID, c.Notes,
	).Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt)

	return r.handleCoachError(err)
}

func (r *postgresCoachRepository) Update(ctx context.Context, c *models.Coach) error {
	query := `
		UPDATE coaches
		SET fig_id = $1, first_name = $2, last_name = $3, full_name = $4, gender = $5,
			country = $6, level = $7, level_description = $8, tournament_id = $9,
			notes = $10, updated_at = NOW()
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		c.FigID, c.FirstName, c.LastName, c.FullName, c.Gender, c.Country,
		c.Level, c.LevelDescription, c.TournamentID, c.Notes, c.ID,
	)
	if err != nil {
		return r.handleCoachError(err)
	}
	return checkAffectedRows(result, ErrCoachNotFound)
}

func (r *postgresCoachRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coach: %w", err)
	}
	return checkAffectedRows(result, ErrCoachNotFound)
}

const coachSelectColumns = `
	id, fig_id, first_name, last_name, full_name, gender, country,
	level, level_description, tournament_id, status, notes, created_at, updated_at`

func (r *postgresCoachRepository) scanCoach(rowScanner interface {
	Scan(dest ...interface{}) error
}, c *models.Coach) error {
	return rowScanner.Scan(
		&c.ID, &c.FigID, &c.FirstName, &c.LastName, &c.FullName, &c.Gender, &c.Country,
		&c.Level, &c.LevelDescription, &c.TournamentID, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *postgresCoachRepository) FindByID(ctx context.Context, id string) (*models.Coach, error) {
	query := fmt.Sprintf(`SELECT %s FROM coaches WHERE id = $1`, coachSelectColumns)
	return r.findOne(ctx, query, id)
}

func (r *postgresCoachRepository) FindByFigAndTournament(ctx context.Context, figID, tournamentID string) (*models.Coach, error) {
	query := fmt.Sprintf(`SELECT %s FROM coaches WHERE fig_id = $1 AND tournament_id = $2`, coachSelectColumns)
	return r.findOne(ctx, query, figID, tournamentID)
}

func (r *postgresCoachRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Coach, error) {
	c := &models.Coach{}
	err := r.scanCoach(r.db.QueryRowContext(ctx, query, args...), c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to find coach: %w", err)
	}
	return c, nil
}

func (r *postgresCoachRepository) List(ctx context.Context, filter ListRegistrationsFilter) ([]models.Coach, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM coaches WHERE 1=1`, coachSelectColumns))

	args := []interface{}{}
	argID := 1
	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Country != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND country = $%d", argID))
		args = append(args, strings.ToUpper(*filter.Country))
		argID++
	}
	if filter.TournamentID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND tournament_id = $%d", argID))
		args = append(args, *filter.TournamentID)
		argID++
	}
	queryBuilder.WriteString(" ORDER BY created_at ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	defer rows.Close()

	coaches := make([]models.Coach, 0)
	for rows.Next() {
		var c models.Coach
		if err := r.scanCoach(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan coach row: %w", err)
		}
		coaches = append(coaches, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coach rows: %w", err)
	}
	return coaches, nil
}

func (r *postgresCoachRepository) UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE coaches
		SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = ANY($3)`

	result, err := r.db.ExecContext(ctx, query, status, notes, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to update coach statuses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows for coach status update: %w", err)
	}
	return affected, nil
}

func (r *postgresCoachRepository) CountryStatsByTournament(ctx context.Context, country string) ([]TournamentCount, error) {
	query := `
		SELECT t.name, COUNT(*)
		FROM coaches c
		JOIN tournaments t ON t.id = c.tournament_id
		WHERE c.country = $1
		GROUP BY t.name
		ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, strings.ToUpper(country))
	if err != nil {
		return nil, fmt.Errorf("failed to query coach country stats: %w", err)
	}
	defer rows.Close()

	stats := make([]TournamentCount, 0)
	for rows.Next() {
		var tc TournamentCount
		if err := rows.Scan(&tc.TournamentName, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan coach stats row: %w", err)
		}
		stats = append(stats, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coach stats rows: %w", err)
	}
	return stats, nil
}

func (r *postgresCoachRepository) handleCoachError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrCoachConflict
		case "23503": // foreign_key_violation
			return ErrCoachTournamentInvalid
		}
	}
	return fmt.Errorf("coach repository error: %w", err)
}
