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
	ErrChoreographyNotFound          = errors.New("choreography not found")
	ErrChoreographyTournamentInvalid = errors.New("choreography tournament reference invalid")
)

// CategoryCount — агрегат для статистики страны по категориям.
type CategoryCount struct {
	Category models.ChoreographyCategory `json:"category"`
	Count    int                         `json:"count"`
}

type ChoreographyRepository interface {
	Create(ctx context.Context, exec SQLExecutor, c *models.Choreography) error
	AttachGymnasts(ctx context.Context, exec SQLExecutor, choreographyID string, gymnastIDs []string) error
	ReplaceGymnasts(ctx context.Context, exec SQLExecutor, choreographyID string, gymnastIDs []string) error
	Update(ctx context.Context, exec SQLExecutor, c *models.Choreography) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Choreography, error)
	GetWithRelations(ctx context.Context, id string) (*models.Choreography, error)
	List(ctx context.Context, filter ListRegistrationsFilter) ([]models.Choreography, error)
	CountByCountryCategoryAndTournament(ctx context.Context, country string, category models.ChoreographyCategory, tournamentID string) (int, error)
	UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error)
	CountryStatsByCategory(ctx context.Context, country string) ([]CategoryCount, error)
}

type postgresChoreographyRepository struct {
	db *sql.DB
}

func NewPostgresChoreographyRepository(db *sql.DB) ChoreographyRepository {
	return &postgresChoreographyRepository{db: db}
}

func (r *postgresChoreographyRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresChoreographyRepository) Create(ctx context.Context, exec SQLExecutor, c *models.Choreography) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO choreographies (name, country, category, type, gymnast_count, oldest_gymnast_age, notes, tournament_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		c.Name, c.Country, c.Category, c.Type, c.GymnastCount,
		c.OldestGymnastAge, c.Notes, c.TournamentID,
	).Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrChoreographyTournamentInvalid
		}
		return fmt.Errorf("failed to create choreography: %w", err)
	}
	return nil
}

func (r *postgresChoreographyRepository) AttachGymnasts(ctx context.Context, exec SQLExecutor, choreographyID string, gymnastIDs []string) error {
	executor := r.getExecutor(exec)
	if len(gymnastIDs) == 0 {
		return nil
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`INSERT INTO choreography_gymnasts (choreography_id, gymnast_id) VALUES `)
	args := []interface{}{choreographyID}
	for i, gymnastID := range gymnastIDs {
		if i > 0 {
			queryBuilder.WriteString(", ")
		}
		queryBuilder.WriteString(fmt.Sprintf("($1, $%d)", i+2))
		args = append(args, gymnastID)
	}

	if _, err := executor.ExecContext(ctx, queryBuilder.String(), args...); err != nil {
		return fmt.Errorf("failed to attach gymnasts to choreography %s: %w", choreographyID, err)
	}
	return nil
}

func (r *postgresChoreographyRepository) ReplaceGymnasts(ctx context.Context, exec SQLExecutor, choreographyID string, gymnastIDs []string) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx,
		`DELETE FROM choreography_gymnasts WHERE choreography_id = $1`, choreographyID); err != nil {
		return fmt.Errorf("failed to detach gymnasts from choreography %s: %w", choreographyID, err)
	}
	return r.AttachGymnasts(ctx, exec, choreographyID, gymnastIDs)
}

func (r *postgresChoreographyRepository) Update(ctx context.Context, exec SQLExecutor, c *models.Choreography) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE choreographies
		SET name = $1, country = $2, category = $3, type = $4, gymnast_count = $5,
			oldest_gymnast_age = $6, notes = $7, updated_at = NOW()
		WHERE id = $8`

	result, err := executor.ExecContext(ctx, query,
		c.Name, c.Country, c.Category, c.Type, c.GymnastCount,
		c.OldestGymnastAge, c.Notes, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update choreography: %w", err)
	}
	return checkAffectedRows(result, ErrChoreographyNotFound)
}

func (r *postgresChoreographyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM choreographies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete choreography: %w", err)
	}
	return checkAffectedRows(result, ErrChoreographyNotFound)
}

const choreographySelectColumns = `
	c.id, c.name, c.country, c.category, c.type, c.gymnast_count,
	c.oldest_gymnast_age, c.notes, c.status, c.tournament_id, c.created_at, c.updated_at`

func (r *postgresChoreographyRepository) scanChoreography(rowScanner interface {
	Scan(dest ...interface{}) error
}, c *models.Choreography) error {
	return rowScanner.Scan(
		&c.ID, &c.Name, &c.Country, &c.Category, &c.Type, &c.GymnastCount,
		&c.OldestGymnastAge, &c.Notes, &c.Status, &c.TournamentID, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *postgresChoreographyRepository) GetByID(ctx context.Context, id string) (*models.Choreography, error) {
	query := fmt.Sprintf(`SELECT %s FROM choreographies c WHERE c.id = $1`, choreographySelectColumns)
	c := &models.Choreography{}
	err := r.scanChoreography(r.db.QueryRowContext(ctx, query, id), c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChoreographyNotFound
		}
		return nil, fmt.Errorf("failed to get choreography: %w", err)
	}
	return c, nil
}

func (r *postgresChoreographyRepository) GetWithRelations(ctx context.Context, id string) (*models.Choreography, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tournamentQuery := `
		SELECT id, name, short_name, kind, start_date, end_date, location, is_active, created_at
		FROM tournaments WHERE id = $1`
	t := &models.Tournament{}
	err = r.db.QueryRowContext(ctx, tournamentQuery, c.TournamentID).Scan(
		&t.ID, &t.Name, &t.ShortName, &t.Kind, &t.StartDate, &t.EndDate,
		&t.Location, &t.IsActive, &t.CreatedAt,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load choreography tournament: %w", err)
	}
	if err == nil {
		c.Tournament = t
	}

	gymnastQuery := `
		SELECT g.id, g.fig_id, g.first_name, g.last_name, g.full_name, g.gender,
			g.country, g.birth_date, g.license_valid, g.is_local, g.created_at, g.updated_at
		FROM gymnasts g
		JOIN choreography_gymnasts cg ON cg.gymnast_id = g.id
		WHERE cg.choreography_id = $1
		ORDER BY g.fig_id ASC`

	rows, err := r.db.QueryContext(ctx, gymnastQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load choreography gymnasts: %w", err)
	}
	defer rows.Close()

	gymnasts := make([]models.Gymnast, 0)
	for rows.Next() {
		var g models.Gymnast
		if err := rows.Scan(
			&g.ID, &g.FigID, &g.FirstName, &g.LastName, &g.FullName, &g.Gender,
			&g.Country, &g.BirthDate, &g.LicenseValid, &g.IsLocal, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan choreography gymnast row: %w", err)
		}
		gymnasts = append(gymnasts, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating choreography gymnast rows: %w", err)
	}
	c.Gymnasts = gymnasts
	return c, nil
}

func (r *postgresChoreographyRepository) List(ctx context.Context, filter ListRegistrationsFilter) ([]models.Choreography, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM choreographies c WHERE 1=1`, choreographySelectColumns))

	args := []interface{}{}
	argID := 1
	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Country != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.country = $%d", argID))
		args = append(args, strings.ToUpper(*filter.Country))
		argID++
	}
	if filter.TournamentID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.tournament_id = $%d", argID))
		args = append(args, *filter.TournamentID)
		argID++
	}
	queryBuilder.WriteString(" ORDER BY c.created_at ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list choreographies: %w", err)
	}
	defer rows.Close()

	choreographies := make([]models.Choreography, 0)
	for rows.Next() {
		var c models.Choreography
		if err := r.scanChoreography(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan choreography row: %w", err)
		}
		choreographies = append(choreographies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating choreography rows: %w", err)
	}
	return choreographies, nil
}

func (r *postgresChoreographyRepository) CountByCountryCategoryAndTournament(ctx context.Context, country string, category models.ChoreographyCategory, tournamentID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM choreographies
		WHERE country = $1 AND category = $2 AND tournament_id = $3`

	var count int
	err := r.db.QueryRowContext(ctx, query, country, category, tournamentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count choreographies: %w", err)
	}
	return count, nil
}

func (r *postgresChoreographyRepository) UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE choreographies
		SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = ANY($3)`

	result, err := r.db.ExecContext(ctx, query, status, notes, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to update choreography statuses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows for choreography status update: %w", err)
	}
	return affected, nil
}

func (r *postgresChoreographyRepository) CountryStatsByCategory(ctx context.Context, country string) ([]CategoryCount, error) {
	query := `
		SELECT category, COUNT(*)
		FROM choreographies
		WHERE country = $1
		GROUP BY category
		ORDER BY category ASC`

	rows, err := r.db.QueryContext(ctx, query, strings.ToUpper(country))
	if err != nil {
		return nil, fmt.Errorf("failed to query choreography country stats: %w", err)
	}
	defer rows.Close()

	stats := make([]CategoryCount, 0)
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan choreography stats row: %w", err)
		}
		stats = append(stats, cc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating choreography stats rows: %w", err)
	}
	return stats, nil
}
