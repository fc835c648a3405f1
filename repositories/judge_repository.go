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
	ErrJudgeNotFound          = errors.New("judge not found")
	ErrJudgeConflict          = errors.New("judge already registered for this tournament")
	ErrJudgeTournamentInvalid = errors.New("judge tournament reference invalid")
)

// TournamentCategoryCount — агрегат для статистики судей страны:
// по турниру и судейской категории.
type TournamentCategoryCount struct {
	TournamentName      string `json:"tournament_name"`
	CategoryDescription string `json:"category_description"`
	Count               int    `json:"count"`
}

type JudgeRepository interface {
	Create(ctx context.Context, j *models.Judge) error
	Update(ctx context.Context, j *models.Judge) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Judge, error)
	FindByFigAndTournament(ctx context.Context, figID, tournamentID string) (*models.Judge, error)
	List(ctx context.Context, filter ListRegistrationsFilter) ([]models.Judge, error)
	UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error)
	CountryStatsByTournamentAndCategory(ctx context.Context, country string) ([]TournamentCategoryCount, error)
}

type postgresJudgeRepository struct {
	db *sql.DB
}

func NewPostgresJudgeRepository(db *sql.DB) JudgeRepository {
	return &postgresJudgeRepository{db: db}
}

func (r *postgresJudgeRepository) Create(ctx context.Context, j *models.Judge) error {
	query := `
		INSERT INTO judges (fig_id, first_name, last_name, full_name, gender, country, category, category_description, tournament_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, status, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		j.FigID, j.FirstName, j.LastName, j.FullName, j.Gender, j.Country,
		j.Category, j.CategoryDescription, j.TournamentID, j.Notes,
	).Scan(&j.ID, &j.Status, &j.CreatedAt, &j.UpdatedAt)

	return r.handleJudgeError(err)
}

func (r *postgresJudgeRepository) Update(ctx context.Context, j *models.Judge) error {
	query := `
		UPDATE judges
		SET fig_id = $1, first_name = $2, last_name = $3, full_name = $4, gender = $5,
			country = $6, category = $7, category_description = $8, tournament_id = $9,
			notes = $10, updated_at = NOW()
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		j.FigID, j.FirstName, j.LastName, j.FullName, j.Gender, j.Country,
		j.Category, j.CategoryDescription, j.TournamentID, j.Notes, j.ID,
	)
	if err != nil {
		return r.handleJudgeError(err)
	}
	return checkAffectedRows(result, ErrJudgeNotFound)
}

func (r *postgresJudgeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM judges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete judge: %w", err)
	}
	return checkAffectedRows(result, ErrJudgeNotFound)
}

const judgeSelectColumns = `
	id, fig_id, first_name, last_name, full_name, gender, country,
	category, category_description, tournament_id, status, notes, created_at, updated_at`

func (r *postgresJudgeRepository) scanJudge(rowScanner interface {
	Scan(dest ...interface{}) error
}, j *models.Judge) error {
	return rowScanner.Scan(
		&j.ID, &j.FigID, &j.FirstName, &j.LastName, &j.FullName, &j.Gender, &j.Country,
		&j.Category, &j.CategoryDescription, &j.TournamentID, &j.Status, &j.Notes, &j.CreatedAt, &j.UpdatedAt,
	)
}

func (r *postgresJudgeRepository) FindByID(ctx context.Context, id string) (*models.Judge, error) {
	query := fmt.Sprintf(`SELECT %s FROM judges WHERE id = $1`, judgeSelectColumns)
	return r.findOne(ctx, query, id)
}

func (r *postgresJudgeRepository) FindByFigAndTournament(ctx context.Context, figID, tournamentID string) (*models.Judge, error) {
	query := fmt.Sprintf(`SELECT %s FROM judges WHERE fig_id = $1 AND tournament_id = $2`, judgeSelectColumns)
	return r.findOne(ctx, query, figID, tournamentID)
}

func (r *postgresJudgeRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Judge, error) {
	j := &models.Judge{}
	err := r.scanJudge(r.db.QueryRowContext(ctx, query, args...), j)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJudgeNotFound
		}
		return nil, fmt.Errorf("failed to find judge: %w", err)
	}
	return j, nil
}

func (r *postgresJudgeRepository) List(ctx context.Context, filter ListRegistrationsFilter) ([]models.Judge, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM judges WHERE 1=1`, judgeSelectColumns))

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
		return nil, fmt.Errorf("failed to list judges: %w", err)
	}
	defer rows.Close()

	judges := make([]models.Judge, 0)
	for rows.Next() {
		var j models.Judge
		if err := r.scanJudge(rows, &j); err != nil {
			return nil, fmt.Errorf("failed to scan judge row: %w", err)
		}
		judges = append(judges, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating judge rows: %w", err)
	}
	return judges, nil
}

func (r *postgresJudgeRepository) UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE judges
		SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = ANY($3)`

	result, err := r.db.ExecContext(ctx, query, status, notes, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to update judge statuses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows for judge status update: %w", err)
	}
	return affected, nil
}

func (r *postgresJudgeRepository) CountryStatsByTournamentAndCategory(ctx context.Context, country string) ([]TournamentCategoryCount, error) {
	query := `
		SELECT t.name, j.category_description, COUNT(*)
		FROM judges j
		JOIN tournaments t ON t.id = j.tournament_id
		WHERE j.country = $1
		GROUP BY t.name, j.category_description
		ORDER BY t.name ASC, j.category_description ASC`

	rows, err := r.db.QueryContext(ctx, query, strings.ToUpper(country))
	if err != nil {
		return nil, fmt.Errorf("failed to query judge country stats: %w", err)
	}
	defer rows.Close()

	stats := make([]TournamentCategoryCount, 0)
	for rows.Next() {
		var tcc TournamentCategoryCount
		if err := rows.Scan(&tcc.TournamentName, &tcc.CategoryDescription, &tcc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan judge stats row: %w", err)
		}
		stats = append(stats, tcc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating judge stats rows: %w", err)
	}
	return stats, nil
}

func (r *postgresJudgeRepository) handleJudgeError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrJudgeConflict
		case "23503": // foreign_key_violation
			return ErrJudgeTournamentInvalid
		}
	}
	return fmt.Errorf("judge repository error: %w", err)
}
