package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/registration-system/models"
)

// SQLExecutor позволяет репозиториям работать как с пулом (*sql.DB),
// так и внутри транзакции (*sql.Tx).
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ListRegistrationsFilter — общий фильтр для чтения заявок всех видов.
type ListRegistrationsFilter struct {
	Status       *models.RegistrationStatus
	Country      *string
	TournamentID *string
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
