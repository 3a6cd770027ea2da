package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/pickboard/internal/database"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// ResetWeek deletes every game in week and reports how many went.
func (s *MaintenanceService) ResetWeek(ctx context.Context, week int) (int, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	var n int64
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM games WHERE week = ?", week)
		if err != nil {
			return fmt.Errorf("reset week %d: %w", week, err)
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
