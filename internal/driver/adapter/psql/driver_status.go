package psql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"driver-hub/internal/driver/models"
	"driver-hub/internal/shared/apperrors"
)

func (r *repo) GetDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	query := `SELECT id, created_at, updated_at, status, settings FROM drivers WHERE id = $1`

	driver := &models.Driver{}
	err := r.db.QueryRow(ctx, query, driverID).Scan(
		&driver.ID, &driver.CreatedAt, &driver.UpdatedAt, &driver.Status, &driver.Settings)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrDriverNotFound
	} else if err != nil {
		return nil, err
	}

	return driver, nil
}

// UpdateStatus transitions the driver's status and returns the previous
// one so the caller can publish the change.
func (r *repo) UpdateStatus(ctx context.Context, driverID string, status models.DriverStatus) (models.DriverStatus, error) {
	querySelect := `SELECT status FROM drivers WHERE id = $1`
	queryUpdate := `UPDATE drivers SET status = $1, updated_at = NOW() WHERE id = $2`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", err
	}

	defer tx.Rollback(ctx)

	var old models.DriverStatus
	err = tx.QueryRow(ctx, querySelect, driverID).Scan(&old)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.ErrDriverNotFound
	} else if err != nil {
		return "", err
	}

	if _, err = tx.Exec(ctx, queryUpdate, status, driverID); err != nil {
		return "", err
	}

	if err = tx.Commit(ctx); err != nil {
		return "", err
	}

	return old, nil
}
