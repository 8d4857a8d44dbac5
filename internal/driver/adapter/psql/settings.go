package psql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"driver-hub/internal/driver/models"
	"driver-hub/internal/shared/apperrors"
)

func (r *repo) GetSettings(ctx context.Context, driverID string) (models.Settings, error) {
	query := `SELECT settings FROM drivers WHERE id = $1`

	var settings models.Settings
	err := r.db.QueryRow(ctx, query, driverID).Scan(&settings)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Settings{}, apperrors.ErrDriverNotFound
	} else if err != nil {
		return models.Settings{}, err
	}

	return settings, nil
}

func (r *repo) UpdateSettings(ctx context.Context, driverID string, settings models.Settings) error {
	query := `UPDATE drivers SET settings = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, settings, driverID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDriverNotFound
	}

	return nil
}
