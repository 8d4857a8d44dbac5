package psql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"driver-hub/internal/driver/models"
)

type repo struct {
	db *pgxpool.Pool
}

type Repo interface {
	GetDriver(ctx context.Context, driverID string) (*models.Driver, error)
	UpdateStatus(ctx context.Context, driverID string, status models.DriverStatus) (models.DriverStatus, error)
	GetSettings(ctx context.Context, driverID string) (models.Settings, error)
	UpdateSettings(ctx context.Context, driverID string, settings models.Settings) error
}

func NewRepo(db *pgxpool.Pool) Repo {
	return &repo{db: db}
}
