package usecase

import (
	"context"
	"time"

	"driver-hub/internal/driver/adapter/psql"
	"driver-hub/internal/driver/adapter/rmq"
	"driver-hub/internal/driver/destination"
	"driver-hub/internal/driver/models"
	"driver-hub/internal/shared/util"
)

// DestinationView is a destination plus the rendered time left, as the
// list screen shows it.
type DestinationView struct {
	destination.Destination
	Remaining string `json:"remaining"`
}

// PreferenceStore is the slice of the prefs store the usecases need.
// Update must apply fn and persist its result under one lock so the
// list cannot change between the read and the write.
type PreferenceStore interface {
	Load(ctx context.Context, driverID string) ([]destination.Destination, error)
	Update(ctx context.Context, driverID string, fn func([]destination.Destination) ([]destination.Destination, error)) error
}

type service struct {
	repo   psql.Repo
	prefs  PreferenceStore
	broker rmq.Broker
	logger *util.Logger
	now    func() time.Time
}

type Service interface {
	SetStatus(ctx context.Context, driverID string, status models.DriverStatus) (*models.Driver, error)
	ListDestinations(ctx context.Context, driverID string) ([]DestinationView, error)
	AddDestination(ctx context.Context, driverID, address string) (*DestinationView, error)
	ReplaceDestination(ctx context.Context, driverID string, destinationID int64, address string) (*DestinationView, error)
	RemoveDestination(ctx context.Context, driverID string, destinationID int64) error
	GetSettings(ctx context.Context, driverID string) (models.Settings, error)
	UpdateSettings(ctx context.Context, driverID string, settings models.Settings) (models.Settings, error)
}

func NewService(repo psql.Repo, prefs PreferenceStore, broker rmq.Broker, logger *util.Logger) Service {
	return &service{
		repo:   repo,
		prefs:  prefs,
		broker: broker,
		logger: logger,
		now:    time.Now,
	}
}
