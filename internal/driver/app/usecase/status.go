package usecase

import (
	"context"
	"fmt"

	"driver-hub/internal/driver/models"
	"driver-hub/internal/shared/validation"
)

func (s *service) SetStatus(ctx context.Context, driverID string, status models.DriverStatus) (*models.Driver, error) {
	if err := validation.ValidateDriverStatus(string(status)); err != nil {
		return nil, err
	}

	old, err := s.repo.UpdateStatus(ctx, driverID, status)
	if err != nil {
		return nil, err
	}

	if old != status {
		event := models.StatusChangedEvent{
			DriverID:  driverID,
			OldStatus: string(old),
			NewStatus: string(status),
			Timestamp: s.now(),
		}
		if err := s.broker.Publish(ctx, models.EventStatusChanged, event); err != nil {
			// Event delivery is best effort; the status change itself
			// already committed.
			s.logger.Error("DriverService.SetStatus", fmt.Errorf("failed to publish status event: %w", err))
		}
	}

	return s.repo.GetDriver(ctx, driverID)
}

func (s *service) GetSettings(ctx context.Context, driverID string) (models.Settings, error) {
	settings, err := s.repo.GetSettings(ctx, driverID)
	if err != nil {
		return models.Settings{}, err
	}
	if settings == (models.Settings{}) {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *service) UpdateSettings(ctx context.Context, driverID string, settings models.Settings) (models.Settings, error) {
	if settings.Language == "" {
		settings.Language = models.DefaultSettings().Language
	}
	if settings.NavigationProvider == "" {
		settings.NavigationProvider = models.DefaultSettings().NavigationProvider
	}

	if err := s.repo.UpdateSettings(ctx, driverID, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
