package usecase

import (
	"context"
	"strings"

	"driver-hub/internal/driver/destination"
	"driver-hub/internal/shared/apperrors"
	"driver-hub/internal/shared/validation"
)

func (s *service) view(d destination.Destination) DestinationView {
	return DestinationView{
		Destination: d,
		Remaining:   d.FormatRemaining(s.now()),
	}
}

func (s *service) ListDestinations(ctx context.Context, driverID string) ([]DestinationView, error) {
	records, err := s.prefs.Load(ctx, driverID)
	if err != nil {
		return nil, err
	}

	views := make([]DestinationView, 0, len(records))
	for _, d := range records {
		views = append(views, s.view(d))
	}
	return views, nil
}

func (s *service) AddDestination(ctx context.Context, driverID, address string) (*DestinationView, error) {
	address = strings.TrimSpace(address)
	if err := validation.ValidateAddress(address); err != nil {
		return nil, err
	}

	var created destination.Destination
	err := s.prefs.Update(ctx, driverID, func(records []destination.Destination) ([]destination.Destination, error) {
		if len(records) >= destination.MaxPerDriver {
			return nil, apperrors.ErrDestinationLimit
		}
		created = destination.New(address, s.now(), destination.DefaultTTL)
		return append(records, created), nil
	})
	if err != nil {
		return nil, err
	}

	view := s.view(created)
	return &view, nil
}

// ReplaceDestination swaps a record for a freshly stamped one at the
// same list position. The old id is discarded, never reused.
func (s *service) ReplaceDestination(ctx context.Context, driverID string, destinationID int64, address string) (*DestinationView, error) {
	address = strings.TrimSpace(address)
	if err := validation.ValidateAddress(address); err != nil {
		return nil, err
	}

	var replacement destination.Destination
	err := s.prefs.Update(ctx, driverID, func(records []destination.Destination) ([]destination.Destination, error) {
		idx := -1
		for i, d := range records {
			if d.ID == destinationID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, apperrors.ErrDestinationGone
		}
		replacement = destination.New(address, s.now(), destination.DefaultTTL)
		records[idx] = replacement
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	view := s.view(replacement)
	return &view, nil
}

func (s *service) RemoveDestination(ctx context.Context, driverID string, destinationID int64) error {
	return s.prefs.Update(ctx, driverID, func(records []destination.Destination) ([]destination.Destination, error) {
		kept := records[:0]
		found := false
		for _, d := range records {
			if d.ID == destinationID {
				found = true
				continue
			}
			kept = append(kept, d)
		}
		if !found {
			return nil, apperrors.ErrDestinationGone
		}
		return kept, nil
	})
}
