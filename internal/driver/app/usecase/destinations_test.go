package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"driver-hub/internal/driver/destination"
	"driver-hub/internal/driver/models"
	"driver-hub/internal/shared/apperrors"
	"driver-hub/internal/shared/util"
)

type fakePrefs struct {
	lists map[string][]destination.Destination
}

func (f *fakePrefs) Load(_ context.Context, driverID string) ([]destination.Destination, error) {
	return f.lists[driverID], nil
}

func (f *fakePrefs) Update(_ context.Context, driverID string, fn func([]destination.Destination) ([]destination.Destination, error)) error {
	next, err := fn(f.lists[driverID])
	if err != nil {
		return err
	}
	f.lists[driverID] = next
	return nil
}

type fakeBroker struct {
	published []string
}

func (f *fakeBroker) Publish(_ context.Context, routingKey string, _ interface{}) error {
	f.published = append(f.published, routingKey)
	return nil
}

type fakeRepo struct {
	status   models.DriverStatus
	settings models.Settings
}

func (f *fakeRepo) GetDriver(_ context.Context, driverID string) (*models.Driver, error) {
	return &models.Driver{ID: driverID, Status: f.status, Settings: f.settings}, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ string, status models.DriverStatus) (models.DriverStatus, error) {
	old := f.status
	f.status = status
	return old, nil
}

func (f *fakeRepo) GetSettings(_ context.Context, _ string) (models.Settings, error) {
	return f.settings, nil
}

func (f *fakeRepo) UpdateSettings(_ context.Context, _ string, settings models.Settings) error {
	f.settings = settings
	return nil
}

func newTestService(prefs *fakePrefs, repo *fakeRepo, broker *fakeBroker, now time.Time) *service {
	return &service{
		repo:   repo,
		prefs:  prefs,
		broker: broker,
		logger: util.New(),
		now:    func() time.Time { return now },
	}
}

var testNow = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func TestAddDestination(t *testing.T) {
	prefs := &fakePrefs{lists: make(map[string][]destination.Destination)}
	s := newTestService(prefs, &fakeRepo{status: models.DriverOffline}, &fakeBroker{}, testNow)
	ctx := context.Background()

	view, err := s.AddDestination(ctx, "driver-1", "  123 Main St  ")
	if err != nil {
		t.Fatalf("AddDestination: %v", err)
	}
	if view.Address != "123 Main St" {
		t.Errorf("address not trimmed: %q", view.Address)
	}
	if view.ExpiresAt.Sub(view.CreatedAt) != destination.DefaultTTL {
		t.Errorf("TTL wrong: %v", view.ExpiresAt.Sub(view.CreatedAt))
	}
	if view.Remaining != "6h 0m" {
		t.Errorf("Remaining = %q, want %q", view.Remaining, "6h 0m")
	}
	if len(prefs.lists["driver-1"]) != 1 {
		t.Errorf("list not persisted: %+v", prefs.lists)
	}
}

func TestAddDestinationRejectsEmptyAddress(t *testing.T) {
	prefs := &fakePrefs{lists: make(map[string][]destination.Destination)}
	s := newTestService(prefs, &fakeRepo{}, &fakeBroker{}, testNow)

	if _, err := s.AddDestination(context.Background(), "driver-1", "   "); err == nil {
		t.Fatal("blank address accepted")
	}
}

func TestAddDestinationLimit(t *testing.T) {
	prefs := &fakePrefs{lists: make(map[string][]destination.Destination)}
	s := newTestService(prefs, &fakeRepo{}, &fakeBroker{}, testNow)
	ctx := context.Background()

	for i := 0; i < destination.MaxPerDriver; i++ {
		if _, err := s.AddDestination(ctx, "driver-1", "Stop"); err != nil {
			t.Fatalf("AddDestination %d: %v", i, err)
		}
	}

	_, err := s.AddDestination(ctx, "driver-1", "One too many")
	if !errors.Is(err, apperrors.ErrDestinationLimit) {
		t.Fatalf("err = %v, want ErrDestinationLimit", err)
	}
}

func TestReplaceDestination(t *testing.T) {
	prefs := &fakePrefs{lists: make(map[string][]destination.Destination)}
	s := newTestService(prefs, &fakeRepo{}, &fakeBroker{}, testNow)
	ctx := context.Background()

	first, _ := s.AddDestination(ctx, "driver-1", "First")
	second, _ := s.AddDestination(ctx, "driver-1", "Second")

	replaced, err := s.ReplaceDestination(ctx, "driver-1", first.ID, "Elsewhere")
	if err != nil {
		t.Fatalf("ReplaceDestination: %v", err)
	}
	if replaced.ID == first.ID {
		t.Error("replacement reused the old id")
	}

	list := prefs.lists["driver-1"]
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	// Same position, new record.
	if list[0].ID != replaced.ID || list[0].Address != "Elsewhere" {
		t.Errorf("position 0 = %+v, want the replacement", list[0])
	}
	if list[1].ID != second.ID {
		t.Errorf("position 1 moved: %+v", list[1])
	}
}

func TestReplaceDestinationUnknownID(t *testing.T) {
	prefs := &fakePrefs{lists: make(map[string][]destination.Destination)}
	s := newTestService(prefs, &fakeRepo{}, &fakeBroker{}, testNow)

	_, err := s.ReplaceDestination(context.Background(), "driver-1", 42, "Nowhere")
	if !errors.Is(err, apperrors.ErrDestinationGone) {
		t.Fatalf("err = %v, want ErrDestinationGone", err)
	}
}

func TestRemoveDestination(t *testing.T) {
	prefs := &fakePrefs{lists: make(map[string][]destination.Destination)}
	s := newTestService(prefs, &fakeRepo{}, &fakeBroker{}, testNow)
	ctx := context.Background()

	d, _ := s.AddDestination(ctx, "driver-1", "Target")

	if err := s.RemoveDestination(ctx, "driver-1", d.ID); err != nil {
		t.Fatalf("RemoveDestination: %v", err)
	}
	if len(prefs.lists["driver-1"]) != 0 {
		t.Errorf("record still present: %+v", prefs.lists["driver-1"])
	}

	if err := s.RemoveDestination(ctx, "driver-1", d.ID); !errors.Is(err, apperrors.ErrDestinationGone) {
		t.Errorf("second remove err = %v, want ErrDestinationGone", err)
	}
}

func TestSetStatusPublishesOnChange(t *testing.T) {
	broker := &fakeBroker{}
	s := newTestService(&fakePrefs{lists: make(map[string][]destination.Destination)},
		&fakeRepo{status: models.DriverOffline}, broker, testNow)
	ctx := context.Background()

	driver, err := s.SetStatus(ctx, "driver-1", models.DriverAvailable)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if driver.Status != models.DriverAvailable {
		t.Errorf("status = %v, want AVAILABLE", driver.Status)
	}
	if len(broker.published) != 1 || broker.published[0] != models.EventStatusChanged {
		t.Errorf("published = %v, want one status event", broker.published)
	}

	// Re-asserting the same status is a no-op for events.
	if _, err := s.SetStatus(ctx, "driver-1", models.DriverAvailable); err != nil {
		t.Fatalf("SetStatus repeat: %v", err)
	}
	if len(broker.published) != 1 {
		t.Errorf("idempotent transition published extra events: %v", broker.published)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	s := newTestService(&fakePrefs{lists: make(map[string][]destination.Destination)},
		&fakeRepo{}, &fakeBroker{}, testNow)

	if _, err := s.SetStatus(context.Background(), "driver-1", "EN_ROUTE"); err == nil {
		t.Fatal("unknown status accepted")
	}
}
