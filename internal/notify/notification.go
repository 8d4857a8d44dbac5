package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"driver-hub/internal/driver/models"
)

type Notification struct {
	ID        string    `json:"id"`
	DriverID  string    `json:"driver_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FromEvent maps a broker delivery to the notification the driver sees.
// Unknown routing keys are an error so new event types fail loudly in
// the consumer log instead of producing blank notifications.
func FromEvent(routingKey string, body []byte, now time.Time) (Notification, error) {
	switch routingKey {
	case models.EventStatusChanged:
		var event models.StatusChangedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return Notification{}, fmt.Errorf("decode status event: %w", err)
		}
		return Notification{
			ID:        uuid.New().String(),
			DriverID:  event.DriverID,
			Kind:      "status",
			Message:   statusMessage(event.NewStatus),
			CreatedAt: now,
		}, nil

	case models.EventDestinationExpired:
		var event models.DestinationExpiredEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return Notification{}, fmt.Errorf("decode destination event: %w", err)
		}
		return Notification{
			ID:        uuid.New().String(),
			DriverID:  event.DriverID,
			Kind:      "destination",
			Message:   fmt.Sprintf("Your destination %q has expired and was removed", event.Address),
			CreatedAt: now,
		}, nil
	}

	return Notification{}, fmt.Errorf("unknown routing key %q", routingKey)
}

func statusMessage(status string) string {
	switch status {
	case string(models.DriverAvailable):
		return "You are now online and ready to accept rides"
	case string(models.DriverBusy):
		return "You are marked busy"
	default:
		return "You are now offline"
	}
}
