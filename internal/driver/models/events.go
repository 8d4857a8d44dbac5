package models

import "time"

// Routing keys on the driver_events topic exchange.
const (
	EventStatusChanged      = "driver.status.changed"
	EventDestinationExpired = "driver.destination.expired"
)

type StatusChangedEvent struct {
	DriverID  string    `json:"driver_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Timestamp time.Time `json:"timestamp"`
}

type DestinationExpiredEvent struct {
	DriverID      string    `json:"driver_id"`
	DestinationID int64     `json:"destination_id"`
	Address       string    `json:"address"`
	ExpiredAt     time.Time `json:"expired_at"`
	Timestamp     time.Time `json:"timestamp"`
}
