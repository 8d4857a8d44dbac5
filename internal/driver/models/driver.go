package models

import "time"

type DriverStatus string

const (
	DriverOffline   DriverStatus = "OFFLINE"
	DriverAvailable DriverStatus = "AVAILABLE"
	DriverBusy      DriverStatus = "BUSY"
)

type Driver struct {
	ID        string       `db:"id" json:"id"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
	Status    DriverStatus `db:"status" json:"status"`
	Settings  Settings     `db:"settings" json:"settings"`
}

// Settings holds the per-driver app preferences, persisted as jsonb.
type Settings struct {
	NavigationProvider   string `json:"navigation_provider"`
	Language             string `json:"language"`
	DarkMode             bool   `json:"dark_mode"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// DefaultSettings is what a driver gets before touching the settings
// screen.
func DefaultSettings() Settings {
	return Settings{
		NavigationProvider:   "google_maps",
		Language:             "en",
		DarkMode:             false,
		NotificationsEnabled: true,
	}
}
