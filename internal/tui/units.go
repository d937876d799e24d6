package tui

import (
	"fmt"

	"runlog/internal/config"
)

const milesPerKm = 0.621371

// Units provides distance and duration formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatDistance formats a distance in kilometers to the user's preferred unit
func (u Units) FormatDistance(km float64) string {
	if u.cfg.DistanceUnit == "mi" {
		return fmt.Sprintf("%.1f mi", km*milesPerKm)
	}
	return fmt.Sprintf("%.1f km", km)
}

// FormatDistanceValue returns just the numeric distance value
func (u Units) FormatDistanceValue(km float64) string {
	if u.cfg.DistanceUnit == "mi" {
		return fmt.Sprintf("%.1f", km*milesPerKm)
	}
	return fmt.Sprintf("%.1f", km)
}

// DistanceValue converts kilometers to the preferred unit for charts
func (u Units) DistanceValue(km float64) float64 {
	if u.cfg.DistanceUnit == "mi" {
		return km * milesPerKm
	}
	return km
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.cfg.DistanceUnit == "mi" {
		return "mi"
	}
	return "km"
}

// FormatDuration formats whole seconds as H:MM:SS or M:SS
func FormatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
