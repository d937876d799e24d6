package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Owner != "local" {
		t.Errorf("Owner = %q, want %q", cfg.Owner, "local")
	}
	if cfg.Week.StartDay != "Monday" {
		t.Errorf("Week.StartDay = %q, want %q", cfg.Week.StartDay, "Monday")
	}
	if cfg.Display.DistanceUnit != "km" {
		t.Errorf("Display.DistanceUnit = %q, want %q", cfg.Display.DistanceUnit, "km")
	}
	if len(cfg.Import.ActivityTypes) != 0 {
		t.Errorf("Import.ActivityTypes = %v, want no implicit filter", cfg.Import.ActivityTypes)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name    string
		day     string
		want    time.Weekday
		wantErr bool
	}{
		{"default empty", "", time.Monday, false},
		{"monday", "Monday", time.Monday, false},
		{"sunday", "Sunday", time.Sunday, false},
		{"case insensitive", "saturday", time.Saturday, false},
		{"invalid", "Someday", time.Monday, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Week: WeekConfig{StartDay: tt.day}}
			got, err := cfg.WeekStart()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("WeekStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	cfg.Display.DistanceUnit = "furlongs"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad distance unit")
	}

	cfg = DefaultConfig()
	cfg.Week.StartDay = "Someday"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad week start day")
	}
}
