package internal

import (
	"testing"
	"time"
)

func TestThisWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantMonday string
		wantSunday string
	}{
		{"wednesday", time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC), "2024-01-08", "2024-01-14"},
		{"monday midnight", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), "2024-01-08", "2024-01-14"},
		{"sunday evening", time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC), "2024-01-08", "2024-01-14"},
		{"across month", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "2024-02-26", "2024-03-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, sunday := ThisWeekRange(tt.now)
			if got := monday.Format(DateLayout); got != tt.wantMonday {
				t.Errorf("monday = %s, want %s", got, tt.wantMonday)
			}
			if got := sunday.Format(DateLayout); got != tt.wantSunday {
				t.Errorf("sunday = %s, want %s", got, tt.wantSunday)
			}
			if monday.Hour() != 0 || sunday.Hour() != 23 || sunday.Second() != 59 {
				t.Errorf("range bounds = %v .. %v", monday, sunday)
			}
		})
	}
}

func TestResolveDateRange(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		since     string
		until     string
		wantSince string
		wantUntil string
		wantErr   bool
	}{
		{"defaults", "", "", "2024-01-08", "2024-01-14", false},
		{"explicit", "2024-01-01", "2024-01-31", "2024-01-01", "2024-01-31", false},
		{"same day", "2024-01-05", "2024-01-05", "2024-01-05", "2024-01-05", false},
		{"only since", "2024-01-09", "", "2024-01-09", "2024-01-14", false},
		{"reversed", "2024-01-10", "2024-01-01", "", "", true},
		{"bad format", "01/10/2024", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			since, until, err := ResolveDateRange(tt.since, tt.until, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDateRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if since != tt.wantSince || until != tt.wantUntil {
				t.Errorf("ResolveDateRange() = %s..%s, want %s..%s", since, until, tt.wantSince, tt.wantUntil)
			}
		})
	}
}
