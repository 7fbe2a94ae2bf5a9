package utils

import (
	"testing"
	"time"

	"github.com/emontecinos/futbol-tracker/models"
)

func TestCalculateRutDv(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"12345678", "5"},
		{"11111111", "1"},
		{"22222222", "2"},
		{"6", "K"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CalculateRutDv(tt.body); got != tt.want {
			t.Errorf("CalculateRutDv(%q) = %q, quiero %q", tt.body, got, tt.want)
		}
	}
}

func TestValidateRut(t *testing.T) {
	tests := []struct {
		rut  string
		want bool
	}{
		{"12.345.678-5", true},
		{"123456785", true},
		{"12345678-5", true},
		{"11.111.111-1", true},
		{"6-K", true},
		{"6-k", true},
		{"12.345.678-9", false},
		{"", false},
		{"5", false},
		{"abc-5", false},
	}
	for _, tt := range tests {
		if got := ValidateRut(tt.rut); got != tt.want {
			t.Errorf("ValidateRut(%q) = %v, quiero %v", tt.rut, got, tt.want)
		}
	}
}

func TestFormatRut(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456785", "12.345.678-5"},
		{"12.345.678-5", "12.345.678-5"},
		{"6k", "6-K"},
		{"", ""},
		{"x", "x"},
	}
	for _, tt := range tests {
		if got := FormatRut(tt.in); got != tt.want {
			t.Errorf("FormatRut(%q) = %q, quiero %q", tt.in, got, tt.want)
		}
	}
}

func TestCalculateAge(t *testing.T) {
	birth := time.Date(2010, time.June, 15, 0, 0, 0, 0, time.UTC)

	if got := CalculateAge(birth, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)); got != 16 {
		t.Errorf("edad tras el cumpleaños = %d, quiero 16", got)
	}
	if got := CalculateAge(birth, time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)); got != 15 {
		t.Errorf("edad antes del cumpleaños = %d, quiero 15", got)
	}
	if got := CalculateAge(birth, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)); got != 16 {
		t.Errorf("edad el día del cumpleaños = %d, quiero 16", got)
	}
}

func TestCalculateEndDate(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration int
		unit     models.SuspensionUnit
		want     time.Time
	}{
		{"días", 5, models.SuspensionDays, start.AddDate(0, 0, 5)},
		{"fechas", 2, models.SuspensionDates, start.AddDate(0, 0, 14)},
		{"meses", 1, models.SuspensionMonths, start.AddDate(0, 1, 0)},
		{"unidad desconocida", 3, models.SuspensionUnit("years"), start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateEndDate(start, tt.duration, tt.unit); !got.Equal(tt.want) {
				t.Errorf("CalculateEndDate = %v, quiero %v", got, tt.want)
			}
		})
	}
}
