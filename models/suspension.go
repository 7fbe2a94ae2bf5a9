package models

import "time"

// SuspensionUnit es la unidad de duración de un castigo. "dates"
// representa fechas de campeonato (una por semana).
type SuspensionUnit string

const (
	SuspensionDays   SuspensionUnit = "days"
	SuspensionDates  SuspensionUnit = "dates"
	SuspensionMonths SuspensionUnit = "months"
)

func (u SuspensionUnit) Valid() bool {
	return u == SuspensionDays || u == SuspensionDates || u == SuspensionMonths
}

type SuspensionInput struct {
	PlayerRut string         `json:"playerRut"`
	StartDate time.Time      `json:"startDate"`
	Duration  int            `json:"duration"`
	Unit      SuspensionUnit `json:"unit"`
	Reason    string         `json:"reason,omitempty"`
}

// Suspension es un castigo vigente o histórico. EndDate es exclusivo: el
// día en que el jugador queda libre.
type Suspension struct {
	ID string `json:"id" db:"id"`
	SuspensionInput
	EndDate time.Time `json:"endDate" db:"end_date"`
}

// ActiveAt informa si el castigo rige en la fecha dada (se compara por día).
func (s Suspension) ActiveAt(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(truncateToDay(s.StartDate)) && day.Before(truncateToDay(s.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
