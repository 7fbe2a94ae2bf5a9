package models

import "time"

// CategoryScore es el marcador de una serie dentro de una fecha. Un par de
// punteros nil significa "no jugado / no ingresado" para esa serie.
type CategoryScore struct {
	LocalGoals   *int `json:"localGoals"`
	VisitorGoals *int `json:"visitorGoals"`
}

// Recorded indica que ambos marcadores fueron ingresados.
func (s CategoryScore) Recorded() bool {
	return s.LocalGoals != nil && s.VisitorGoals != nil
}

// MatchResultInput son los datos que llegan del formulario de resultados.
type MatchResultInput struct {
	LocalClubID   string                     `json:"localClubId"`
	VisitorClubID string                     `json:"visitorClubId"`
	Date          time.Time                  `json:"date"`
	Results       map[Category]CategoryScore `json:"results"`
}

// MatchResult es una fecha registrada entre dos clubes del mismo división,
// con los marcadores de cada serie. LocalPoints/VisitorPoints son los puntos
// no-Sub12 ganados en la fecha, guardados solo para auditoría y despliegue.
// Los partidos se editan en el lugar, nunca se borran.
type MatchResult struct {
	ID string `json:"id" db:"id"`
	MatchResultInput
	LocalPoints   int `json:"localPoints" db:"local_points"`
	VisitorPoints int `json:"visitorPoints" db:"visitor_points"`
}

// HasRecordedCategory exige al menos una serie con ambos marcadores; un
// partido sin ninguna no se considera registrado.
func (m MatchResultInput) HasRecordedCategory() bool {
	for _, score := range m.Results {
		if score.Recorded() {
			return true
		}
	}
	return false
}

// CloneResults copia el mapa de marcadores (los punteros se re-crean).
func (m MatchResultInput) CloneResults() map[Category]CategoryScore {
	out := make(map[Category]CategoryScore, len(m.Results))
	for category, score := range m.Results {
		cloned := CategoryScore{}
		if score.LocalGoals != nil {
			v := *score.LocalGoals
			cloned.LocalGoals = &v
		}
		if score.VisitorGoals != nil {
			v := *score.VisitorGoals
			cloned.VisitorGoals = &v
		}
		out[category] = cloned
	}
	return out
}
