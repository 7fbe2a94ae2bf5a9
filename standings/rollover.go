package standings

import (
	"fmt"
	"sort"

	"github.com/emontecinos/futbol-tracker/models"
)

// PromotionRelegationSpots es cuántos clubes suben y bajan por temporada.
const PromotionRelegationSpots = 3

// RolloverSeason cierra la temporada: ordena cada división por
// (puntos, diferencia de gol, goles a favor), baja los últimos 3 de
// Primera, sube los primeros 3 de Segunda y reinicia la estadística
// general y de todas las series de todos los clubes. El flag Sub12Finalized
// lo reinicia el coordinador (StandingsService), no esta función.
//
// Falla con ErrInsufficientClubs si alguna división tiene menos clubes que
// cupos de ascenso/descenso; en ese caso el listado queda intacto.
func RolloverSeason(rankings []models.ClubRanking) ([]models.ClubRanking, error) {
	var primera, segunda []models.ClubRanking
	for _, club := range rankings {
		switch club.Division {
		case models.DivisionPrimera:
			primera = append(primera, club)
		case models.DivisionSegunda:
			segunda = append(segunda, club)
		}
	}
	if len(primera) < PromotionRelegationSpots || len(segunda) < PromotionRelegationSpots {
		return nil, fmt.Errorf("%w: primera=%d segunda=%d", ErrInsufficientClubs, len(primera), len(segunda))
	}

	sortByGeneral(primera)
	sortByGeneral(segunda)

	relegated := make(map[string]bool, PromotionRelegationSpots)
	for _, club := range primera[len(primera)-PromotionRelegationSpots:] {
		relegated[club.ID] = true
	}
	promoted := make(map[string]bool, PromotionRelegationSpots)
	for _, club := range segunda[:PromotionRelegationSpots] {
		promoted[club.ID] = true
	}

	out := make([]models.ClubRanking, len(rankings))
	for i, club := range rankings {
		reset := club.Clone()
		reset.TeamStats = models.TeamStats{}
		for _, category := range models.Categories {
			reset.CategoryStats[category] = models.TeamStats{}
		}
		switch {
		case relegated[club.ID]:
			reset.Division = models.DivisionSegunda
		case promoted[club.ID]:
			reset.Division = models.DivisionPrimera
		}
		out[i] = reset
	}
	return out, nil
}

func sortByGeneral(clubs []models.ClubRanking) {
	sort.SliceStable(clubs, func(i, j int) bool {
		if clubs[i].Points != clubs[j].Points {
			return clubs[i].Points > clubs[j].Points
		}
		if clubs[i].GoalDifference != clubs[j].GoalDifference {
			return clubs[i].GoalDifference > clubs[j].GoalDifference
		}
		return clubs[i].GoalsFor > clubs[j].GoalsFor
	})
}
