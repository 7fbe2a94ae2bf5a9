package standings

import (
	"sort"

	"github.com/emontecinos/futbol-tracker/models"
)

// CheckSub12Completion decide si el round-robin Sub12 está completo: cada
// club del listado (ambas divisiones, Sub12 es unificado) debe haber jugado
// al menos (n-1)*2 fechas en la serie. Con uno o cero clubes el requisito
// es <= 0 y el torneo cuenta como completo; un listado vacío nunca lo está.
func CheckSub12Completion(rankings []models.ClubRanking) bool {
	if len(rankings) == 0 {
		return false
	}
	required := RequiredSub12Matches(len(rankings))
	if required <= 0 {
		return true
	}
	for _, club := range rankings {
		if club.CategoryStats[models.CategorySub12].Played < required {
			return false
		}
	}
	return true
}

// SortBySub12 devuelve los clubes ordenados por su campaña Sub12:
// puntos, diferencia de gol, goles a favor, y nombre como último
// desempate (no hay regla de head-to-head definida en el reglamento).
func SortBySub12(rankings []models.ClubRanking) []models.ClubRanking {
	sorted := make([]models.ClubRanking, len(rankings))
	copy(sorted, rankings)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := sorted[i].CategoryStats[models.CategorySub12]
		b := sorted[j].CategoryStats[models.CategorySub12]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// FinalizeSub12 distribuye el bono Sub12 y fija los puntos generales de
// cada club en (puntos de serie sin Sub12) + bono según su posición Sub12.
//
// Es re-entrante a propósito: siempre recalcula desde los puntos de serie
// actuales en vez de incrementar, así se puede volver a invocar después de
// cualquier mutación (el flag Sub12Finalized significa "el bono está
// activo", no "se aplicó una vez").
func FinalizeSub12(rankings []models.ClubRanking) []models.ClubRanking {
	sorted := SortBySub12(rankings)
	rankOf := make(map[string]int, len(sorted))
	for i, club := range sorted {
		rankOf[club.ID] = i
	}

	out := make([]models.ClubRanking, len(rankings))
	for i, club := range rankings {
		updated := club.Clone()
		updated.Points = NonSub12Points(updated) + bonusForRank(rankOf[club.ID])
		out[i] = updated
	}
	return out
}

func bonusForRank(rank int) int {
	if rank < 0 || len(Sub12PointsDistribution) == 0 {
		return 0
	}
	if rank >= len(Sub12PointsDistribution) {
		return Sub12PointsDistribution[len(Sub12PointsDistribution)-1]
	}
	return Sub12PointsDistribution[rank]
}
