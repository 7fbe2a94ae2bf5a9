package standings

import "github.com/emontecinos/futbol-tracker/models"

// RecalculateFromMatches reconstruye la estadística de cada club desde el
// historial completo de partidos. Es el camino que usan los toggles de
// Date3Passed y de series deshabilitadas: la aplicabilidad de la sanción
// depende de esos flags, así que lo incremental no alcanza y se parte de
// cero.
//
// Por cada club y serie: si la serie está deshabilitada y pasó la tercera
// fecha se aplica la capa de sanción; si no, lo realmente jugado. Al final
// se rederiva la general (sin Sub12).
func RecalculateFromMatches(rankings []models.ClubRanking, history []models.MatchResult, date3Passed bool) []models.ClubRanking {
	out := make([]models.ClubRanking, len(rankings))
	for i, club := range rankings {
		rebuilt := club.Clone()
		for _, category := range models.Categories {
			penalized := category != models.CategorySub12 &&
				rebuilt.SeriesDisabled(category) && date3Passed
			if penalized {
				rebuilt.CategoryStats[category] = ResolveDisabledSeries(
					rebuilt.ID, category, history, TotalMatchesPerTeamInDivision)
			} else {
				rebuilt.CategoryStats[category] = PlayedStatsFor(rebuilt.ID, category, history)
			}
		}
		out[i] = RecomputeGeneral(rebuilt)
	}
	return out
}
