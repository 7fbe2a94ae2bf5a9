package standings

import "github.com/emontecinos/futbol-tracker/models"

// RecomputeGeneral rederiva la estadística general del club desde sus
// series, excluyendo Sub12 (esa serie solo aporta por el bono). La tabla
// general es una vista materializada: se recalcula completa después de cada
// mutación de serie en vez de mantenerla por separado, así no puede
// desviarse.
//
// Played general es el MÁXIMO de las series, no la suma: cada serie corre
// su propio round-robin en paralelo y la general sigue a la más avanzada.
// El resto de los campos sí se suman. Es idempotente.
func RecomputeGeneral(club models.ClubRanking) models.ClubRanking {
	out := club.Clone()

	var general models.TeamStats
	for _, category := range models.Categories {
		if category == models.CategorySub12 {
			continue
		}
		stats := out.CategoryStats[category]
		general.Points += stats.Points
		if stats.Played > general.Played {
			general.Played = stats.Played
		}
		general.Won += stats.Won
		general.Drawn += stats.Drawn
		general.Lost += stats.Lost
		general.GoalsFor += stats.GoalsFor
		general.GoalsAgainst += stats.GoalsAgainst
	}
	general.GoalDifference = general.GoalsFor - general.GoalsAgainst

	out.TeamStats = general
	return out
}

// NonSub12Points suma los puntos de serie del club sin Sub12; es la base
// sobre la que se agrega el bono Sub12.
func NonSub12Points(club models.ClubRanking) int {
	total := 0
	for category, stats := range club.CategoryStats {
		if category == models.CategorySub12 {
			continue
		}
		total += stats.Points
	}
	return total
}
