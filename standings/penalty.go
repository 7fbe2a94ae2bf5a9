package standings

import "github.com/emontecinos/futbol-tracker/models"

// PlayedStatsFor reconstruye desde el historial de partidos la estadística
// realmente jugada por un club en una serie (mismo puntaje 3/1/0 que
// ApplyMatch). Es la base tanto del recálculo completo como de la sanción.
func PlayedStatsFor(clubID string, category models.Category, history []models.MatchResult) models.TeamStats {
	var stats models.TeamStats
	for _, match := range history {
		if match.LocalClubID != clubID && match.VisitorClubID != clubID {
			continue
		}
		score, ok := match.Results[category]
		if !ok || !score.Recorded() {
			continue
		}
		scored, conceded := *score.LocalGoals, *score.VisitorGoals
		if match.VisitorClubID == clubID {
			scored, conceded = conceded, scored
		}

		stats.Played++
		stats.GoalsFor += scored
		stats.GoalsAgainst += conceded
		switch {
		case scored > conceded:
			stats.Won++
			stats.Points += 3
		case scored < conceded:
			stats.Lost++
		default:
			stats.Drawn++
			stats.Points++
		}
	}
	stats.GoalDifference = stats.GoalsFor - stats.GoalsAgainst
	return stats
}

// ResolveDisabledSeries calcula la estadística sancionada de una serie
// deshabilitada: el club figura como si hubiera jugado el calendario
// completo y PERDIDO cada fecha que no jugó de verdad (walkover, un gol en
// contra por fecha, sin goles a favor ni puntos). Lo jugado se respeta.
//
// Se recalcula siempre desde cero sobre el historial: la sanción es una
// capa, no un estado; si la serie se rehabilita, el próximo recálculo la
// quita sola.
func ResolveDisabledSeries(clubID string, category models.Category, history []models.MatchResult, totalMatches int) models.TeamStats {
	played := PlayedStatsFor(clubID, category, history)

	remaining := totalMatches - played.Played
	if remaining < 0 {
		remaining = 0
	}

	return models.TeamStats{
		Points:         played.Points,
		Played:         totalMatches,
		Won:            played.Won,
		Drawn:          played.Drawn,
		Lost:           played.Lost + remaining,
		GoalsFor:       played.GoalsFor,
		GoalsAgainst:   played.GoalsAgainst + remaining*ForfeitGoalsAgainst,
		GoalDifference: played.GoalsFor - (played.GoalsAgainst + remaining*ForfeitGoalsAgainst),
	}
}
