package standings

import (
	"fmt"

	"github.com/emontecinos/futbol-tracker/models"
)

// Direction es el sentido en que se imputa un partido. Revert usa el mismo
// camino que Apply con factor -1: editar un partido es revertir el viejo y
// aplicar el nuevo, sin rama especial de actualización.
type Direction int

const (
	Apply  Direction = 1
	Revert Direction = -1
)

// ApplyMatch imputa (o revierte) un partido sobre el listado de posiciones
// y devuelve un listado nuevo junto con los puntos no-Sub12 ganados por
// cada lado en la fecha (para el campo de auditoría del partido).
//
// Solo se tocan los dos clubes del partido; por cada serie con ambos
// marcadores se actualiza su estadística y al final se rederiva la general.
// Si algún club no existe, la entrada se devuelve intacta con totales cero
// y ErrClubNotFound.
func ApplyMatch(match models.MatchResult, rankings []models.ClubRanking, dir Direction) ([]models.ClubRanking, int, int, error) {
	localIdx, visitorIdx := -1, -1
	for i, club := range rankings {
		switch club.ID {
		case match.LocalClubID:
			localIdx = i
		case match.VisitorClubID:
			visitorIdx = i
		}
	}
	if localIdx < 0 {
		return rankings, 0, 0, fmt.Errorf("%w: %s", ErrClubNotFound, match.LocalClubID)
	}
	if visitorIdx < 0 {
		return rankings, 0, 0, fmt.Errorf("%w: %s", ErrClubNotFound, match.VisitorClubID)
	}

	factor := int(dir)
	out := make([]models.ClubRanking, len(rankings))
	copy(out, rankings)

	var localPoints, visitorPoints int
	for _, idx := range []int{localIdx, visitorIdx} {
		club := out[idx].Clone()
		isLocal := idx == localIdx

		for _, category := range models.Categories {
			score, ok := match.Results[category]
			if !ok || !score.Recorded() {
				continue
			}
			scored, conceded := *score.LocalGoals, *score.VisitorGoals
			if !isLocal {
				scored, conceded = conceded, scored
			}

			stats := club.CategoryStats[category]
			stats.Played += factor
			stats.GoalsFor += scored * factor
			stats.GoalsAgainst += conceded * factor

			points := 0
			switch {
			case scored > conceded:
				points = 3
				stats.Won += factor
			case scored < conceded:
				stats.Lost += factor
			default:
				points = 1
				stats.Drawn += factor
			}
			stats.Points += points * factor
			stats.GoalDifference = stats.GoalsFor - stats.GoalsAgainst
			club.CategoryStats[category] = stats

			if category != models.CategorySub12 {
				if isLocal {
					localPoints += points * factor
				} else {
					visitorPoints += points * factor
				}
			}
		}

		out[idx] = RecomputeGeneral(club)
	}

	return out, localPoints, visitorPoints, nil
}
