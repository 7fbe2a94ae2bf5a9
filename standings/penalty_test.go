package standings

import (
	"testing"

	"github.com/emontecinos/futbol-tracker/models"
)

// arma un historial con campaña 4G/3E/3P, GF=12, GA=9 en la serie dada
func penaltyHistory(clubID string, category models.Category) []models.MatchResult {
	scores := [][2]int{
		{3, 1}, {3, 1}, {2, 1}, {2, 1}, // ganados
		{1, 1}, {1, 1}, {0, 0}, // empatados
		{0, 1}, {0, 1}, {0, 1}, // perdidos
	}
	history := make([]models.MatchResult, 0, len(scores))
	for i, s := range scores {
		history = append(history, testMatch(
			"m"+string(rune('a'+i)), clubID, "rival-"+string(rune('a'+i)),
			map[models.Category]models.CategoryScore{category: score(s[0], s[1])},
		))
	}
	return history
}

func TestResolveDisabledSeriesOverlay(t *testing.T) {
	history := penaltyHistory("club-1", models.CategorySenior35)

	got := ResolveDisabledSeries("club-1", models.CategorySenior35, history, 30)

	want := models.TeamStats{
		Points:         15,
		Played:         30,
		Won:            4,
		Drawn:          3,
		Lost:           23,
		GoalsFor:       12,
		GoalsAgainst:   29,
		GoalDifference: -17,
	}
	if got != want {
		t.Errorf("penalized stats = %+v, want %+v", got, want)
	}
}

func TestResolveDisabledSeriesNothingPlayed(t *testing.T) {
	got := ResolveDisabledSeries("club-1", models.CategorySub16, nil, 30)

	if got.Played != 30 || got.Lost != 30 || got.GoalsAgainst != 30 || got.Points != 0 {
		t.Errorf("full forfeit = %+v", got)
	}
}

func TestResolveDisabledSeriesRemainingClampsAtZero(t *testing.T) {
	history := penaltyHistory("club-1", models.CategorySenior35)

	// calendario ya cumplido: no se agregan derrotas fantasma
	got := ResolveDisabledSeries("club-1", models.CategorySenior35, history, 8)

	if got.Played != 8 || got.Lost != 3 || got.GoalsAgainst != 9 {
		t.Errorf("clamped stats = %+v", got)
	}
}

func TestPlayedStatsForSwapsVisitorSide(t *testing.T) {
	history := []models.MatchResult{
		testMatch("m1", "rival-1", "club-1", map[models.Category]models.CategoryScore{
			models.CategorySub18: score(1, 4),
		}),
	}

	got := PlayedStatsFor("club-1", models.CategorySub18, history)

	if got.Won != 1 || got.GoalsFor != 4 || got.GoalsAgainst != 1 || got.Points != 3 {
		t.Errorf("visitor stats = %+v", got)
	}
}
