package standings

import (
	"reflect"
	"testing"

	"github.com/emontecinos/futbol-tracker/models"
)

func TestRecomputeGeneralPlayedIsMax(t *testing.T) {
	club := testClub("club-1", "Colo Colo", models.DivisionPrimera)
	club.CategoryStats[models.CategorySub14] = models.TeamStats{Points: 6, Played: 2, Won: 2, GoalsFor: 5, GoalsAgainst: 1, GoalDifference: 4}
	club.CategoryStats[models.CategorySub16] = models.TeamStats{Points: 7, Played: 5, Won: 2, Drawn: 1, Lost: 2, GoalsFor: 8, GoalsAgainst: 9, GoalDifference: -1}
	club.CategoryStats[models.CategorySenior45] = models.TeamStats{Points: 4, Played: 3, Won: 1, Drawn: 1, Lost: 1, GoalsFor: 3, GoalsAgainst: 3}
	// Sub12 no debe aportar nada a la general
	club.CategoryStats[models.CategorySub12] = models.TeamStats{Points: 30, Played: 10, Won: 10, GoalsFor: 40, GoalDifference: 40}

	got := RecomputeGeneral(club)

	if got.Played != 5 {
		t.Errorf("general played = %d, want 5 (max, not sum)", got.Played)
	}
	if got.Points != 17 {
		t.Errorf("general points = %d, want 17", got.Points)
	}
	if got.Won != 5 || got.Drawn != 2 || got.Lost != 3 {
		t.Errorf("general W/D/L = %d/%d/%d, want 5/2/3", got.Won, got.Drawn, got.Lost)
	}
	if got.GoalsFor != 16 || got.GoalsAgainst != 13 || got.GoalDifference != 3 {
		t.Errorf("general goals = %d/%d/%d, want 16/13/3", got.GoalsFor, got.GoalsAgainst, got.GoalDifference)
	}
}

func TestRecomputeGeneralIdempotent(t *testing.T) {
	club := testClub("club-1", "Colo Colo", models.DivisionPrimera)
	club.CategoryStats[models.CategorySerieHonor] = models.TeamStats{Points: 9, Played: 4, Won: 3, Lost: 1, GoalsFor: 7, GoalsAgainst: 4, GoalDifference: 3}
	club.CategoryStats[models.CategorySub18] = models.TeamStats{Points: 2, Played: 2, Drawn: 2, GoalsFor: 2, GoalsAgainst: 2}

	once := RecomputeGeneral(club)
	twice := RecomputeGeneral(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("RecomputeGeneral not idempotent:\n once %+v\ntwice %+v", once.TeamStats, twice.TeamStats)
	}
}

func TestNonSub12Points(t *testing.T) {
	club := testClub("club-1", "Colo Colo", models.DivisionPrimera)
	club.CategoryStats[models.CategorySub12] = models.TeamStats{Points: 50}
	club.CategoryStats[models.CategorySub14] = models.TeamStats{Points: 10}
	club.CategoryStats[models.CategorySenior35] = models.TeamStats{Points: 7}

	if got := NonSub12Points(club); got != 17 {
		t.Errorf("NonSub12Points = %d, want 17", got)
	}
}
