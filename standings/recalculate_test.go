package standings

import (
	"testing"

	"github.com/emontecinos/futbol-tracker/models"
)

func TestRecalculateMatchesIncrementalPath(t *testing.T) {
	rankings := []models.ClubRanking{
		testClub("club-1", "Colo Colo", models.DivisionPrimera),
		testClub("club-2", "Everton", models.DivisionPrimera),
		testClub("club-3", "Palestino", models.DivisionPrimera),
	}
	history := []models.MatchResult{
		testMatch("m1", "club-1", "club-2", map[models.Category]models.CategoryScore{
			models.CategorySub14:    score(2, 0),
			models.CategorySenior45: score(1, 1),
			models.CategorySub12:    score(3, 2),
		}),
		testMatch("m2", "club-3", "club-1", map[models.Category]models.CategoryScore{
			models.CategorySub14: score(2, 2),
		}),
	}

	incremental := rankings
	for _, m := range history {
		var err error
		incremental, _, _, err = ApplyMatch(m, incremental, Apply)
		if err != nil {
			t.Fatalf("apply %s: %v", m.ID, err)
		}
	}

	recalculated := RecalculateFromMatches(rankings, history, false)

	for i := range incremental {
		if incremental[i].TeamStats != recalculated[i].TeamStats {
			t.Errorf("club %s general: incremental %+v != recalculated %+v",
				incremental[i].ID, incremental[i].TeamStats, recalculated[i].TeamStats)
		}
		for _, category := range models.Categories {
			a := incremental[i].CategoryStats[category]
			b := recalculated[i].CategoryStats[category]
			if a != b {
				t.Errorf("club %s %s: incremental %+v != recalculated %+v", incremental[i].ID, category, a, b)
			}
		}
	}
}

func TestRecalculateAppliesPenaltyOnlyWithDate3(t *testing.T) {
	club := testClub("club-1", "Colo Colo", models.DivisionPrimera)
	club.DisabledSeries = map[models.Category]bool{models.CategorySenior35: true}
	rankings := []models.ClubRanking{club, testClub("club-2", "Everton", models.DivisionPrimera)}

	history := []models.MatchResult{
		testMatch("m1", "club-1", "club-2", map[models.Category]models.CategoryScore{
			models.CategorySenior35: score(2, 0),
		}),
	}

	without := RecalculateFromMatches(rankings, history, false)
	if got := without[0].CategoryStats[models.CategorySenior35]; got.Played != 1 || got.Lost != 0 {
		t.Errorf("sin Date3Passed no hay sanción: %+v", got)
	}

	with := RecalculateFromMatches(rankings, history, true)
	got := with[0].CategoryStats[models.CategorySenior35]
	if got.Played != TotalMatchesPerTeamInDivision {
		t.Errorf("played = %d, want %d", got.Played, TotalMatchesPerTeamInDivision)
	}
	if got.Lost != TotalMatchesPerTeamInDivision-1 || got.Won != 1 {
		t.Errorf("penalized W/L = %d/%d", got.Won, got.Lost)
	}
	if got.Points != 3 {
		t.Errorf("points = %d, want only the 3 actually earned", got.Points)
	}

	// el rival no sancionado queda igual en ambos caminos
	if with[1].CategoryStats[models.CategorySenior35] != without[1].CategoryStats[models.CategorySenior35] {
		t.Errorf("opponent stats must not change with the toggle")
	}
}

func TestRecalculatePenaltyIsReversible(t *testing.T) {
	club := testClub("club-1", "Colo Colo", models.DivisionPrimera)
	club.DisabledSeries = map[models.Category]bool{models.CategorySub16: true}
	rankings := []models.ClubRanking{club, testClub("club-2", "Everton", models.DivisionPrimera)}
	history := []models.MatchResult{
		testMatch("m1", "club-1", "club-2", map[models.Category]models.CategoryScore{
			models.CategorySub16: score(1, 1),
		}),
	}

	penalized := RecalculateFromMatches(rankings, history, true)
	if penalized[0].CategoryStats[models.CategorySub16].Played != TotalMatchesPerTeamInDivision {
		t.Fatalf("expected penalty overlay")
	}

	// rehabilitar la serie y recalcular la quita por completo
	penalized[0].DisabledSeries = nil
	clean := RecalculateFromMatches(penalized, history, true)
	got := clean[0].CategoryStats[models.CategorySub16]
	if got.Played != 1 || got.Drawn != 1 || got.Points != 1 || got.GoalsAgainst != 1 {
		t.Errorf("overlay not removed: %+v", got)
	}
}
