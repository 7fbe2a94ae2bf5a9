package standings

import (
	"errors"
	"fmt"
	"testing"

	"github.com/emontecinos/futbol-tracker/models"
)

func seasonClub(id string, division models.Division, points int) models.ClubRanking {
	club := testClub(id, "Club "+id, division)
	club.Points = points
	club.CategoryStats[models.CategorySub14] = models.TeamStats{Points: points, Played: 4}
	return club
}

func TestRolloverSeasonPromotionRelegation(t *testing.T) {
	var rankings []models.ClubRanking
	// Primera T1..T16 con puntaje descendente, Segunda S1..S16 igual
	for i := 1; i <= 16; i++ {
		rankings = append(rankings, seasonClub(fmt.Sprintf("T%d", i), models.DivisionPrimera, 100-i))
	}
	for i := 1; i <= 16; i++ {
		rankings = append(rankings, seasonClub(fmt.Sprintf("S%d", i), models.DivisionSegunda, 100-i))
	}

	out, err := RolloverSeason(rankings)
	if err != nil {
		t.Fatalf("RolloverSeason: %v", err)
	}

	divisions := map[string]models.Division{}
	for _, club := range out {
		divisions[club.ID] = club.Division
	}
	for _, id := range []string{"T14", "T15", "T16"} {
		if divisions[id] != models.DivisionSegunda {
			t.Errorf("%s should be relegated, got %s", id, divisions[id])
		}
	}
	for _, id := range []string{"S1", "S2", "S3"} {
		if divisions[id] != models.DivisionPrimera {
			t.Errorf("%s should be promoted, got %s", id, divisions[id])
		}
	}
	if divisions["T1"] != models.DivisionPrimera || divisions["S16"] != models.DivisionSegunda {
		t.Errorf("mid-table clubs must keep their division")
	}

	for _, club := range out {
		if club.TeamStats != (models.TeamStats{}) {
			t.Errorf("club %s general stats not reset: %+v", club.ID, club.TeamStats)
		}
		for category, stats := range club.CategoryStats {
			if stats != (models.TeamStats{}) {
				t.Errorf("club %s %s stats not reset: %+v", club.ID, category, stats)
			}
		}
	}
}

func TestRolloverSeasonTieBreaks(t *testing.T) {
	mk := func(id string, points, gd, gf int) models.ClubRanking {
		club := testClub(id, "Club "+id, models.DivisionPrimera)
		club.Points, club.GoalDifference, club.GoalsFor = points, gd, gf
		return club
	}
	rankings := []models.ClubRanking{
		mk("A", 10, 5, 20),
		mk("B", 10, 5, 18), // cae por goles a favor
		mk("C", 10, 3, 30), // cae por diferencia
		mk("D", 12, 0, 1),
	}
	for i := 1; i <= 3; i++ {
		rankings = append(rankings, seasonClub(fmt.Sprintf("S%d", i), models.DivisionSegunda, i))
	}

	out, err := RolloverSeason(rankings)
	if err != nil {
		t.Fatalf("RolloverSeason: %v", err)
	}
	divisions := map[string]models.Division{}
	for _, club := range out {
		divisions[club.ID] = club.Division
	}
	// orden esperado: D, A, B, C -> descienden los últimos 3
	if divisions["D"] != models.DivisionPrimera {
		t.Errorf("D should stay in Primera")
	}
	for _, id := range []string{"A", "B", "C"} {
		if divisions[id] != models.DivisionSegunda {
			t.Errorf("%s should be relegated, got %s", id, divisions[id])
		}
	}
}

func TestRolloverSeasonInsufficientClubs(t *testing.T) {
	rankings := []models.ClubRanking{
		seasonClub("T1", models.DivisionPrimera, 10),
		seasonClub("T2", models.DivisionPrimera, 8),
		seasonClub("T3", models.DivisionPrimera, 6),
		seasonClub("S1", models.DivisionSegunda, 4),
		seasonClub("S2", models.DivisionSegunda, 2),
	}

	_, err := RolloverSeason(rankings)
	if !errors.Is(err, ErrInsufficientClubs) {
		t.Fatalf("err = %v, want ErrInsufficientClubs", err)
	}
}
