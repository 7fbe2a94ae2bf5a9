package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/emontecinos/futbol-tracker/live"
	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/repositories"
	"github.com/emontecinos/futbol-tracker/standings"
)

// Los repositorios falsos guardan todo en memoria; de la base solo se
// necesita que BeginTx y Commit funcionen, así que el driver de prueba
// implementa únicamente el ciclo de transacción.
type txOnlyDriver struct{}

func (txOnlyDriver) Open(string) (driver.Conn, error) { return txOnlyConn{}, nil }

type txOnlyConn struct{}

func (txOnlyConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("consultas no soportadas")
}
func (txOnlyConn) Close() error              { return nil }
func (txOnlyConn) Begin() (driver.Tx, error) { return txOnlyTx{}, nil }

type txOnlyTx struct{}

func (txOnlyTx) Commit() error   { return nil }
func (txOnlyTx) Rollback() error { return nil }

var registerTxOnlyOnce sync.Once

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	registerTxOnlyOnce.Do(func() { sql.Register("txonly", txOnlyDriver{}) })
	db, err := sql.Open("txonly", "")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	return db
}

type fakeClubRepo struct {
	clubs     []models.ClubRanking
	saveCalls int
}

func (f *fakeClubRepo) List(ctx context.Context, _ repositories.SQLExecutor) ([]models.ClubRanking, error) {
	return models.CloneRankings(f.clubs), nil
}

func (f *fakeClubRepo) GetByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.ClubRanking, error) {
	for _, club := range f.clubs {
		if club.ID == id {
			c := club.Clone()
			return &c, nil
		}
	}
	return nil, repositories.ErrClubNotFound
}

func (f *fakeClubRepo) Count(ctx context.Context, _ repositories.SQLExecutor) (int, error) {
	return len(f.clubs), nil
}

func (f *fakeClubRepo) BatchCreate(ctx context.Context, _ repositories.SQLExecutor, clubs []models.ClubRanking) error {
	f.clubs = append(f.clubs, models.CloneRankings(clubs)...)
	return nil
}

func (f *fakeClubRepo) SaveAll(ctx context.Context, _ repositories.SQLExecutor, clubs []models.ClubRanking) error {
	f.clubs = models.CloneRankings(clubs)
	f.saveCalls++
	return nil
}

func (f *fakeClubRepo) UpdateCrestKey(ctx context.Context, _ repositories.SQLExecutor, id string, crestKey *string) error {
	return nil
}

type fakeMatchRepo struct {
	history []models.MatchResult
}

func (f *fakeMatchRepo) List(ctx context.Context, _ repositories.SQLExecutor) ([]models.MatchResult, error) {
	return append([]models.MatchResult(nil), f.history...), nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.MatchResult, error) {
	for _, match := range f.history {
		if match.ID == id {
			m := match
			return &m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) Create(ctx context.Context, _ repositories.SQLExecutor, match *models.MatchResult) error {
	f.history = append(f.history, *match)
	return nil
}

func (f *fakeMatchRepo) Update(ctx context.Context, _ repositories.SQLExecutor, match *models.MatchResult) error {
	for i := range f.history {
		if f.history[i].ID == match.ID {
			f.history[i] = *match
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) DeleteAll(ctx context.Context, _ repositories.SQLExecutor) error {
	f.history = nil
	return nil
}

type fakeSeasonRepo struct {
	state models.SeasonState
}

func (f *fakeSeasonRepo) Get(ctx context.Context, _ repositories.SQLExecutor) (models.SeasonState, error) {
	return f.state, nil
}

func (f *fakeSeasonRepo) Save(ctx context.Context, _ repositories.SQLExecutor, state models.SeasonState) error {
	f.state = state
	return nil
}

func newTestService(t *testing.T, clubs *fakeClubRepo, matches *fakeMatchRepo, seasons *fakeSeasonRepo) StandingsService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStandingsService(testDB(t), clubs, matches, seasons, live.NewHub(logger), logger)
}

func intPtr(n int) *int { return &n }

func score(local, visitor int) models.CategoryScore {
	return models.CategoryScore{LocalGoals: intPtr(local), VisitorGoals: intPtr(visitor)}
}

func matchInput(localID, visitorID string, results map[models.Category]models.CategoryScore) models.MatchResultInput {
	return models.MatchResultInput{
		LocalClubID:   localID,
		VisitorClubID: visitorID,
		Date:          time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Results:       results,
	}
}

func TestRecordMatchRejectsCrossDivision(t *testing.T) {
	clubs := &fakeClubRepo{clubs: []models.ClubRanking{
		models.NewClubRanking("club-1", "Colo Colo", models.DivisionPrimera),
		models.NewClubRanking("club-17", "Magallanes", models.DivisionSegunda),
	}}
	matches := &fakeMatchRepo{}
	seasons := &fakeSeasonRepo{}
	svc := newTestService(t, clubs, matches, seasons)

	input := matchInput("club-1", "club-17", map[models.Category]models.CategoryScore{
		models.CategorySenior35: score(2, 0),
	})
	if _, err := svc.RecordMatch(context.Background(), input); !errors.Is(err, ErrDivisionMismatch) {
		t.Fatalf("RecordMatch cruzando divisiones: err = %v, quiero ErrDivisionMismatch", err)
	}
	if len(matches.history) != 0 {
		t.Errorf("el partido rechazado no debe quedar en el historial, hay %d", len(matches.history))
	}
	if clubs.saveCalls != 0 {
		t.Errorf("la tabla no debe persistirse tras un rechazo, SaveAll se llamó %d veces", clubs.saveCalls)
	}
}

func TestEditMatchRejectsCrossDivision(t *testing.T) {
	clubs := &fakeClubRepo{clubs: []models.ClubRanking{
		models.NewClubRanking("club-1", "Colo Colo", models.DivisionPrimera),
		models.NewClubRanking("club-2", "Everton", models.DivisionPrimera),
		models.NewClubRanking("club-17", "Magallanes", models.DivisionSegunda),
	}}
	matches := &fakeMatchRepo{history: []models.MatchResult{{
		ID: "m1",
		MatchResultInput: matchInput("club-1", "club-2", map[models.Category]models.CategoryScore{
			models.CategorySenior35: score(1, 0),
		}),
	}}}
	seasons := &fakeSeasonRepo{}
	svc := newTestService(t, clubs, matches, seasons)

	input := matchInput("club-1", "club-17", map[models.Category]models.CategoryScore{
		models.CategorySenior35: score(1, 0),
	})
	if _, err := svc.EditMatch(context.Background(), "m1", input); !errors.Is(err, ErrDivisionMismatch) {
		t.Fatalf("EditMatch cruzando divisiones: err = %v, quiero ErrDivisionMismatch", err)
	}
	if got := matches.history[0].VisitorClubID; got != "club-2" {
		t.Errorf("el partido guardado no debe cambiar, visitante = %s", got)
	}
}

func TestRecordMatchUnknownClub(t *testing.T) {
	clubs := &fakeClubRepo{clubs: []models.ClubRanking{
		models.NewClubRanking("club-1", "Colo Colo", models.DivisionPrimera),
	}}
	svc := newTestService(t, clubs, &fakeMatchRepo{}, &fakeSeasonRepo{})

	input := matchInput("club-1", "no-existe", map[models.Category]models.CategoryScore{
		models.CategorySenior35: score(2, 0),
	})
	if _, err := svc.RecordMatch(context.Background(), input); !errors.Is(err, ErrClubNotFound) {
		t.Fatalf("RecordMatch con club desconocido: err = %v, quiero ErrClubNotFound", err)
	}
}

func TestEditMatchRevertThenReapply(t *testing.T) {
	clubs := &fakeClubRepo{clubs: []models.ClubRanking{
		models.NewClubRanking("club-1", "Colo Colo", models.DivisionPrimera),
		models.NewClubRanking("club-2", "Everton", models.DivisionPrimera),
	}}
	matches := &fakeMatchRepo{}
	seasons := &fakeSeasonRepo{}
	svc := newTestService(t, clubs, matches, seasons)
	ctx := context.Background()

	recorded, err := svc.RecordMatch(ctx, matchInput("club-1", "club-2", map[models.Category]models.CategoryScore{
		models.CategorySenior35: score(3, 1),
	}))
	if err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}
	if recorded.LocalPoints != 3 || recorded.VisitorPoints != 0 {
		t.Fatalf("puntos de auditoría = (%d, %d), quiero (3, 0)", recorded.LocalPoints, recorded.VisitorPoints)
	}

	edited, err := svc.EditMatch(ctx, recorded.ID, matchInput("club-1", "club-2", map[models.Category]models.CategoryScore{
		models.CategorySenior35: score(1, 1),
	}))
	if err != nil {
		t.Fatalf("EditMatch: %v", err)
	}
	if edited.LocalPoints != 1 || edited.VisitorPoints != 1 {
		t.Errorf("puntos de auditoría editados = (%d, %d), quiero (1, 1)", edited.LocalPoints, edited.VisitorPoints)
	}

	// La edición revierte el 3-1 y aplica el 1-1: no puede quedar rastro
	// de la victoria original en ninguna estadística.
	for _, id := range []string{"club-1", "club-2"} {
		club, err := clubs.GetByID(ctx, nil, id)
		if err != nil {
			t.Fatalf("GetByID(%s): %v", id, err)
		}
		stats := club.CategoryStats[models.CategorySenior35]
		want := models.TeamStats{Points: 1, Played: 1, Drawn: 1, GoalsFor: 1, GoalsAgainst: 1}
		if stats != want {
			t.Errorf("%s Senior35 = %+v, quiero %+v", id, stats, want)
		}
		if club.Points != 1 || club.Won != 0 {
			t.Errorf("%s general = %d puntos / %d ganados, quiero 1 / 0", id, club.Points, club.Won)
		}
	}
	if got := matches.history[0].Results[models.CategorySenior35]; *got.LocalGoals != 1 {
		t.Errorf("historial guarda local %d, quiero 1", *got.LocalGoals)
	}
}

func TestRecordMatchKeepsSub12BonusActive(t *testing.T) {
	clubs := &fakeClubRepo{clubs: []models.ClubRanking{
		models.NewClubRanking("club-1", "Audax Italiano", models.DivisionPrimera),
		models.NewClubRanking("club-2", "Cobreloa", models.DivisionPrimera),
	}}
	matches := &fakeMatchRepo{}
	seasons := &fakeSeasonRepo{state: models.SeasonState{Sub12Finalized: true}}
	svc := newTestService(t, clubs, matches, seasons)

	_, err := svc.RecordMatch(context.Background(), matchInput("club-1", "club-2", map[models.Category]models.CategoryScore{
		models.CategorySenior35: score(2, 0),
	}))
	if err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	if !seasons.state.Sub12Finalized {
		t.Fatal("Sub12Finalized debe seguir en true tras registrar una fecha")
	}
	// Con el bono activo, los puntos generales se refinalizan en cada
	// cambio: puntos de serie más el bono por posición Sub12 (empate en
	// cero, desempata el nombre: Audax 100, Cobreloa 90).
	wantPoints := map[string]int{"club-1": 103, "club-2": 90}
	for _, club := range clubs.clubs {
		if club.Points != wantPoints[club.ID] {
			t.Errorf("%s general = %d puntos, quiero %d", club.ID, club.Points, wantPoints[club.ID])
		}
	}
}

func TestRecordMatchAppliesDisabledSeriesPenalty(t *testing.T) {
	sancionado := models.NewClubRanking("club-1", "Colo Colo", models.DivisionPrimera)
	sancionado.DisabledSeries = map[models.Category]bool{models.CategorySenior35: true}
	clubs := &fakeClubRepo{clubs: []models.ClubRanking{
		sancionado,
		models.NewClubRanking("club-2", "Everton", models.DivisionPrimera),
	}}
	matches := &fakeMatchRepo{}
	seasons := &fakeSeasonRepo{state: models.SeasonState{Date3Passed: true}}
	svc := newTestService(t, clubs, matches, seasons)

	_, err := svc.RecordMatch(context.Background(), matchInput("club-1", "club-2", map[models.Category]models.CategoryScore{
		models.CategorySenior35: score(2, 0),
		models.CategorySub16:    score(1, 1),
	}))
	if err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	club, err := clubs.GetByID(context.Background(), nil, "club-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	stats := club.CategoryStats[models.CategorySenior35]
	want := models.TeamStats{
		Points:         3,
		Played:         standings.TotalMatchesPerTeamInDivision,
		Won:            1,
		Lost:           standings.TotalMatchesPerTeamInDivision - 1,
		GoalsFor:       2,
		GoalsAgainst:   standings.TotalMatchesPerTeamInDivision - 1,
		GoalDifference: 2 - (standings.TotalMatchesPerTeamInDivision - 1),
	}
	if stats != want {
		t.Errorf("Senior35 sancionada = %+v, quiero %+v", stats, want)
	}
	if club.Played != standings.TotalMatchesPerTeamInDivision {
		t.Errorf("general Played = %d, quiero %d", club.Played, standings.TotalMatchesPerTeamInDivision)
	}

	rival, err := clubs.GetByID(context.Background(), nil, "club-2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got := rival.CategoryStats[models.CategorySenior35]; got.Played != 1 || got.Lost != 1 {
		t.Errorf("el rival no sancionado juega lo real, Senior35 = %+v", got)
	}
}

func TestRecordMatchCopiesResults(t *testing.T) {
	clubs := &fakeClubRepo{clubs: []models.ClubRanking{
		models.NewClubRanking("club-1", "Colo Colo", models.DivisionPrimera),
		models.NewClubRanking("club-2", "Everton", models.DivisionPrimera),
	}}
	matches := &fakeMatchRepo{}
	svc := newTestService(t, clubs, matches, &fakeSeasonRepo{})

	localGoals := intPtr(2)
	input := matchInput("club-1", "club-2", map[models.Category]models.CategoryScore{
		models.CategorySenior35: {LocalGoals: localGoals, VisitorGoals: intPtr(0)},
	})
	if _, err := svc.RecordMatch(context.Background(), input); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	// Mutar la entrada del llamador no puede alterar lo ya registrado.
	*localGoals = 9
	if got := matches.history[0].Results[models.CategorySenior35]; *got.LocalGoals != 2 {
		t.Errorf("historial local = %d tras mutar la entrada, quiero 2", *got.LocalGoals)
	}
}
