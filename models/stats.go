package models

// TeamStats acumula la estadística de un club en una serie (o la general).
// Invariantes: GoalDifference == GoalsFor - GoalsAgainst y
// Played == Won + Drawn + Lost; bajo la sanción de serie deshabilitada la
// relación Points == 3*Won + Drawn se rompe a propósito.
type TeamStats struct {
	Points         int `json:"points" db:"points"`
	Played         int `json:"played" db:"played"`
	Won            int `json:"won" db:"won"`
	Drawn          int `json:"drawn" db:"drawn"`
	Lost           int `json:"lost" db:"lost"`
	GoalsFor       int `json:"goalsFor" db:"goals_for"`
	GoalsAgainst   int `json:"goalsAgainst" db:"goals_against"`
	GoalDifference int `json:"goalDifference" db:"goal_difference"`
}

// ClubRanking es la fila autoritativa de un club: identidad, estadística
// general (embebida) y el detalle por serie. Los clubes nunca se borran,
// solo se reinician al cerrar la temporada.
type ClubRanking struct {
	ID       string   `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Division Division `json:"division" db:"division"`

	TeamStats // estadística general (agregada sobre las series, sin Sub12)

	CategoryStats  map[Category]TeamStats `json:"categoryStats" db:"-"`
	DisabledSeries map[Category]bool      `json:"disabledSeries,omitempty" db:"-"`

	CrestKey *string `json:"-" db:"crest_key"`
	CrestURL *string `json:"crest_url,omitempty" db:"-"`
}

// NewClubRanking crea un club con todas las series en cero.
func NewClubRanking(id, name string, division Division) ClubRanking {
	club := ClubRanking{
		ID:            id,
		Name:          name,
		Division:      division,
		CategoryStats: make(map[Category]TeamStats, len(Categories)),
	}
	for _, category := range Categories {
		club.CategoryStats[category] = TeamStats{}
	}
	return club
}

// Clone devuelve una copia profunda. Los transformes del paquete standings
// trabajan siempre sobre copias; el original reemplaza el
// JSON.parse(JSON.stringify(...)) por semántica de valor explícita.
func (c ClubRanking) Clone() ClubRanking {
	out := c
	out.CategoryStats = make(map[Category]TeamStats, len(c.CategoryStats))
	for category, stats := range c.CategoryStats {
		out.CategoryStats[category] = stats
	}
	if c.DisabledSeries != nil {
		out.DisabledSeries = make(map[Category]bool, len(c.DisabledSeries))
		for category, disabled := range c.DisabledSeries {
			out.DisabledSeries[category] = disabled
		}
	}
	if c.CrestKey != nil {
		key := *c.CrestKey
		out.CrestKey = &key
	}
	if c.CrestURL != nil {
		url := *c.CrestURL
		out.CrestURL = &url
	}
	return out
}

// SeriesDisabled informa si el club se retiró de la serie.
func (c ClubRanking) SeriesDisabled(category Category) bool {
	return c.DisabledSeries[category]
}

// CloneRankings copia profunda de un listado completo.
func CloneRankings(rankings []ClubRanking) []ClubRanking {
	out := make([]ClubRanking, len(rankings))
	for i, club := range rankings {
		out[i] = club.Clone()
	}
	return out
}
