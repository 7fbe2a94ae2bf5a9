package standings

// NumberOfTeamsPerDivision fija el tamaño de cada división.
const NumberOfTeamsPerDivision = 16

// TotalMatchesPerTeamInDivision es el calendario completo de ida y vuelta
// dentro de una división; la sanción de serie deshabilitada asume que el
// club debió jugar esta cantidad de fechas.
const TotalMatchesPerTeamInDivision = (NumberOfTeamsPerDivision - 1) * 2

// ForfeitGoalsAgainst es el marcador en contra que se asume por cada fecha
// no jugada de una serie sancionada (walkover 0-1). Es política: el
// reglamento no fija el marcador exacto, por eso vive en una constante.
const ForfeitGoalsAgainst = 1

// Sub12PointsDistribution asigna el bono Sub12 por posición final
// (índice 0 = 1er lugar). Las posiciones más allá de la tabla reciben la
// última entrada.
var Sub12PointsDistribution = []int{
	100, 90, 85, 80, 75, 70, 65, 60, 55, 50, 45, 40, 35, 30, 25,
	25,
}

// RequiredSub12Matches calcula las fechas de un doble round-robin Sub12
// entre n clubes. Sub12 es una competencia unificada: participan los clubes
// de ambas divisiones.
func RequiredSub12Matches(n int) int {
	return (n - 1) * 2
}
