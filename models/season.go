package models

// SeasonState son los dos flags globales de la temporada.
//
// Sub12Finalized es monótono en operación normal: una vez true el bono
// Sub12 forma parte de los puntos generales (y se recalcula en cada
// escritura); solo el cierre de temporada lo devuelve a false.
// Date3Passed lo activa un operador cuando pasó la tercera fecha y habilita
// la sanción de las series deshabilitadas.
type SeasonState struct {
	Sub12Finalized bool `json:"sub12Finalized" db:"sub12_finalized"`
	Date3Passed    bool `json:"date3Passed" db:"date3_passed"`
}
