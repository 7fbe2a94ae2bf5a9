package models

import "strconv"

// InitialClubs devuelve los 32 clubes fundadores con todas las series en
// cero: 16 en Primera y 16 en Segunda. Se usa para sembrar la base la
// primera vez que arranca el sistema.
func InitialClubs() []ClubRanking {
	primera := []string{
		"Colo Colo",
		"Universidad de Chile",
		"Union Española",
		"Universidad Catolica",
		"Cobreloa",
		"Cobresal",
		"Huachipato",
		"Ñublense",
		"Everton",
		"Union La Calera",
		"Palestino",
		"Audax Italiano",
		"Coquimbo Unido",
		"Deportes Copiapo",
		"Magallanes",
		"Curico Unido",
	}
	segunda := []string{
		"Deportes Concepcion",
		"Deportes Temuco",
		"Deportes Valdivia",
		"Iberia",
		"Lota Schwager",
		"Barrabases",
		"San Miguel",
		"Condor",
		"San Martin",
		"El Tejar",
		"Junior",
		"San Luis",
		"El Lucero",
		"Deportivo Chile",
		"Chillan Viejo",
		"Union Vieja",
	}

	clubs := make([]ClubRanking, 0, len(primera)+len(segunda))
	for i, name := range primera {
		clubs = append(clubs, NewClubRanking(clubID(i+1), name, DivisionPrimera))
	}
	for i, name := range segunda {
		clubs = append(clubs, NewClubRanking(clubID(len(primera)+i+1), name, DivisionSegunda))
	}
	return clubs
}

// ids estables: club-1 .. club-32, nunca se reutilizan
func clubID(n int) string {
	return "club-" + strconv.Itoa(n)
}
