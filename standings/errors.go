package standings

import "errors"

var (
	// ErrClubNotFound: un id referenciado por el partido no existe en el
	// listado; la operación es un no-op sobre la entrada.
	ErrClubNotFound = errors.New("club not found in rankings")

	// ErrInsufficientClubs: una división tiene menos de 3 clubes y no se
	// puede aplicar el ascenso/descenso.
	ErrInsufficientClubs = errors.New("division has fewer clubs than promotion/relegation spots")
)
