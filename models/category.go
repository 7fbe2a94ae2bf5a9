package models

// Category representa una serie de la liga (grupo etario o de veteranos).
// Cada serie juega su propio torneo de ida y vuelta dentro del división;
// Sub12 es la única serie que no aporta puntos directamente a la tabla
// general (ver paquete standings).
type Category string

const (
	CategorySub12        Category = "Sub12"
	CategorySub14        Category = "Sub14"
	CategorySub16        Category = "Sub16"
	CategorySub18        Category = "Sub18"
	CategorySenior45     Category = "Senior 45"
	CategorySenior35     Category = "Senior 35"
	CategorySenior50     Category = "Senior 50"
	CategorySerieSegunda Category = "Serie Segunda"
	CategorySeriePrimera Category = "Serie Primera"
	CategorySerieHonor   Category = "Serie Honor"
)

// Categories lista todas las series en orden fijo.
var Categories = []Category{
	CategorySub12,
	CategorySub14,
	CategorySub16,
	CategorySub18,
	CategorySenior45,
	CategorySenior35,
	CategorySenior50,
	CategorySerieSegunda,
	CategorySeriePrimera,
	CategorySerieHonor,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Division es el nivel de la liga. Un club pertenece exactamente a una
// división; la composición solo cambia al cerrar la temporada.
type Division string

const (
	DivisionPrimera Division = "Primera"
	DivisionSegunda Division = "Segunda"
)

var Divisions = []Division{DivisionPrimera, DivisionSegunda}

func (d Division) Valid() bool {
	return d == DivisionPrimera || d == DivisionSegunda
}
