package models

import "time"

// PlayerInput son los datos del formulario de inscripción.
type PlayerInput struct {
	Rut       string    `json:"rut"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	BirthDate time.Time `json:"birthDate"`
	ClubID    string    `json:"clubId"`
	Category  Category  `json:"category"`
}

// Player es un jugador inscrito. El RUT se guarda formateado
// (12.345.678-9) y es único en toda la liga.
type Player struct {
	ID string `json:"id" db:"id"`
	PlayerInput
	Age              int       `json:"age" db:"age"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`
}
