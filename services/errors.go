package services

import "errors"

// Errores comunes compartidos entre servicios y el mapeo HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validación y reglas de negocio
	ErrValidationFailed    = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidRut          = errors.New("invalid rut")
	ErrInvalidCategory     = errors.New("unknown category")
	ErrDivisionMismatch    = errors.New("clubs must belong to the same division")
	ErrNoRecordedResults   = errors.New("match has no recorded category results")
	ErrSameClub            = errors.New("local and visitor club must be different")
	ErrSuspensionBadRange  = errors.New("suspension duration must be positive")
	ErrCrestFileTooLarge   = errors.New("crest file exceeds the allowed size")
	ErrCrestInvalidFormat  = errors.New("crest file must be a png, jpeg or webp image")
	ErrCrestStorageOffline = errors.New("crest storage is not configured")
	ErrRolloverNotPossible = errors.New("not enough clubs per division to roll over the season")

	// Conflictos
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrPlayerRutConflict = errors.New("a player with this rut is already registered")

	// Autenticación y autorización
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Errores específicos por entidad
	ErrClubNotFound       = errors.New("club not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrSuspensionNotFound = errors.New("suspension not found")
	ErrUserNotFound       = errors.New("user not found")
)
