package utils

import (
	"strings"
	"time"

	"github.com/emontecinos/futbol-tracker/models"
)

// CalculateRutDv calcula el dígito verificador (módulo 11) para el cuerpo
// numérico de un RUT chileno. Devuelve "" si el cuerpo no tiene dígitos.
func CalculateRutDv(rutBody string) string {
	body := keepDigits(rutBody)
	if body == "" {
		return ""
	}

	sum := 1
	multiplier := 0
	for i := len(body) - 1; i >= 0; i-- {
		digit := int(body[i] - '0')
		sum = (sum + digit*(9-multiplier%6)) % 11
		multiplier++
	}
	if sum == 0 {
		return "K"
	}
	return string(rune('0' + sum - 1))
}

// ValidateRut acepta el RUT completo con o sin puntos y guion
// ("12.345.678-9", "123456789") y verifica su dígito verificador.
func ValidateRut(rut string) bool {
	clean := cleanRut(rut)
	if len(clean) < 2 {
		return false
	}
	body := clean[:len(clean)-1]
	dv := clean[len(clean)-1:]
	if keepDigits(body) != body {
		return false
	}
	return CalculateRutDv(body) == dv
}

// FormatRut normaliza un RUT al formato con puntos y guion
// ("12.345.678-9"). Si la entrada no tiene la forma de un RUT se
// devuelve sin cambios.
func FormatRut(rut string) string {
	clean := cleanRut(rut)
	if len(clean) < 2 {
		return rut
	}
	body := clean[:len(clean)-1]
	dv := clean[len(clean)-1:]
	if keepDigits(body) != body {
		return rut
	}

	var b strings.Builder
	for i, ch := range body {
		remaining := len(body) - i
		if i > 0 && remaining%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}
	b.WriteByte('-')
	b.WriteString(dv)
	return b.String()
}

func cleanRut(rut string) string {
	var b strings.Builder
	for _, ch := range strings.ToUpper(rut) {
		if (ch >= '0' && ch <= '9') || ch == 'K' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// CalculateAge entrega la edad en años cumplidos a la fecha de referencia.
func CalculateAge(birthDate, referenceDate time.Time) int {
	years := referenceDate.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(referenceDate) {
		years--
	}
	return years
}

// CalculateEndDate entrega el día en que el jugador queda libre, exclusivo.
// Una "fecha" de castigo equivale a una semana de calendario (una ronda).
func CalculateEndDate(startDate time.Time, duration int, unit models.SuspensionUnit) time.Time {
	switch unit {
	case models.SuspensionDays:
		return startDate.AddDate(0, 0, duration)
	case models.SuspensionDates:
		return startDate.AddDate(0, 0, duration*7)
	case models.SuspensionMonths:
		return startDate.AddDate(0, duration, 0)
	default:
		return startDate
	}
}
