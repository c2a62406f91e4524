// Package formvalue convierte campos de formulario de forma permisiva:
// un valor vacío o inválido se transforma en nil y nunca bloquea el envío.
package formvalue

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout es el formato de fecha de los formularios (YYYY-MM-DD).
const DateLayout = "2006-01-02"

func Int(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func Float(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Date devuelve la fecha a medianoche UTC.
func Date(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

func Text(raw string) string {
	return strings.TrimSpace(raw)
}

// Day trunca t a su fecha de calendario (medianoche UTC), en la zona de t.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
