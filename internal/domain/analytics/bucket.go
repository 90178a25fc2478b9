package analytics

import (
	"fmt"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain"
)

// DateLayout formato de las claves de día (fecha local del negocio).
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// BucketKey convierte un instante absoluto en la fecha local del negocio.
// Se suma el desfase fijo al instante UTC antes de truncar al día: 2026-01-15T20:05Z con +5h es 2026-01-16.
func BucketKey(t time.Time, offsetHours int) string {
	return t.UTC().Add(time.Duration(offsetHours) * time.Hour).Format(DateLayout)
}

// Window rango inclusivo de fechas de calendario [From, To] (medianoche UTC, sin zona).
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow valida y construye la ventana a partir de fechas YYYY-MM-DD.
func NewWindow(from, to string) (Window, error) {
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return Window{}, fmt.Errorf("%w: dateFrom inválido (YYYY-MM-DD): %s", domain.ErrInvalidInput, from)
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return Window{}, fmt.Errorf("%w: dateTo inválido (YYYY-MM-DD): %s", domain.ErrInvalidInput, to)
	}
	if t.Before(f) {
		return Window{}, fmt.Errorf("%w: dateFrom posterior a dateTo", domain.ErrInvalidInput)
	}
	return Window{From: f, To: t}, nil
}

// Days cantidad de días de la ventana (≥ 1).
func (w Window) Days() int {
	return int(w.To.Sub(w.From)/day) + 1
}

// FromKey / ToKey extremos de la ventana como claves de día.
func (w Window) FromKey() string { return w.From.Format(DateLayout) }
func (w Window) ToKey() string   { return w.To.Format(DateLayout) }

// Contains indica si la clave de día cae dentro de la ventana (comparación lexicográfica ISO).
func (w Window) Contains(key string) bool {
	return key >= w.FromKey() && key <= w.ToKey()
}

// Keys todas las claves de día de la ventana en orden ascendente.
func (w Window) Keys() []string {
	keys := make([]string, 0, w.Days())
	for d := w.From; !d.After(w.To); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(DateLayout))
	}
	return keys
}

// Bounds instantes UTC [desde, hasta) que cubren la ventana en la zona del negocio.
// Se usa para acotar la consulta de pedidos.
func (w Window) Bounds(offsetHours int) (time.Time, time.Time) {
	off := time.Duration(offsetHours) * time.Hour
	return w.From.Add(-off), w.To.Add(day - off)
}
