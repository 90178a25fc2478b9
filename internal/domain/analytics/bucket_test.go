package analytics_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/analytics"
)

func TestBucketKey_CruceDeMedianocheLocal(t *testing.T) {
	assert.Equal(t, "2026-01-16", analytics.BucketKey(ts(t, "2026-01-15T20:05:00Z"), testOffset))
	assert.Equal(t, "2026-01-15", analytics.BucketKey(ts(t, "2026-01-15T18:59:59Z"), testOffset))
	assert.Equal(t, "2026-01-16", analytics.BucketKey(ts(t, "2026-01-15T19:00:00Z"), testOffset))
}

func TestBucketKey_InstanteConZonaSeNormalizaAUTC(t *testing.T) {
	// 01:30 en +05:00 es 20:30Z del día anterior -> mismo día local
	assert.Equal(t, "2026-03-10", analytics.BucketKey(ts(t, "2026-03-10T01:30:00+05:00"), testOffset))
	assert.Equal(t, "2026-03-09", analytics.BucketKey(ts(t, "2026-03-10T01:30:00+05:00"), 0))
}

func TestNewWindow_Validaciones(t *testing.T) {
	_, err := analytics.NewWindow("2026-02-10", "2026-02-01")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = analytics.NewWindow("10.02.2026", "2026-02-11")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	w, err := analytics.NewWindow("2026-02-01", "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, 1, w.Days())
}

func TestWindow_DiasClavesYContiene(t *testing.T) {
	w := window(t, "2026-02-27", "2026-03-02")

	assert.Equal(t, 4, w.Days())
	assert.Equal(t, []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}, w.Keys())
	assert.True(t, w.Contains("2026-02-27"))
	assert.True(t, w.Contains("2026-03-02"))
	assert.False(t, w.Contains("2026-02-26"))
	assert.False(t, w.Contains("2026-03-03"))
}

func TestWindow_BoundsDesplazaPorZona(t *testing.T) {
	w := window(t, "2026-02-01", "2026-02-02")
	from, to := w.Bounds(testOffset)

	assert.True(t, ts(t, "2026-01-31T19:00:00Z").Equal(from), from)
	assert.True(t, ts(t, "2026-02-02T19:00:00Z").Equal(to), to)
}
