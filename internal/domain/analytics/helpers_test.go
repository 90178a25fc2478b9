package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/domain/analytics"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testOffset = 5

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func tsPtr(t *testing.T, s string) *time.Time {
	v := ts(t, s)
	return &v
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(analytics.DateLayout, s)
	require.NoError(t, err)
	return v
}

func window(t *testing.T, from, to string) analytics.Window {
	t.Helper()
	w, err := analytics.NewWindow(from, to)
	require.NoError(t, err)
	return w
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

func strPtr(s string) *string { return &s }

func completedOrder(t *testing.T, id, amount, completedAt string, items ...entity.OrderLineItem) *entity.Order {
	return &entity.Order{
		ID:          id,
		Code:        "K-" + id,
		TotalAmount: dec(amount),
		Status:      entity.OrderStatusCompleted,
		CreatedAt:   ts(t, completedAt).Add(-2 * time.Hour),
		CompletedAt: tsPtr(t, completedAt),
		Items:       items,
	}
}

func item(code, qty, lineTotal string) entity.OrderLineItem {
	return entity.OrderLineItem{
		ProductCode: code,
		ProductName: "Producto " + code,
		Quantity:    dec(qty),
		UnitPrice:   dec(lineTotal).Div(dec(qty)),
		LineTotal:   dec(lineTotal),
	}
}
