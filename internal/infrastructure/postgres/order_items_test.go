package postgres_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/infrastructure/postgres"
)

func TestParseOrderItems_FormatoActual(t *testing.T) {
	raw := []byte(`[
		{"productCode":"P1","productName":"Чайник","quantity":2,"unitPrice":1500,"lineTotal":3000},
		{"productCode":"P2","productName":"Кружка","quantity":1,"unitPrice":700.5,"lineTotal":700.5}
	]`)

	items, err := postgres.ParseOrderItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "P1", items[0].ProductCode)
	assert.Equal(t, "Чайник", items[0].ProductName)
	assert.True(t, decimal.NewFromInt(2).Equal(items[0].Quantity))
	assert.True(t, decimal.NewFromInt(3000).Equal(items[0].LineTotal))
	assert.True(t, decimal.RequireFromString("700.5").Equal(items[1].UnitPrice))
}

func TestParseOrderItems_ClavesAlternativasYNumerosComoString(t *testing.T) {
	raw := []byte(`[
		{"sku":123456,"name":"Тарелка","qty":"3","basePrice":"250"},
		{"code":"X-9","name":null,"quantity":1,"price":100,"totalPrice":90}
	]`)

	items, err := postgres.ParseOrderItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "123456", items[0].ProductCode)
	assert.True(t, decimal.NewFromInt(750).Equal(items[0].LineTotal), "sin lineTotal: qty × precio")
	assert.Equal(t, "", items[1].ProductName)
	assert.True(t, decimal.NewFromInt(90).Equal(items[1].LineTotal))
}

func TestParseOrderItems_VacioONull(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("null"), []byte("[]")} {
		items, err := postgres.ParseOrderItems(raw)
		require.NoError(t, err)
		assert.Empty(t, items)
	}
}

func TestParseOrderItems_Ilegible(t *testing.T) {
	cases := map[string]string{
		"no es arreglo":      `{"productCode":"P1"}`,
		"json roto":          `[{"productCode":"P1",`,
		"sin código":         `[{"name":"x","quantity":1}]`,
		"cantidad no número": `[{"code":"P1","quantity":"dos"}]`,
		"elemento nulo":      `[null]`,
		"código objeto":      `[{"code":{"id":1}}]`,
	}
	for name, raw := range cases {
		_, err := postgres.ParseOrderItems([]byte(raw))
		assert.Error(t, err, name)
	}
}
