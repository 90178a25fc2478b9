package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999":        "999",
		"25000":      "25 000",
		"1234567.8":  "1 234 568",
		"-150":       "-150",
		"-1234567.4": "-1 234 567",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateReportPDF_DevuelvePDF(t *testing.T) {
	rep := &dto.ReportDTO{
		Success:      true,
		ReportID:     "7b0c1f9e-0000-4000-8000-000000000001",
		Period:       dto.PeriodDTO{DateFrom: "2026-02-01", DateTo: "2026-02-02"},
		TotalOrders:  2,
		TotalRevenue: decimal.NewFromInt(15000),
		TotalProfit:  decimal.NewFromInt(12900),
		DailyData: []dto.DailyDataDTO{
			{Date: "01.02", FullDate: "2026-02-01", Day: "Sun", Orders: 1, Revenue: decimal.NewFromInt(10000), Profit: decimal.NewFromInt(8600)},
			{Date: "02.02", FullDate: "2026-02-02", Day: "Mon", Orders: 1, Revenue: decimal.NewFromInt(5000), Profit: decimal.NewFromInt(-300)},
		},
		TopProducts: []dto.TopProductDTO{
			{ID: "P1", SKU: "P1", Name: "Tetera", Sales: decimal.NewFromInt(3), Revenue: decimal.NewFromInt(3000), Profit: decimal.NewFromInt(1200), Margin: decimal.NewFromInt(40)},
		},
	}

	out, err := NewMarotoReportGenerator().GenerateReportPDF(context.Background(), "Tienda Demo", rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
