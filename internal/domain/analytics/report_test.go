package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/domain/analytics"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

var testOptions = analytics.Options{OffsetHours: testOffset, TopProducts: 20, PendingLimit: 10, ReturnedLimit: 10}

func testStore() entity.Store {
	return entity.Store{ID: "store-1", Name: "Tienda", CommissionRate: dec("10"), TaxRate: dec("4")}
}

// Escenario de referencia: 10000 el día 1 y 5000 que cruza al día 2 local.
func TestAssemble_EscenarioDosPedidos(t *testing.T) {
	rep := analytics.Assemble(analytics.Input{
		Store: testStore(),
		Orders: []*entity.Order{
			completedOrder(t, "A", "10000", "2026-02-01T10:00:00Z"),
			completedOrder(t, "B", "5000", "2026-02-01T21:00:00Z"),
		},
		Window: window(t, "2026-02-01", "2026-02-02"),
	}, testOptions)

	require.Len(t, rep.Daily, 2)
	assertDec(t, "8600", rep.Daily[0].Profit)
	assertDec(t, "4300", rep.Daily[1].Profit)
	assertDec(t, "12900", rep.Totals.Profit)
	assert.Equal(t, 2, rep.Totals.Orders)
	assertDec(t, "7500", rep.Totals.AvgOrderValue)
	assert.Equal(t, 2, rep.Sources.Organic+rep.Sources.Ads)
}

func richInput(t *testing.T) analytics.Input {
	cost := dec("400")
	a := completedOrder(t, "A", "3000", "2026-02-01T10:00:00Z", item("P1", "2", "2000"), item("P2", "1", "1000"))
	a.DeliveryCost = dec("200")
	a.DeliveryMode = "DELIVERY_LOCAL"
	a.DeliveryAddress = "г. Алматы, ул. Абая 1"
	b := completedOrder(t, "B", "1000", "2026-02-02T23:30:00Z", item("P3", "1", "1000"))
	b.DeliveryMode = "DELIVERY_POSTOMAT"
	b.DeliveryAddress = "Астана, пр. Мира 2"
	c := completedOrder(t, "C", "700", "2026-02-03T05:00:00Z")
	c.ItemsMalformed = true

	pending := &entity.Order{ID: "N", TotalAmount: dec("550"), Status: entity.OrderStatusNew, CreatedAt: ts(t, "2026-02-03T04:00:00Z"), Items: []entity.OrderLineItem{item("P1", "1", "550")}}
	returned := &entity.Order{ID: "R", TotalAmount: dec("900"), Status: entity.OrderStatusReturned, CreatedAt: ts(t, "2026-02-04T04:00:00Z")}
	cancelled := &entity.Order{ID: "X", TotalAmount: dec("120"), Status: entity.OrderStatusCancelled, CreatedAt: ts(t, "2026-02-02T04:00:00Z")}

	general := &entity.OperationalExpense{ID: "E1", Amount: dec("1000"), StartDate: date(t, "2026-02-01"), EndDate: date(t, "2026-02-04")}
	grupo := &entity.OperationalExpense{ID: "E2", Amount: dec("90"), StartDate: date(t, "2026-02-01"), EndDate: date(t, "2026-02-03"), ProductGroup: strPtr("кухня")}

	return analytics.Input{
		Store:  testStore(),
		Orders: []*entity.Order{a, b, c, pending, returned, cancelled},
		Costs: []entity.ProductCostRecord{
			{Code: "P1", Name: "Чайник", CostPrice: &cost, ProductGroup: strPtr("кухня")},
			{Code: "P2", Name: "Кружка"},
		},
		Expenses: []*entity.OperationalExpense{general, grupo},
		Marketing: analytics.NewMarketingData(
			[]entity.MarketingCampaign{{ID: "c1", Cost: dec("470"), Transactions: 5, GMV: dec("2000")}},
			[]entity.CampaignLine{{SKU: "P3", Cost: dec("470")}},
		),
		Window: window(t, "2026-02-01", "2026-02-04"),
	}
}

func TestAssemble_TotalesIgualesALaSumaDiaria(t *testing.T) {
	rep := analytics.Assemble(richInput(t), testOptions)

	var revenue, cost, commission, tax, delivery, operational, advertising, profit decimal.Decimal
	for _, d := range rep.Daily {
		revenue = revenue.Add(d.Revenue)
		cost = cost.Add(d.CostOfGoods)
		commission = commission.Add(d.Commission)
		tax = tax.Add(d.Tax)
		delivery = delivery.Add(d.Delivery)
		operational = operational.Add(d.OperationalExpense)
		advertising = advertising.Add(d.AdvertisingSpend)
		profit = profit.Add(d.Profit)
	}
	assert.True(t, revenue.Equal(rep.Totals.Revenue))
	assert.True(t, cost.Equal(rep.Totals.Cost))
	assert.True(t, commission.Equal(rep.Totals.Commission))
	assert.True(t, tax.Equal(rep.Totals.Tax))
	assert.True(t, delivery.Equal(rep.Totals.Delivery))
	assert.True(t, operational.Equal(rep.Totals.Operational))
	assert.True(t, advertising.Equal(rep.Totals.Advertising))
	assert.True(t, profit.Equal(rep.Totals.Profit))

	assertDec(t, "4700", rep.Totals.Revenue)
	assertDec(t, "800", rep.Totals.Cost)
	assertDec(t, "1090", rep.Totals.Operational.Round(2))
	assertDec(t, "470", rep.Totals.Advertising)
	// 4700 - 800 - 470 - 188 - 200 - 1090 - 470
	assertDec(t, "1482", rep.Totals.Profit.Round(2))
}

func TestAssemble_DesglosesYListas(t *testing.T) {
	rep := analytics.Assemble(richInput(t), testOptions)

	assert.Equal(t, 3, rep.Totals.Orders)
	assert.Equal(t, 1, rep.Sources.Ads, "B contiene el SKU P3 de la campaña")
	assert.Equal(t, 2, rep.Sources.Organic)

	assert.Equal(t, 1, rep.Pending.Count)
	assertDec(t, "550", rep.Pending.TotalAmount)
	require.Len(t, rep.Pending.Orders, 1)
	assert.Equal(t, "N", rep.Pending.Orders[0].ID)

	require.Len(t, rep.Returned, 1)
	assert.Equal(t, "R", rep.Returned[0].ID)

	assert.Equal(t, 1, rep.OrdersByStatus["returned"])
	assert.Equal(t, 1, rep.OrdersByStatus["cancelled"])
	assert.Equal(t, 1, rep.OrdersByStatus["pending"])
	assert.Equal(t, 3, rep.OrdersByStatus["delivered"])

	assert.Equal(t, 1, rep.DeliveryModes["local"])
	assert.Equal(t, 1, rep.DeliveryModes["postomat"])
	assert.Equal(t, 1, rep.DeliveryModes["other"])
	assert.Equal(t, map[string]int{"Алматы": 1, "Астана": 1}, rep.DeliveryCities)

	require.Len(t, rep.TopProducts, 3)
	assert.Equal(t, "P1", rep.TopProducts[0].Code)
	assertDec(t, "470", rep.TopProducts[2].Advertising)
}

func TestAssemble_DiaSoloDevolucionEnCreacion(t *testing.T) {
	rep := analytics.Assemble(richInput(t), testOptions)

	var found *analytics.DailyBucket
	for _, d := range rep.DailyByCreation {
		if d.Date == "2026-02-04" {
			found = d
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 0, found.OrdersCount)
	assertDec(t, "0", found.Revenue)
	assert.Equal(t, 1, found.ReturnedCount)
}

func TestAssemble_Idempotente(t *testing.T) {
	in := richInput(t)
	first := analytics.Assemble(in, testOptions)
	second := analytics.Assemble(in, testOptions)

	assert.Equal(t, first, second)
}
