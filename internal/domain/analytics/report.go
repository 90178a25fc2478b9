package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// Input datos ya cargados y validados para un reporte.
type Input struct {
	Store     entity.Store
	Orders    []*entity.Order
	Costs     []entity.ProductCostRecord
	Expenses  []*entity.OperationalExpense
	Marketing MarketingData
	Window    Window
}

// Options parámetros de presentación y zona horaria.
type Options struct {
	OffsetHours   int
	TopProducts   int
	PendingLimit  int
	ReturnedLimit int
}

// Totals totales del período sobre el flujo realizado (días por fecha de entrega).
type Totals struct {
	Orders        int
	Revenue       decimal.Decimal
	Cost          decimal.Decimal
	Advertising   decimal.Decimal
	Tax           decimal.Decimal
	Commission    decimal.Decimal
	Delivery      decimal.Decimal
	Operational   decimal.Decimal
	Profit        decimal.Decimal
	AvgOrderValue decimal.Decimal
}

// PendingSummary pedidos abiertos creados en el período.
type PendingSummary struct {
	Count       int
	TotalAmount decimal.Decimal
	Orders      []*entity.Order // recortado a PendingLimit
}

// Report resultado completo del motor.
type Report struct {
	Store           entity.Store
	Window          Window
	Totals          Totals
	Sources         SourceSplit
	Pending         PendingSummary
	Daily           []*DailyBucket
	DailyByCreation []*DailyBucket
	TopProducts     []ProductRollup
	OrdersByStatus  map[string]int
	Returned        []*entity.Order
	DeliveryModes   map[string]int
	DeliveryCities  map[string]int
	Marketing       MarketingData
	Expenses        []*entity.OperationalExpense
	UnallocatedOpex decimal.Decimal
}

// Assemble ejecuta el motor completo: pliegues, gastos, publicidad, ranking y desgloses.
// Es una función pura: mismas entradas, mismo reporte.
func Assemble(in Input, opt Options) *Report {
	eng := Engine{
		Lookup:      NewLookup(in.Costs),
		Rates:       Rates{Commission: in.Store.CommissionRate, Tax: in.Store.TaxRate},
		Window:      in.Window,
		OffsetHours: opt.OffsetHours,
	}

	byCompletion, sales := eng.FoldByCompletion(in.Orders)
	byCreation := eng.FoldByCreation(in.Orders)

	rates := DailyRates(in.Expenses)
	rates.ApplyToBuckets(in.Window, byCompletion, byCreation)
	ApplyDailyProductOpex(rates, byCompletion, eng.Lookup)
	ApplyDailyProductOpex(rates, byCreation, eng.Lookup)

	DistributeAdSpend(byCompletion, in.Marketing.TotalCost)

	fulfilled := eng.FulfilledOrders(in.Orders)
	created := eng.CreatedOrders(in.Orders)

	productRevenue := make(map[string]decimal.Decimal, len(sales))
	for code, s := range sales {
		productRevenue[code] = s.Revenue
	}
	opex := AllocatePeriod(rates, in.Window, productRevenue, eng.Lookup)

	daily := byCompletion.Sorted()
	totals := sumTotals(daily)

	rep := &Report{
		Store:           in.Store,
		Window:          in.Window,
		Totals:          totals,
		Sources:         AttributeOrders(fulfilled, in.Marketing.SKUAdCost, in.Marketing.TotalTransactions),
		Pending:         pendingSummary(created, opt.PendingLimit),
		Daily:           daily,
		DailyByCreation: byCreation.Sorted(),
		OrdersByStatus:  CountByStatus(created),
		Returned:        RecentOrders(created, (*entity.Order).IsReturned, opt.ReturnedLimit),
		DeliveryModes:   CountDeliveryModes(fulfilled),
		DeliveryCities:  CountCities(fulfilled),
		Marketing:       in.Marketing,
		Expenses:        in.Expenses,
		UnallocatedOpex: opex.Unallocated,
	}
	rep.TopProducts = RankProducts(RankInput{
		Sales:         sales,
		Rates:         eng.Rates,
		TotalDelivery: totals.Delivery,
		SKUAdCost:     in.Marketing.SKUAdCost,
		Opex:          opex,
		Lookup:        eng.Lookup,
		TopN:          opt.TopProducts,
	})
	return rep
}

func sumTotals(days []*DailyBucket) Totals {
	var t Totals
	for _, b := range days {
		t.Orders += b.OrdersCount
		t.Revenue = t.Revenue.Add(b.Revenue)
		t.Cost = t.Cost.Add(b.CostOfGoods)
		t.Advertising = t.Advertising.Add(b.AdvertisingSpend)
		t.Tax = t.Tax.Add(b.Tax)
		t.Commission = t.Commission.Add(b.Commission)
		t.Delivery = t.Delivery.Add(b.Delivery)
		t.Operational = t.Operational.Add(b.OperationalExpense)
		t.Profit = t.Profit.Add(b.Profit)
	}
	if t.Orders > 0 {
		t.AvgOrderValue = t.Revenue.Div(decimal.NewFromInt(int64(t.Orders)))
	}
	return t
}

func pendingSummary(created []*entity.Order, limit int) PendingSummary {
	var p PendingSummary
	for _, o := range created {
		if o.IsUnfulfilled() {
			p.Count++
			p.TotalAmount = p.TotalAmount.Add(o.TotalAmount)
		}
	}
	p.Orders = RecentOrders(created, (*entity.Order).IsUnfulfilled, limit)
	return p
}
