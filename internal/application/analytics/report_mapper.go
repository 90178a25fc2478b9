package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/domain/analytics"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// Abreviaturas de día de la semana del storefront (indexadas por time.Weekday).
var weekdayAbbrev = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// money redondea a 2 decimales; solo se redondea aquí, en el borde de la respuesta.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func toReportDTO(rep *analytics.Report, reportID string, offsetHours int) *dto.ReportDTO {
	daily := toDailyData(rep.Daily)
	out := &dto.ReportDTO{
		Success:  true,
		ReportID: reportID,
		Period:   dto.PeriodDTO{DateFrom: rep.Window.FromKey(), DateTo: rep.Window.ToKey()},

		OrdersBySource: dto.OrdersBySourceDTO{
			Organic: rep.Sources.Organic,
			Ads:     rep.Sources.Ads,
			Offline: rep.Sources.Offline,
		},
		PendingOrders: dto.PendingOrdersDTO{
			Count:       rep.Pending.Count,
			TotalAmount: money(rep.Pending.TotalAmount),
			Orders:      toOrderBriefs(rep.Pending.Orders, offsetHours),
		},
		DailyData:           daily,
		DailyDataByCreation: toDailyData(rep.DailyByCreation),
		TopProducts:         toTopProducts(rep.TopProducts),
		OrdersByStatus:      rep.OrdersByStatus,
		ReturnedOrders:      toOrderBriefs(rep.Returned, offsetHours),
		DeliveryModes:       rep.DeliveryModes,
		DeliveryCities:      rep.DeliveryCities,
		Marketing:           toMarketing(rep.Marketing),
		StoreSettings: dto.StoreSettingsDTO{
			CommissionRate: rep.Store.CommissionRate,
			TaxRate:        rep.Store.TaxRate,
		},
		OperationalExpenses: toExpenses(rep.Expenses),
	}
	fillTotals(out, daily)
	return out
}

// fillTotals suma los días ya redondeados: los totales coinciden con la suma visible de dailyData.
func fillTotals(out *dto.ReportDTO, daily []dto.DailyDataDTO) {
	for _, d := range daily {
		out.TotalOrders += d.Orders
		out.TotalRevenue = out.TotalRevenue.Add(d.Revenue)
		out.TotalCost = out.TotalCost.Add(d.Cost)
		out.TotalAdvertising = out.TotalAdvertising.Add(d.Advertising)
		out.TotalTax = out.TotalTax.Add(d.Tax)
		out.TotalCommissions = out.TotalCommissions.Add(d.Commissions)
		out.TotalDelivery = out.TotalDelivery.Add(d.Delivery)
		out.TotalOperational = out.TotalOperational.Add(d.Operational)
		out.TotalProfit = out.TotalProfit.Add(d.Profit)
	}
	if out.TotalOrders > 0 {
		out.AvgOrderValue = money(out.TotalRevenue.Div(decimal.NewFromInt(int64(out.TotalOrders))))
	}
}

func toDailyData(days []*analytics.DailyBucket) []dto.DailyDataDTO {
	out := make([]dto.DailyDataDTO, 0, len(days))
	for _, b := range days {
		d, _ := time.Parse(analytics.DateLayout, b.Date)
		row := dto.DailyDataDTO{
			Date:        d.Format("02.01"),
			FullDate:    b.Date,
			Day:         weekdayAbbrev[d.Weekday()],
			Orders:      b.OrdersCount,
			Revenue:     money(b.Revenue),
			Cost:        money(b.CostOfGoods),
			Advertising: money(b.AdvertisingSpend),
			Commissions: money(b.Commission),
			Tax:         money(b.Tax),
			Delivery:    money(b.Delivery),
			Operational: money(b.OperationalExpense),
			Profit:      money(b.Profit),
			Products:    make([]dto.DailyProductDTO, 0, len(b.Products)),
		}
		if b.ReturnedCount > 0 {
			n := b.ReturnedCount
			row.Returned = &n
		}
		for _, p := range b.SortedProducts() {
			row.Products = append(row.Products, dto.DailyProductDTO{
				Code:        p.Code,
				Name:        p.Name,
				Qty:         p.Qty,
				Revenue:     money(p.Revenue),
				CostPrice:   money(p.UnitCost),
				Operational: money(p.Operational),
			})
		}
		out = append(out, row)
	}
	return out
}

func toTopProducts(rows []analytics.ProductRollup) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		var group *string
		if r.Group != "" {
			g := r.Group
			group = &g
		}
		out = append(out, dto.TopProductDTO{
			ID:          r.Code,
			Name:        r.Name,
			SKU:         r.Code,
			Sales:       r.Units,
			Revenue:     money(r.Revenue),
			Cost:        money(r.Cost),
			Commission:  money(r.Commission),
			Tax:         money(r.Tax),
			Delivery:    money(r.Delivery),
			Advertising: money(r.Advertising),
			Operational: money(r.Operational),
			Profit:      money(r.Profit),
			Margin:      r.Margin.Round(2),
			Group:       group,
		})
	}
	return out
}

func toOrderBriefs(orders []*entity.Order, offsetHours int) []dto.OrderBriefDTO {
	out := make([]dto.OrderBriefDTO, 0, len(orders))
	for _, o := range orders {
		id := o.Code
		if id == "" {
			id = o.ID
		}
		out = append(out, dto.OrderBriefDTO{
			ID:       id,
			Product:  o.FirstProductName(),
			Amount:   money(o.TotalAmount),
			Date:     analytics.BucketKey(o.CreatedAt, offsetHours),
			Customer: o.CustomerName,
		})
	}
	return out
}

func toMarketing(m analytics.MarketingData) dto.MarketingDTO {
	out := dto.MarketingDTO{
		TotalCost: money(m.TotalCost),
		TotalGMV:  money(m.TotalGMV),
		ROAS:      m.ROAS().Round(2),
		Campaigns: make([]dto.CampaignDTO, 0, len(m.Campaigns)),
	}
	for _, c := range m.Campaigns {
		out.Campaigns = append(out.Campaigns, dto.CampaignDTO{
			ID:           c.ID,
			Name:         c.Name,
			State:        c.State,
			Cost:         money(c.Cost),
			Views:        c.Views,
			Clicks:       c.Clicks,
			Transactions: c.Transactions,
			GMV:          money(c.GMV),
		})
	}
	return out
}

func toExpenses(rows []*entity.OperationalExpense) []dto.OperationalExpenseDTO {
	out := make([]dto.OperationalExpenseDTO, 0, len(rows))
	for _, e := range rows {
		out = append(out, dto.OperationalExpenseDTO{
			ID:           e.ID,
			Name:         e.Name,
			Amount:       money(e.Amount),
			StartDate:    e.StartDate.Format(analytics.DateLayout),
			EndDate:      e.EndDate.Format(analytics.DateLayout),
			ProductID:    e.ProductID,
			ProductGroup: e.ProductGroup,
		})
	}
	return out
}
