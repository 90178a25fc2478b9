package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTopProducts tamaño por defecto del ranking.
const DefaultTopProducts = 20

// ProductRollup cascada de rentabilidad de un producto en el período.
type ProductRollup struct {
	Code        string
	Name        string
	Group       string
	Units       decimal.Decimal
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
	Commission  decimal.Decimal
	Tax         decimal.Decimal
	Delivery    decimal.Decimal
	Advertising decimal.Decimal
	Operational decimal.Decimal
	Profit      decimal.Decimal
	Margin      decimal.Decimal // porcentaje
}

// RankInput insumos del ranking de productos.
type RankInput struct {
	Sales         map[string]*ProductSales
	Rates         Rates
	TotalDelivery decimal.Decimal
	SKUAdCost     map[string]decimal.Decimal
	Opex          ProductOpex
	Lookup        Lookup
	TopN          int
}

// RankProducts calcula la cascada por producto vendido y ordena por ingreso descendente
// (empate por código ascendente). El envío se reparte por participación en el ingreso de productos.
func RankProducts(in RankInput) []ProductRollup {
	totalRevenue := decimal.Zero
	for _, s := range in.Sales {
		totalRevenue = totalRevenue.Add(s.Revenue)
	}

	out := make([]ProductRollup, 0, len(in.Sales))
	for code, s := range in.Sales {
		share := decimal.Zero
		if totalRevenue.IsPositive() {
			share = s.Revenue.Div(totalRevenue)
		}
		name := s.Name
		if name == "" {
			name = in.Lookup.Name(code)
		}
		r := ProductRollup{
			Code:        code,
			Name:        name,
			Group:       in.Lookup.Group(code),
			Units:       s.Qty,
			Revenue:     s.Revenue,
			Cost:        s.Cost,
			Commission:  in.Rates.CommissionOf(s.Revenue),
			Tax:         in.Rates.TaxOf(s.Revenue),
			Delivery:    in.TotalDelivery.Mul(share),
			Advertising: in.SKUAdCost[code],
			Operational: in.Opex.Of(code),
		}
		r.Profit = r.Revenue.Sub(r.Cost).Sub(r.Commission).Sub(r.Tax).
			Sub(r.Delivery).Sub(r.Advertising).Sub(r.Operational)
		if !r.Revenue.IsZero() {
			r.Margin = r.Profit.Div(r.Revenue).Mul(hundred)
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Code < out[j].Code
	})

	topN := in.TopN
	if topN <= 0 {
		topN = DefaultTopProducts
	}
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
