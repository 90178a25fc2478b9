package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// MarketingData datos de publicidad ya obtenidos (la carga con I/O vive en la capa de aplicación).
type MarketingData struct {
	Campaigns         []entity.MarketingCampaign
	TotalCost         decimal.Decimal
	TotalTransactions int64
	TotalGMV          decimal.Decimal
	SKUAdCost         map[string]decimal.Decimal
}

// NewMarketingData calcula los totales de las campañas y suma las líneas por SKU.
func NewMarketingData(campaigns []entity.MarketingCampaign, lines []entity.CampaignLine) MarketingData {
	m := MarketingData{
		Campaigns: campaigns,
		SKUAdCost: make(map[string]decimal.Decimal),
	}
	for _, c := range campaigns {
		m.TotalCost = m.TotalCost.Add(c.Cost)
		m.TotalTransactions += c.Transactions
		m.TotalGMV = m.TotalGMV.Add(c.GMV)
	}
	for _, l := range lines {
		if l.SKU == "" {
			continue
		}
		m.SKUAdCost[l.SKU] = m.SKUAdCost[l.SKU].Add(l.Cost)
	}
	return m
}

// ROAS retorno de la inversión publicitaria (GMV / costo); 0 sin gasto.
func (m MarketingData) ROAS() decimal.Decimal {
	if !m.TotalCost.IsPositive() {
		return decimal.Zero
	}
	return m.TotalGMV.Div(m.TotalCost)
}

// AdCost gasto publicitario atribuido al SKU; 0 si no aparece en campañas.
func (m MarketingData) AdCost(sku string) decimal.Decimal {
	return m.SKUAdCost[sku]
}

// DistributeAdSpend reparte totalCost entre los días según su participación en el ingreso realizado
// y lo descuenta de la utilidad. Sin ingresos no se asigna nada. Devuelve lo asignado.
func DistributeAdSpend(bs Buckets, totalCost decimal.Decimal) decimal.Decimal {
	if !totalCost.IsPositive() {
		return decimal.Zero
	}
	shares, _ := SplitByRevenue(totalCost, bs.Revenue())
	if len(shares) == 0 {
		// ningún día con ingreso positivo
		return decimal.Zero
	}
	allocated := decimal.Zero
	for key, v := range shares {
		bs[key].AddAdvertising(v)
		allocated = allocated.Add(v)
	}
	return allocated
}

// SourceSplit origen de los pedidos realizados. Offline siempre es 0: el feed solo trae pedidos del marketplace.
type SourceSplit struct {
	Organic int
	Ads     int
	Offline int
}

// AttributeOrders clasifica pedidos como orgánicos o publicitarios.
// Primero por coincidencia de SKU; si no hay coincidencias y las campañas reportan transacciones,
// ads = min(transacciones, pedidos). Es una aproximación, no atribución exacta por pedido.
func AttributeOrders(orders []*entity.Order, skuAdCost map[string]decimal.Decimal, totalTransactions int64) SourceSplit {
	total := len(orders)
	ads := 0
	if len(skuAdCost) > 0 {
		for _, o := range orders {
			if orderHasAdSKU(o, skuAdCost) {
				ads++
			}
		}
	}
	if ads == 0 && totalTransactions > 0 {
		ads = total
		if totalTransactions < int64(total) {
			ads = int(totalTransactions)
		}
	}
	return SourceSplit{Organic: total - ads, Ads: ads}
}

func orderHasAdSKU(o *entity.Order, skuAdCost map[string]decimal.Decimal) bool {
	for _, it := range o.Items {
		if _, ok := skuAdCost[it.ProductCode]; ok {
			return true
		}
	}
	return false
}
