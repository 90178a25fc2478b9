package entity

import "github.com/shopspring/decimal"

// MarketingCampaign métricas agregadas de una campaña publicitaria del marketplace.
type MarketingCampaign struct {
	ID           string
	Name         string
	State        string
	Cost         decimal.Decimal
	Views        int64
	Clicks       int64
	Transactions int64
	GMV          decimal.Decimal
}

// CampaignLine gasto de una campaña atribuido a un SKU concreto.
type CampaignLine struct {
	SKU  string
	Cost decimal.Decimal
}
