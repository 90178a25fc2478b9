package entity

import "github.com/shopspring/decimal"

// Store representa la tienda de un vendedor en el marketplace (tenant de los reportes).
// CommissionRate y TaxRate se expresan en porcentaje (10 = 10%) y son configuración por tienda.
type Store struct {
	ID             string
	Name           string
	CommissionRate decimal.Decimal
	TaxRate        decimal.Decimal
	MerchantID     string // cuenta del gabinete de publicidad; vacío = sin marketing
}
