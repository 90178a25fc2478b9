package entity

import "github.com/shopspring/decimal"

// ProductCostRecord fila del catálogo de costos, indexada por el código externo del producto.
// CostPrice y ProductGroup son opcionales: un catálogo incompleto es válido.
type ProductCostRecord struct {
	Code         string
	Name         string
	CostPrice    *decimal.Decimal
	ProductGroup *string
}
