package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// Lookup tablas por código externo de producto: costo unitario, grupo y nombre.
// Una clave ausente no es error: costo 0, sin grupo.
type Lookup struct {
	cost  map[string]decimal.Decimal
	group map[string]string
	name  map[string]string
}

// NewLookup construye las tablas desde el snapshot del catálogo.
func NewLookup(records []entity.ProductCostRecord) Lookup {
	l := Lookup{
		cost:  make(map[string]decimal.Decimal, len(records)),
		group: make(map[string]string, len(records)),
		name:  make(map[string]string, len(records)),
	}
	for _, r := range records {
		if r.Code == "" {
			continue
		}
		if r.CostPrice != nil {
			l.cost[r.Code] = *r.CostPrice
		}
		if r.ProductGroup != nil && *r.ProductGroup != "" {
			l.group[r.Code] = *r.ProductGroup
		}
		if r.Name != "" {
			l.name[r.Code] = r.Name
		}
	}
	return l
}

// UnitCost costo unitario del producto; 0 si no está catalogado.
func (l Lookup) UnitCost(code string) decimal.Decimal {
	if c, ok := l.cost[code]; ok {
		return c
	}
	return decimal.Zero
}

// Group grupo del producto; "" = sin grupo.
func (l Lookup) Group(code string) string {
	return l.group[code]
}

// Name nombre de catálogo; "" si no existe.
func (l Lookup) Name(code string) string {
	return l.name[code]
}
