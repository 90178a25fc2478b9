package repository

import (
	"context"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// ProductCostRepository puerto del catálogo de costos por tienda.
type ProductCostRepository interface {
	ListByStore(ctx context.Context, storeID string) ([]entity.ProductCostRecord, error)
}
