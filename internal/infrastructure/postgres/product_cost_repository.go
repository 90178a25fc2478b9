package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/repository"
)

var _ repository.ProductCostRepository = (*ProductCostRepo)(nil)

// ProductCostRepo catálogo de costos por tienda (snapshot completo por request).
type ProductCostRepo struct {
	q Querier
}

// NewProductCostRepository construye el adaptador.
func NewProductCostRepository(q Querier) *ProductCostRepo {
	return &ProductCostRepo{q: q}
}

// ListByStore devuelve todas las filas del catálogo; costo y grupo pueden venir NULL.
func (r *ProductCostRepo) ListByStore(ctx context.Context, storeID string) ([]entity.ProductCostRecord, error) {
	const query = `
	SELECT external_id, COALESCE(name, ''), cost_price, NULLIF(TRIM(product_group), '')
	FROM product_costs
	WHERE store_id = $1`

	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("product_costs.ListByStore: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductCostRecord
	for rows.Next() {
		var rec entity.ProductCostRecord
		if err := rows.Scan(&rec.Code, &rec.Name, &rec.CostPrice, &rec.ProductGroup); err != nil {
			return nil, fmt.Errorf("product_costs.ListByStore scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product_costs.ListByStore rows: %w", err)
	}
	return out, nil
}
