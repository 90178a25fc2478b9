package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo lectura de pedidos sincronizados desde el marketplace.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// ListForPeriod pedidos creados o completados en [from, to).
// La columna items (jsonb) se valida aquí: el motor solo recibe ítems tipados.
func (r *OrderRepo) ListForPeriod(ctx context.Context, storeID string, from, to time.Time) ([]*entity.Order, error) {
	const query = `
	SELECT
	    id, store_id, COALESCE(code, ''), total_amount, status, created_at, completed_at,
	    COALESCE(delivery_cost, 0), COALESCE(delivery_mode, ''), COALESCE(delivery_address, ''),
	    COALESCE(customer_name, ''), items
	FROM orders
	WHERE store_id = $1
	  AND (
	        (created_at   >= $2 AND created_at   < $3)
	     OR (completed_at >= $2 AND completed_at < $3)
	  )
	ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("orders.ListForPeriod: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		var (
			o   entity.Order
			raw []byte
		)
		if err := rows.Scan(
			&o.ID, &o.StoreID, &o.Code, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.CompletedAt,
			&o.DeliveryCost, &o.DeliveryMode, &o.DeliveryAddress, &o.CustomerName, &raw,
		); err != nil {
			return nil, fmt.Errorf("orders.ListForPeriod scan: %w", err)
		}
		items, err := ParseOrderItems(raw)
		if err != nil {
			o.ItemsMalformed = true
		} else {
			o.Items = items
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders.ListForPeriod rows: %w", err)
	}
	return out, nil
}
