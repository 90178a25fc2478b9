package repository

import (
	"context"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// OrderRepository puerto de lectura de pedidos.
type OrderRepository interface {
	// ListForPeriod devuelve los pedidos de la tienda creados O completados en [from, to) (instantes UTC).
	ListForPeriod(ctx context.Context, storeID string, from, to time.Time) ([]*entity.Order, error)
}
