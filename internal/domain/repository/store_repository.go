package repository

import (
	"context"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// StoreRepository define el puerto de lectura de la configuración de tiendas (DIP).
type StoreRepository interface {
	// GetByID devuelve nil, nil si la tienda no existe.
	GetByID(ctx context.Context, id string) (*entity.Store, error)
}
