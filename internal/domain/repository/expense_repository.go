package repository

import (
	"context"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// ExpenseRepository puerto de persistencia de gastos operativos.
type ExpenseRepository interface {
	// ListOverlapping devuelve los gastos cuyo rango [start, end] se cruza con [from, to].
	ListOverlapping(ctx context.Context, storeID string, from, to time.Time) ([]*entity.OperationalExpense, error)
	Create(ctx context.Context, expense *entity.OperationalExpense) error
}
