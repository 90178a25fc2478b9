package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo persistencia de gastos operativos.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// ListOverlapping gastos cuyo rango [start_date, end_date] se cruza con [from, to].
// Se devuelven tal cual; la validación de alcance la hace el caso de uso.
func (r *ExpenseRepo) ListOverlapping(ctx context.Context, storeID string, from, to time.Time) ([]*entity.OperationalExpense, error) {
	const query = `
	SELECT id, store_id, name, amount, start_date, end_date,
	       NULLIF(TRIM(product_id), ''), NULLIF(TRIM(product_group), ''), created_at
	FROM operational_expenses
	WHERE store_id = $1
	  AND start_date <= $3
	  AND end_date   >= $2
	ORDER BY start_date, id`

	rows, err := r.q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("operational_expenses.ListOverlapping: %w", err)
	}
	defer rows.Close()

	var out []*entity.OperationalExpense
	for rows.Next() {
		var e entity.OperationalExpense
		if err := rows.Scan(
			&e.ID, &e.StoreID, &e.Name, &e.Amount, &e.StartDate, &e.EndDate,
			&e.ProductID, &e.ProductGroup, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("operational_expenses.ListOverlapping scan: %w", err)
		}
		e.StartDate = calendarDate(e.StartDate)
		e.EndDate = calendarDate(e.EndDate)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("operational_expenses.ListOverlapping rows: %w", err)
	}
	return out, nil
}

// Create inserta un gasto (lo usa el importador CSV).
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.OperationalExpense) error {
	const query = `
	INSERT INTO operational_expenses (id, store_id, name, amount, start_date, end_date, product_id, product_group, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.q.Exec(ctx, query,
		e.ID, e.StoreID, e.Name, e.Amount, e.StartDate, e.EndDate, e.ProductID, e.ProductGroup, e.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isCheckViolation(err):
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("operational_expenses.Create: %w", err)
	}
	return nil
}

// calendarDate normaliza un DATE de PostgreSQL a medianoche UTC.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
