package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Alcances de atribución de un gasto operativo.
const (
	ExpenseScopeGeneral = "general"
	ExpenseScopeGroup   = "group"
	ExpenseScopeProduct = "product"
)

// OperationalExpense gasto operativo de monto fijo repartido en un rango de fechas inclusivo.
// Como máximo uno de ProductID / ProductGroup puede estar definido; ninguno = gasto general.
type OperationalExpense struct {
	ID           string
	StoreID      string
	Name         string
	Amount       decimal.Decimal
	StartDate    time.Time // fecha de calendario (UTC, 00:00)
	EndDate      time.Time // inclusiva
	ProductID    *string
	ProductGroup *string
	CreatedAt    time.Time
}

// Scope devuelve el nivel de atribución del gasto.
func (e *OperationalExpense) Scope() string {
	switch {
	case e.ProductID != nil && *e.ProductID != "":
		return ExpenseScopeProduct
	case e.ProductGroup != nil && *e.ProductGroup != "":
		return ExpenseScopeGroup
	default:
		return ExpenseScopeGeneral
	}
}

// Validate verifica las invariantes del gasto antes de entregarlo al motor.
func (e *OperationalExpense) Validate() error {
	if e.ProductID != nil && *e.ProductID != "" && e.ProductGroup != nil && *e.ProductGroup != "" {
		return fmt.Errorf("gasto %s: productId y productGroup son excluyentes", e.ID)
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("gasto %s: endDate anterior a startDate", e.ID)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("gasto %s: monto negativo", e.ID)
	}
	return nil
}
