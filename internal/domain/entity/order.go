package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido del marketplace (enumeración fija).
const (
	OrderStatusNew             = "NEW"
	OrderStatusApproved        = "APPROVED"
	OrderStatusAccepted        = "ACCEPTED"
	OrderStatusAssemble        = "ASSEMBLE"
	OrderStatusDelivery        = "DELIVERY"
	OrderStatusPickup          = "PICKUP"
	OrderStatusCompleted       = "COMPLETED"
	OrderStatusCancelling      = "CANCELLING"
	OrderStatusCancelled       = "CANCELLED"
	OrderStatusReturnRequested = "RETURN_REQUESTED"
	OrderStatusReturned        = "RETURNED"
)

// Grupos de estado usados en ordersByStatus.
const (
	StatusGroupPending    = "pending"
	StatusGroupProcessing = "processing"
	StatusGroupShipped    = "shipped"
	StatusGroupDelivered  = "delivered"
	StatusGroupCancelled  = "cancelled"
	StatusGroupReturned   = "returned"
)

// StatusGroups orden estable de las claves de ordersByStatus.
var StatusGroups = []string{
	StatusGroupPending,
	StatusGroupProcessing,
	StatusGroupShipped,
	StatusGroupDelivered,
	StatusGroupCancelled,
	StatusGroupReturned,
}

var statusGroupByStatus = map[string]string{
	OrderStatusNew:             StatusGroupPending,
	OrderStatusApproved:        StatusGroupPending,
	OrderStatusAccepted:        StatusGroupProcessing,
	OrderStatusAssemble:        StatusGroupProcessing,
	OrderStatusDelivery:        StatusGroupShipped,
	OrderStatusPickup:          StatusGroupShipped,
	OrderStatusCompleted:       StatusGroupDelivered,
	OrderStatusCancelling:      StatusGroupCancelled,
	OrderStatusCancelled:       StatusGroupCancelled,
	OrderStatusReturnRequested: StatusGroupReturned,
	OrderStatusReturned:        StatusGroupReturned,
}

// StatusGroup mapea un estado al grupo de visualización. Estados desconocidos cuentan como pending.
func StatusGroup(status string) string {
	if g, ok := statusGroupByStatus[status]; ok {
		return g
	}
	return StatusGroupPending
}

// OrderLineItem línea de un pedido ya validada por el loader.
type OrderLineItem struct {
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Order snapshot inmutable de un pedido del marketplace.
// CompletedAt solo se llena cuando la entrega fue confirmada.
type Order struct {
	ID              string
	StoreID         string
	Code            string // número de pedido en el marketplace
	TotalAmount     decimal.Decimal
	Status          string // ver constantes OrderStatus*
	CreatedAt       time.Time
	CompletedAt     *time.Time
	DeliveryCost    decimal.Decimal
	DeliveryMode    string
	DeliveryAddress string
	CustomerName    string
	Items           []OrderLineItem
	ItemsMalformed  bool // el loader no pudo interpretar la lista de ítems
}

// IsFulfilled indica si el pedido cuenta para el flujo de caja realizado.
func (o *Order) IsFulfilled() bool {
	return o.Status == OrderStatusCompleted && o.CompletedAt != nil
}

// IsCancelled pedidos cancelados o en cancelación.
func (o *Order) IsCancelled() bool {
	return StatusGroup(o.Status) == StatusGroupCancelled
}

// IsReturned pedidos devueltos o con devolución solicitada.
func (o *Order) IsReturned() bool {
	return StatusGroup(o.Status) == StatusGroupReturned
}

// IsUnfulfilled pedidos aún abiertos: ni completados, ni cancelados, ni devueltos.
func (o *Order) IsUnfulfilled() bool {
	return o.Status != OrderStatusCompleted && !o.IsCancelled() && !o.IsReturned()
}

// FirstProductName nombre del primer ítem (para listados); vacío si no hay ítems.
func (o *Order) FirstProductName() string {
	if len(o.Items) == 0 {
		return ""
	}
	return o.Items[0].ProductName
}
