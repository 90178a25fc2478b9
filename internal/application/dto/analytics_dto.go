package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRequest parámetros de GET /api/analytics/report.
type ReportRequest struct {
	StoreID  string `query:"storeId"`
	DateFrom string `query:"dateFrom"` // YYYY-MM-DD; por defecto dateTo - 29 días
	DateTo   string `query:"dateTo"`   // YYYY-MM-DD; por defecto hoy (zona del negocio)
}

// ── Bloques del reporte ───────────────────────────────────────────────────────

// PeriodDTO ventana efectiva del reporte.
type PeriodDTO struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

// OrdersBySourceDTO origen de los pedidos realizados.
type OrdersBySourceDTO struct {
	Organic int `json:"organic"`
	Ads     int `json:"ads"`
	Offline int `json:"offline"`
}

// OrderBriefDTO fila de listados de pedidos (pendientes, devueltos).
type OrderBriefDTO struct {
	ID       string          `json:"id"` // número de pedido del marketplace
	Product  string          `json:"product"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"` // fecha local YYYY-MM-DD
	Customer string          `json:"customer"`
}

// PendingOrdersDTO pedidos abiertos creados en el período.
type PendingOrdersDTO struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Orders      []OrderBriefDTO `json:"orders"`
}

// DailyProductDTO desglose de un producto en un día.
type DailyProductDTO struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Qty         decimal.Decimal `json:"qty"`
	Revenue     decimal.Decimal `json:"revenue"`
	CostPrice   decimal.Decimal `json:"costPrice"` // costo unitario
	Operational decimal.Decimal `json:"operational"`
}

// DailyDataDTO un día del reporte.
type DailyDataDTO struct {
	Date        string            `json:"date"`     // DD.MM
	FullDate    string            `json:"fullDate"` // YYYY-MM-DD
	Day         string            `json:"day"`      // abreviatura del día de la semana
	Orders      int               `json:"orders"`
	Revenue     decimal.Decimal   `json:"revenue"`
	Cost        decimal.Decimal   `json:"cost"`
	Advertising decimal.Decimal   `json:"advertising"`
	Commissions decimal.Decimal   `json:"commissions"`
	Tax         decimal.Decimal   `json:"tax"`
	Delivery    decimal.Decimal   `json:"delivery"`
	Operational decimal.Decimal   `json:"operational"`
	Profit      decimal.Decimal   `json:"profit"`
	Returned    *int              `json:"returned,omitempty"`
	Products    []DailyProductDTO `json:"products"`
}

// TopProductDTO cascada de rentabilidad de un producto.
type TopProductDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Sales       decimal.Decimal `json:"sales"` // unidades
	Revenue     decimal.Decimal `json:"revenue"`
	Cost        decimal.Decimal `json:"cost"`
	Commission  decimal.Decimal `json:"commission"`
	Tax         decimal.Decimal `json:"tax"`
	Delivery    decimal.Decimal `json:"delivery"`
	Advertising decimal.Decimal `json:"advertising"`
	Operational decimal.Decimal `json:"operational"`
	Profit      decimal.Decimal `json:"profit"`
	Margin      decimal.Decimal `json:"margin"` // %
	Group       *string         `json:"group"`
}

// CampaignDTO métricas de una campaña.
type CampaignDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	State        string          `json:"state"`
	Cost         decimal.Decimal `json:"cost"`
	Views        int64           `json:"views"`
	Clicks       int64           `json:"clicks"`
	Transactions int64           `json:"transactions"`
	GMV          decimal.Decimal `json:"gmv"`
}

// MarketingDTO resumen de publicidad (ventana móvil, no la del reporte).
type MarketingDTO struct {
	TotalCost decimal.Decimal `json:"totalCost"`
	TotalGMV  decimal.Decimal `json:"totalGmv"`
	ROAS      decimal.Decimal `json:"roas"`
	Campaigns []CampaignDTO   `json:"campaigns"`
}

// StoreSettingsDTO tasas de la tienda en %.
type StoreSettingsDTO struct {
	CommissionRate decimal.Decimal `json:"commissionRate"`
	TaxRate        decimal.Decimal `json:"taxRate"`
}

// OperationalExpenseDTO gasto operativo tal como está registrado.
type OperationalExpenseDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	ProductID    *string         `json:"productId"`
	ProductGroup *string         `json:"productGroup"`
}

// ── Reporte completo ──────────────────────────────────────────────────────────

// ReportDTO respuesta de GET /api/analytics/report.
type ReportDTO struct {
	Success  bool      `json:"success"`
	ReportID string    `json:"-"` // viaja en el header X-Report-ID; el cuerpo no cambia entre llamadas
	Period   PeriodDTO `json:"period"`

	TotalOrders      int             `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	TotalAdvertising decimal.Decimal `json:"totalAdvertising"`
	TotalTax         decimal.Decimal `json:"totalTax"`
	TotalCommissions decimal.Decimal `json:"totalCommissions"`
	TotalDelivery    decimal.Decimal `json:"totalDelivery"`
	TotalOperational decimal.Decimal `json:"totalOperational"`
	TotalProfit      decimal.Decimal `json:"totalProfit"`
	AvgOrderValue    decimal.Decimal `json:"avgOrderValue"`

	OrdersBySource      OrdersBySourceDTO       `json:"ordersBySource"`
	PendingOrders       PendingOrdersDTO        `json:"pendingOrders"`
	DailyData           []DailyDataDTO          `json:"dailyData"`
	DailyDataByCreation []DailyDataDTO          `json:"dailyDataByCreation"`
	TopProducts         []TopProductDTO         `json:"topProducts"`
	OrdersByStatus      map[string]int          `json:"ordersByStatus"`
	ReturnedOrders      []OrderBriefDTO         `json:"returnedOrders"`
	DeliveryModes       map[string]int          `json:"deliveryModes"`
	DeliveryCities      map[string]int          `json:"deliveryCities"`
	Marketing           MarketingDTO            `json:"marketing"`
	StoreSettings       StoreSettingsDTO        `json:"storeSettings"`
	OperationalExpenses []OperationalExpenseDTO `json:"operationalExpenses"`
}
