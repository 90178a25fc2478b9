package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Rates tasas de la tienda en porcentaje (10 = 10%).
type Rates struct {
	Commission decimal.Decimal
	Tax        decimal.Decimal
}

// CommissionOf comisión del marketplace sobre un monto.
func (r Rates) CommissionOf(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Commission).Div(hundred)
}

// TaxOf impuesto sobre un monto.
func (r Rates) TaxOf(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Tax).Div(hundred)
}

// ProductLine desglose diario por producto.
type ProductLine struct {
	Code        string
	Name        string
	Qty         decimal.Decimal
	Revenue     decimal.Decimal
	UnitCost    decimal.Decimal
	Cost        decimal.Decimal // Qty × UnitCost
	Operational decimal.Decimal // gasto operativo del día asignado al producto (base diaria)
}

// DailyBucket acumulado financiero de un día local.
// Profit se mantiene consistente en cada mutación: ingresos menos todos los costos acumulados.
type DailyBucket struct {
	Date               string
	OrdersCount        int
	Revenue            decimal.Decimal
	CostOfGoods        decimal.Decimal
	Commission         decimal.Decimal
	Tax                decimal.Decimal
	Delivery           decimal.Decimal
	OperationalExpense decimal.Decimal
	AdvertisingSpend   decimal.Decimal
	Profit             decimal.Decimal
	ReturnedCount      int
	Products           map[string]*ProductLine
}

// AddOperational suma gasto operativo al día y lo descuenta de la utilidad.
func (b *DailyBucket) AddOperational(amount decimal.Decimal) {
	b.OperationalExpense = b.OperationalExpense.Add(amount)
	b.Profit = b.Profit.Sub(amount)
}

// AddAdvertising suma gasto publicitario al día y lo descuenta de la utilidad.
func (b *DailyBucket) AddAdvertising(amount decimal.Decimal) {
	b.AdvertisingSpend = b.AdvertisingSpend.Add(amount)
	b.Profit = b.Profit.Sub(amount)
}

// SortedProducts productos del día por ingreso descendente (empate por código).
func (b *DailyBucket) SortedProducts() []*ProductLine {
	out := make([]*ProductLine, 0, len(b.Products))
	for _, p := range b.Products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Buckets mapa de días indexado por fecha local.
type Buckets map[string]*DailyBucket

// Get devuelve el día, creándolo vacío si no existe.
func (bs Buckets) Get(key string) *DailyBucket {
	b, ok := bs[key]
	if !ok {
		b = &DailyBucket{Date: key, Products: make(map[string]*ProductLine)}
		bs[key] = b
	}
	return b
}

// Sorted días en orden ascendente de fecha.
func (bs Buckets) Sorted() []*DailyBucket {
	out := make([]*DailyBucket, 0, len(bs))
	for _, b := range bs {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Revenue ingreso por día, usado como peso de reparto.
func (bs Buckets) Revenue() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(bs))
	for k, b := range bs {
		out[k] = b.Revenue
	}
	return out
}

// ProductSales acumulado global de un producto en pedidos completados.
type ProductSales struct {
	Code    string
	Name    string
	Qty     decimal.Decimal
	Revenue decimal.Decimal
	Cost    decimal.Decimal
}

// Engine parámetros compartidos por los dos pliegues de pedidos.
type Engine struct {
	Lookup      Lookup
	Rates       Rates
	Window      Window
	OffsetHours int
}

type lineFigures struct {
	code     string
	name     string
	qty      decimal.Decimal
	revenue  decimal.Decimal
	unitCost decimal.Decimal
	cost     decimal.Decimal
}

type figures struct {
	revenue    decimal.Decimal
	cost       decimal.Decimal
	commission decimal.Decimal
	tax        decimal.Decimal
	delivery   decimal.Decimal
	lines      []lineFigures
}

// orderFigures cálculo financiero de un pedido, único para ambos pliegues.
// Un pedido con ítems ilegibles aporta a los totales pero no al desglose por producto.
func orderFigures(o *entity.Order, lookup Lookup, rates Rates) figures {
	f := figures{
		revenue:    o.TotalAmount,
		commission: rates.CommissionOf(o.TotalAmount),
		tax:        rates.TaxOf(o.TotalAmount),
		delivery:   o.DeliveryCost,
	}
	if o.ItemsMalformed {
		return f
	}
	for _, it := range o.Items {
		unit := lookup.UnitCost(it.ProductCode)
		lf := lineFigures{
			code:     it.ProductCode,
			name:     it.ProductName,
			qty:      it.Quantity,
			revenue:  it.LineTotal,
			unitCost: unit,
			cost:     it.Quantity.Mul(unit),
		}
		if lf.name == "" {
			lf.name = lookup.Name(it.ProductCode)
		}
		f.cost = f.cost.Add(lf.cost)
		f.lines = append(f.lines, lf)
	}
	return f
}

// selector elige el instante que define el día del pedido; false = el pedido no participa.
type selector func(o *entity.Order) (time.Time, bool)

func byCompletion(o *entity.Order) (time.Time, bool) {
	if !o.IsFulfilled() {
		return time.Time{}, false
	}
	return *o.CompletedAt, true
}

func byCreation(o *entity.Order) (time.Time, bool) {
	if o.IsCancelled() || o.IsReturned() {
		return time.Time{}, false
	}
	return o.CreatedAt, true
}

// fold acumula los pedidos seleccionados en días dentro de la ventana.
// Si sales no es nil también acumula el mapa global de productos.
func (e Engine) fold(orders []*entity.Order, sel selector, sales map[string]*ProductSales) Buckets {
	out := make(Buckets)
	for _, o := range orders {
		ts, ok := sel(o)
		if !ok {
			continue
		}
		key := BucketKey(ts, e.OffsetHours)
		if !e.Window.Contains(key) {
			continue
		}
		f := orderFigures(o, e.Lookup, e.Rates)
		b := out.Get(key)
		b.OrdersCount++
		b.Revenue = b.Revenue.Add(f.revenue)
		b.CostOfGoods = b.CostOfGoods.Add(f.cost)
		b.Commission = b.Commission.Add(f.commission)
		b.Tax = b.Tax.Add(f.tax)
		b.Delivery = b.Delivery.Add(f.delivery)
		b.Profit = b.Profit.Add(f.revenue).Sub(f.cost).Sub(f.commission).Sub(f.tax).Sub(f.delivery)

		for _, lf := range f.lines {
			p, ok := b.Products[lf.code]
			if !ok {
				p = &ProductLine{Code: lf.code, Name: lf.name, UnitCost: lf.unitCost}
				b.Products[lf.code] = p
			}
			p.Qty = p.Qty.Add(lf.qty)
			p.Revenue = p.Revenue.Add(lf.revenue)
			p.Cost = p.Cost.Add(lf.cost)

			if sales == nil {
				continue
			}
			s, ok := sales[lf.code]
			if !ok {
				s = &ProductSales{Code: lf.code, Name: lf.name}
				sales[lf.code] = s
			}
			s.Qty = s.Qty.Add(lf.qty)
			s.Revenue = s.Revenue.Add(lf.revenue)
			s.Cost = s.Cost.Add(lf.cost)
		}
	}
	return out
}

// FoldByCompletion días por fecha de entrega confirmada (flujo de caja realizado)
// y ventas globales por producto.
func (e Engine) FoldByCompletion(orders []*entity.Order) (Buckets, map[string]*ProductSales) {
	sales := make(map[string]*ProductSales)
	return e.fold(orders, byCompletion, sales), sales
}

// FoldByCreation días por fecha de creación, sin cancelados ni devueltos.
// Las devoluciones se cuentan aparte en su día de creación, creando el día si hace falta.
func (e Engine) FoldByCreation(orders []*entity.Order) Buckets {
	out := e.fold(orders, byCreation, nil)
	for _, o := range orders {
		if !o.IsReturned() {
			continue
		}
		key := BucketKey(o.CreatedAt, e.OffsetHours)
		if !e.Window.Contains(key) {
			continue
		}
		out.Get(key).ReturnedCount++
	}
	return out
}

// FulfilledOrders pedidos completados cuyo día de entrega cae en la ventana.
func (e Engine) FulfilledOrders(orders []*entity.Order) []*entity.Order {
	var out []*entity.Order
	for _, o := range orders {
		if ts, ok := byCompletion(o); ok && e.Window.Contains(BucketKey(ts, e.OffsetHours)) {
			out = append(out, o)
		}
	}
	return out
}

// CreatedOrders pedidos (de cualquier estado) creados dentro de la ventana.
func (e Engine) CreatedOrders(orders []*entity.Order) []*entity.Order {
	var out []*entity.Order
	for _, o := range orders {
		if e.Window.Contains(BucketKey(o.CreatedAt, e.OffsetHours)) {
			out = append(out, o)
		}
	}
	return out
}
