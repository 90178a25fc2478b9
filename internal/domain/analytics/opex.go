package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// DayRates tasa diaria de gasto operativo por nivel de atribución, indexada por día.
type DayRates struct {
	General map[string]decimal.Decimal
	Group   map[string]map[string]decimal.Decimal // día -> grupo -> tasa
	Product map[string]map[string]decimal.Decimal // día -> código -> tasa
}

// ExpenseDays días inclusivos cubiertos por el gasto (mínimo 1).
func ExpenseDays(e *entity.OperationalExpense) int {
	n := int(e.EndDate.Sub(e.StartDate)/day) + 1
	if n < 1 {
		return 1
	}
	return n
}

// ExpenseRate tasa diaria del gasto: monto / días inclusivos.
func ExpenseRate(e *entity.OperationalExpense) decimal.Decimal {
	return e.Amount.Div(decimal.NewFromInt(int64(ExpenseDays(e))))
}

// DailyRates reparte cada gasto en su tasa diaria sobre todos los días de su rango,
// existan o no pedidos ese día.
func DailyRates(expenses []*entity.OperationalExpense) DayRates {
	r := DayRates{
		General: make(map[string]decimal.Decimal),
		Group:   make(map[string]map[string]decimal.Decimal),
		Product: make(map[string]map[string]decimal.Decimal),
	}
	for _, e := range expenses {
		rate := ExpenseRate(e)
		n := ExpenseDays(e)
		d := e.StartDate
		for i := 0; i < n; i++ {
			key := d.Format(DateLayout)
			switch e.Scope() {
			case entity.ExpenseScopeProduct:
				addNested(r.Product, key, *e.ProductID, rate)
			case entity.ExpenseScopeGroup:
				addNested(r.Group, key, *e.ProductGroup, rate)
			default:
				r.General[key] = r.General[key].Add(rate)
			}
			d = d.AddDate(0, 0, 1)
		}
	}
	return r
}

func addNested(m map[string]map[string]decimal.Decimal, dayKey, key string, v decimal.Decimal) {
	inner, ok := m[dayKey]
	if !ok {
		inner = make(map[string]decimal.Decimal)
		m[dayKey] = inner
	}
	inner[key] = inner[key].Add(v)
}

// Total tasa total del día sumando los tres niveles.
func (r DayRates) Total(dayKey string) decimal.Decimal {
	t := r.General[dayKey]
	for _, v := range r.Group[dayKey] {
		t = t.Add(v)
	}
	for _, v := range r.Product[dayKey] {
		t = t.Add(v)
	}
	return t
}

// ApplyToBuckets suma la tasa diaria total a cada día de la ventana en todos los mapas dados.
// Un día con gasto pero sin pedidos aparece igual.
func (r DayRates) ApplyToBuckets(w Window, maps ...Buckets) {
	for _, key := range w.Keys() {
		total := r.Total(key)
		if total.IsZero() {
			continue
		}
		for _, bs := range maps {
			bs.Get(key).AddOperational(total)
		}
	}
}

// SplitByRevenue reparte amount proporcionalmente a los pesos positivos.
// La última clave (orden lexicográfico) recibe el residuo para que la suma sea exacta.
// Sin pesos positivos todo el monto queda como remainder.
func SplitByRevenue(amount decimal.Decimal, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, decimal.Decimal) {
	shares := make(map[string]decimal.Decimal)
	if amount.IsZero() {
		return shares, decimal.Zero
	}
	keys := make([]string, 0, len(weights))
	total := decimal.Zero
	for k, w := range weights {
		if w.IsPositive() {
			keys = append(keys, k)
			total = total.Add(w)
		}
	}
	if len(keys) == 0 {
		return shares, amount
	}
	sort.Strings(keys)
	acc := decimal.Zero
	for i, k := range keys {
		if i == len(keys)-1 {
			shares[k] = amount.Sub(acc)
			break
		}
		s := amount.Mul(weights[k]).Div(total)
		shares[k] = s
		acc = acc.Add(s)
	}
	return shares, decimal.Zero
}

// ProductOpex gasto operativo del período asignado a productos.
type ProductOpex struct {
	ByProduct   map[string]decimal.Decimal
	Unallocated decimal.Decimal // grupos sin ingresos o período sin ventas
}

// Of gasto asignado al producto; 0 si no tiene.
func (p ProductOpex) Of(code string) decimal.Decimal {
	return p.ByProduct[code]
}

// AllocatePeriod asigna el gasto de la ventana a productos con base en el ingreso de todo el período.
// Directo: íntegro al producto (aunque no tenga ventas). Grupo: por participación en el ingreso del grupo.
// General: por participación en el ingreso total del período.
// La tasa media diaria por la cantidad de días de la ventana es igual a la suma de las tasas de la ventana.
func AllocatePeriod(r DayRates, w Window, productRevenue map[string]decimal.Decimal, lookup Lookup) ProductOpex {
	out := ProductOpex{ByProduct: make(map[string]decimal.Decimal)}

	general := decimal.Zero
	groups := make(map[string]decimal.Decimal)
	for _, key := range w.Keys() {
		general = general.Add(r.General[key])
		for g, v := range r.Group[key] {
			groups[g] = groups[g].Add(v)
		}
		for code, v := range r.Product[key] {
			out.ByProduct[code] = out.ByProduct[code].Add(v)
		}
	}

	groupNames := make([]string, 0, len(groups))
	for g := range groups {
		groupNames = append(groupNames, g)
	}
	sort.Strings(groupNames)
	for _, g := range groupNames {
		members := make(map[string]decimal.Decimal)
		for code, rev := range productRevenue {
			if lookup.Group(code) == g {
				members[code] = rev
			}
		}
		shares, rest := SplitByRevenue(groups[g], members)
		out.add(shares)
		out.Unallocated = out.Unallocated.Add(rest)
	}

	shares, rest := SplitByRevenue(general, productRevenue)
	out.add(shares)
	out.Unallocated = out.Unallocated.Add(rest)
	return out
}

func (p *ProductOpex) add(shares map[string]decimal.Decimal) {
	for code, v := range shares {
		p.ByProduct[code] = p.ByProduct[code].Add(v)
	}
}

// AllocateDay reparte la tasa general de un día según el ingreso de cada producto ESE día.
// Base diaria; no se mezcla con la base del período de AllocatePeriod.
func AllocateDay(generalRate decimal.Decimal, dayRevenue map[string]decimal.Decimal) (map[string]decimal.Decimal, decimal.Decimal) {
	return SplitByRevenue(generalRate, dayRevenue)
}

// ApplyDailyProductOpex llena ProductLine.Operational de cada día con la base diaria
// en los tres niveles. Lo que no se puede asignar queda solo en el total del día.
func ApplyDailyProductOpex(r DayRates, bs Buckets, lookup Lookup) {
	for key, b := range bs {
		if len(b.Products) == 0 {
			continue
		}
		dayRevenue := make(map[string]decimal.Decimal, len(b.Products))
		for code, p := range b.Products {
			dayRevenue[code] = p.Revenue
		}

		shares, _ := AllocateDay(r.General[key], dayRevenue)
		for g, rate := range r.Group[key] {
			members := make(map[string]decimal.Decimal)
			for code, rev := range dayRevenue {
				if lookup.Group(code) == g {
					members[code] = rev
				}
			}
			gs, _ := SplitByRevenue(rate, members)
			for code, v := range gs {
				shares[code] = shares[code].Add(v)
			}
		}
		for code, rate := range r.Product[key] {
			if _, ok := b.Products[code]; ok {
				shares[code] = shares[code].Add(rate)
			}
		}
		for code, v := range shares {
			b.Products[code].Operational = v
		}
	}
}
