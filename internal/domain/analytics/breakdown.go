package analytics

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// Vocabulario fijo de modos de entrega.
const (
	DeliveryLocal    = "local"
	DeliveryPickup   = "pickup"
	DeliveryRegional = "regional"
	DeliveryPostomat = "postomat"
	DeliveryOther    = "other"
)

var deliveryModeByCode = map[string]string{
	"DELIVERY_LOCAL":           DeliveryLocal,
	"DELIVERY_PICKUP":          DeliveryPickup,
	"DELIVERY_REGIONAL_TODOOR": DeliveryRegional,
	"DELIVERY_REGIONAL_PICKUP": DeliveryRegional,
	"DELIVERY_POSTOMAT":        DeliveryPostomat,
}

// DeliveryModeKey normaliza el modo de entrega del marketplace.
func DeliveryModeKey(mode string) string {
	if k, ok := deliveryModeByCode[strings.ToUpper(strings.TrimSpace(mode))]; ok {
		return k
	}
	return DeliveryOther
}

// CountDeliveryModes conteo por modo; las cinco claves siempre presentes.
func CountDeliveryModes(orders []*entity.Order) map[string]int {
	out := map[string]int{
		DeliveryLocal:    0,
		DeliveryPickup:   0,
		DeliveryRegional: 0,
		DeliveryPostomat: 0,
		DeliveryOther:    0,
	}
	for _, o := range orders {
		out[DeliveryModeKey(o.DeliveryMode)]++
	}
	return out
}

var cityTitle = cases.Title(language.Russian)

// ExtractCity primer segmento de la dirección separado por coma, sin prefijo "г." y capitalizado.
func ExtractCity(address string) string {
	city, _, _ := strings.Cut(address, ",")
	city = strings.TrimSpace(city)
	for _, prefix := range []string{"г.", "г "} {
		if strings.HasPrefix(city, prefix) {
			city = strings.TrimSpace(strings.TrimPrefix(city, prefix))
			break
		}
	}
	if city == "" {
		return ""
	}
	return cityTitle.String(city)
}

// CountCities conteo por ciudad; direcciones sin ciudad no cuentan.
func CountCities(orders []*entity.Order) map[string]int {
	out := make(map[string]int)
	for _, o := range orders {
		if c := ExtractCity(o.DeliveryAddress); c != "" {
			out[c]++
		}
	}
	return out
}

// CountByStatus conteo por grupo de estado con las seis claves siempre presentes.
func CountByStatus(orders []*entity.Order) map[string]int {
	out := make(map[string]int, len(entity.StatusGroups))
	for _, g := range entity.StatusGroups {
		out[g] = 0
	}
	for _, o := range orders {
		out[entity.StatusGroup(o.Status)]++
	}
	return out
}

// RecentOrders pedidos que cumplen keep, más recientes primero, hasta limit (0 = sin límite).
func RecentOrders(orders []*entity.Order, keep func(*entity.Order) bool, limit int) []*entity.Order {
	var out []*entity.Order
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
