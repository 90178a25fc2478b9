package postgres

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// Claves aceptadas en la columna items; varían según la versión del sincronizador del marketplace.
var (
	itemCodeKeys      = []string{"productCode", "code", "sku"}
	itemNameKeys      = []string{"productName", "name"}
	itemQtyKeys       = []string{"quantity", "qty"}
	itemUnitPriceKeys = []string{"unitPrice", "basePrice", "price"}
	itemLineTotalKeys = []string{"lineTotal", "totalPrice"}
)

// ParseOrderItems convierte el jsonb de ítems en líneas tipadas.
// null o vacío = sin ítems. Cualquier elemento ilegible invalida la lista completa.
// Números pueden venir como string. Sin lineTotal se usa cantidad × precio unitario.
func ParseOrderItems(raw []byte) ([]entity.OrderLineItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var elems []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}

	out := make([]entity.OrderLineItem, 0, len(elems))
	for i, el := range elems {
		if el == nil {
			return nil, fmt.Errorf("items[%d]: elemento nulo", i)
		}
		code, err := firstString(el, itemCodeKeys)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		if code == "" {
			return nil, fmt.Errorf("items[%d]: sin código de producto", i)
		}
		name, err := firstString(el, itemNameKeys)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		qty, err := firstDecimal(el, itemQtyKeys)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		unit, err := firstDecimal(el, itemUnitPriceKeys)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		total, err := firstDecimal(el, itemLineTotalKeys)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		if total.IsZero() {
			total = qty.Mul(unit)
		}
		out = append(out, entity.OrderLineItem{
			ProductCode: code,
			ProductName: name,
			Quantity:    qty,
			UnitPrice:   unit,
			LineTotal:   total,
		})
	}
	return out, nil
}

func firstRaw(el map[string]json.RawMessage, keys []string) (json.RawMessage, string) {
	for _, k := range keys {
		if v, ok := el[k]; ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return v, k
		}
	}
	return nil, ""
}

// firstString acepta string o número (códigos numéricos del marketplace).
func firstString(el map[string]json.RawMessage, keys []string) (string, error) {
	v, key := firstRaw(el, keys)
	if v == nil {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("%s: tipo inválido", key)
}

// firstDecimal acepta número o string numérico; ausente = 0.
func firstDecimal(el map[string]json.RawMessage, keys []string) (decimal.Decimal, error) {
	v, key := firstRaw(el, keys)
	if v == nil {
		return decimal.Zero, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %q no es numérico", key, s)
		}
		return d, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(v); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
