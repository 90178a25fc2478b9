package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// Columnas esperadas (la cabecera es obligatoria, el orden no):
// name;amount;start_date;end_date;product_id;product_group
var requiredColumns = []string{"name", "amount", "start_date", "end_date"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeInput devuelve el contenido en UTF-8. encoding: "utf8", "cp1251" o "auto"
// (auto = UTF-8 si es válido, si no Windows-1251, el formato que exporta Excel en ruso).
func decodeInput(raw []byte, encoding string) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
		return raw, nil
	case "cp1251", "windows-1251":
	case "", "auto":
		if utf8.Valid(raw) {
			return raw, nil
		}
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
	out, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decodificar cp1251: %w", err)
	}
	return out, nil
}

// detectSeparator elige ';' o ',' según la cabecera.
func detectSeparator(content []byte) rune {
	header, _, _ := bytes.Cut(content, []byte("\n"))
	if bytes.Count(header, []byte(";")) >= bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// parseExpenses lee el CSV y construye gastos validados para la tienda.
// Cualquier fila inválida aborta la importación completa con el número de línea.
func parseExpenses(r io.Reader, storeID, encoding string, now time.Time) ([]*entity.OperationalExpense, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	content, err := decodeInput(raw, encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = detectSeparator(content)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv vacío")
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}
	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []*entity.OperationalExpense
	for n, rec := range records[1:] {
		line := n + 2
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		// Excel ruso usa coma decimal y espacios de miles.
		amountStr := strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(field(rec, "amount"))
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("línea %d: monto %q inválido", line, field(rec, "amount"))
		}
		start, err := parseDate(field(rec, "start_date"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: start_date: %w", line, err)
		}
		end, err := parseDate(field(rec, "end_date"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: end_date: %w", line, err)
		}

		e := &entity.OperationalExpense{
			ID:           uuid.NewString(),
			StoreID:      storeID,
			Name:         field(rec, "name"),
			Amount:       amount,
			StartDate:    start,
			EndDate:      end,
			ProductID:    optional(field(rec, "product_id")),
			ProductGroup: optional(field(rec, "product_group")),
			CreatedAt:    now,
		}
		if e.Name == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío", line)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// parseDate acepta YYYY-MM-DD y DD.MM.YYYY.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02.01.2006"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q inválida (YYYY-MM-DD o DD.MM.YYYY)", s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
