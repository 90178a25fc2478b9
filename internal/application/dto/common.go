package dto

import "github.com/shopspring/decimal"

func init() {
	// Los montos viajan como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP. Error solo se llena en fallas inesperadas (500).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
