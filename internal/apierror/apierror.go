// Package apierror provides the standardized error envelopes for the API.
// All errors returned to the UI go through this package so internal details
// (stack traces, SQL errors) never leak to the client.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}

// StockError is returned when a sale would drive a product's stock negative.
// It names the product and both quantities so the UI can render a precise
// message without parsing the detail string.
type StockError struct {
	Detail    string `json:"detail"`
	Product   string `json:"product"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func NewStock(detail, product string, requested, available int) *StockError {
	return &StockError{Detail: detail, Product: product, Requested: requested, Available: available}
}
