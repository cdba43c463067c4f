package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Category    *string         `json:"category"    validate:"omitempty,max=100"`
	// ExpenseDate defaults to now when omitted.
	ExpenseDate *string `json:"expenseDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Category    *string         `json:"category"    validate:"omitempty,max=100"`
	ExpenseDate *string         `json:"expenseDate" validate:"omitempty,datetime=2006-01-02"`
}

type ExpenseResponse struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category"`
	ExpenseDate string          `json:"expenseDate"`
}

// ExpenseFilter is bound from the query string of GET /v1/expenses.
type ExpenseFilter struct {
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   validate:"omitempty,datetime=2006-01-02"`
	Category  string `form:"category"  validate:"omitempty,max=100"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
