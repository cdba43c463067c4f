package dto

import "github.com/shopspring/decimal"

// ReportPeriod is bound from the query string of the report endpoints. When
// both bounds are omitted the report covers the whole ledger.
type ReportPeriod struct {
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   validate:"omitempty,datetime=2006-01-02"`
}

// ─── Sales report ────────────────────────────────────────────────────────────

type MonthlyAmount struct {
	Month string          `json:"month"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type SalesReportResponse struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Total     decimal.Decimal `json:"total"`
	Count     int64           `json:"count"`
	Monthly   []MonthlyAmount `json:"monthly"`
}

// ─── Expenses report ─────────────────────────────────────────────────────────

type CategoryAmount struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

type ExpensesReportResponse struct {
	StartDate  string           `json:"startDate"`
	EndDate    string           `json:"endDate"`
	Total      decimal.Decimal  `json:"total"`
	Count      int64            `json:"count"`
	Monthly    []MonthlyAmount  `json:"monthly"`
	ByCategory []CategoryAmount `json:"byCategory"`
}

// ─── Profit report ───────────────────────────────────────────────────────────

type ProfitReportResponse struct {
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Profit        decimal.Decimal `json:"profit"`
	// Margin is profit / totalSales × 100, zero when there were no sales.
	Margin decimal.Decimal `json:"margin"`
}

// ─── Breakdown reports ───────────────────────────────────────────────────────

type ProductSalesRow struct {
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type ProductSalesResponse struct {
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Products  []ProductSalesRow `json:"products"`
}

type CustomerSalesRow struct {
	CustomerID   uint            `json:"customerId"`
	CustomerName string          `json:"customerName"`
	SaleCount    int64           `json:"saleCount"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type CustomerSalesResponse struct {
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
	Customers []CustomerSalesRow `json:"customers"`
}

// ─── Cheques ─────────────────────────────────────────────────────────────────

type ChequeRow struct {
	SaleID       uint            `json:"saleId"`
	CustomerID   *uint           `json:"customerId"`
	CustomerName *string         `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	ChequeDate   string          `json:"chequeDate"`
	SaleDate     string          `json:"saleDate"`
}

type ChequeListResponse struct {
	Cheques []ChequeRow     `json:"cheques"`
	Total   decimal.Decimal `json:"total"`
}

// UpcomingChequesFilter is bound from GET /v1/reports/cheques/upcoming.
type UpcomingChequesFilter struct {
	Days int `form:"days,default=7" validate:"min=1,max=365"`
}
