package service

import (
	"context"
	"time"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/repository"

	"github.com/shopspring/decimal"
)

// Open-ended report periods default to the whole ledger.
const (
	reportPeriodStart = "1970-01-01"
	reportPeriodEnd   = "2099-12-31"
)

type ReportService interface {
	SalesReport(ctx context.Context, period dto.ReportPeriod) (*dto.SalesReportResponse, error)
	ExpensesReport(ctx context.Context, period dto.ReportPeriod) (*dto.ExpensesReportResponse, error)
	ProfitReport(ctx context.Context, period dto.ReportPeriod) (*dto.ProfitReportResponse, error)
	ProductSales(ctx context.Context, period dto.ReportPeriod) (*dto.ProductSalesResponse, error)
	CustomerSales(ctx context.Context, period dto.ReportPeriod) (*dto.CustomerSalesResponse, error)
	AllCheques(ctx context.Context) (*dto.ChequeListResponse, error)
	UpcomingCheques(ctx context.Context, days int) (*dto.ChequeListResponse, error)
}

type reportService struct {
	repo repository.ReportRepository
	now  func() time.Time
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo, now: time.Now}
}

func normalizePeriod(p dto.ReportPeriod) (string, string) {
	start, end := p.StartDate, p.EndDate
	if start == "" {
		start = reportPeriodStart
	}
	if end == "" {
		end = reportPeriodEnd
	}
	return start, end
}

func (s *reportService) SalesReport(ctx context.Context, period dto.ReportPeriod) (*dto.SalesReportResponse, error) {
	start, end := normalizePeriod(period)

	total, err := s.repo.TotalSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.MonthlySales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.SalesReportResponse{
		StartDate: start,
		EndDate:   end,
		Total:     total.Total,
		Count:     total.Count,
		Monthly:   monthlyToDTO(monthly),
	}, nil
}

func (s *reportService) ExpensesReport(ctx context.Context, period dto.ReportPeriod) (*dto.ExpensesReportResponse, error) {
	start, end := normalizePeriod(period)

	total, err := s.repo.TotalExpenses(ctx, start, end)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.MonthlyExpenses(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.repo.ExpensesByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}

	categories := make([]dto.CategoryAmount, 0, len(byCategory))
	for _, row := range byCategory {
		name := "uncategorized"
		if row.Category != nil {
			name = *row.Category
		}
		categories = append(categories, dto.CategoryAmount{
			Category: name,
			Total:    row.Total,
			Count:    row.Count,
		})
	}

	return &dto.ExpensesReportResponse{
		StartDate:  start,
		EndDate:    end,
		Total:      total.Total,
		Count:      total.Count,
		Monthly:    monthlyToDTO(monthly),
		ByCategory: categories,
	}, nil
}

func (s *reportService) ProfitReport(ctx context.Context, period dto.ReportPeriod) (*dto.ProfitReportResponse, error) {
	start, end := normalizePeriod(period)

	sales, err := s.repo.TotalSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.TotalExpenses(ctx, start, end)
	if err != nil {
		return nil, err
	}

	profit := sales.Total.Sub(expenses.Total)
	margin := decimal.Zero
	if sales.Total.IsPositive() {
		margin = profit.Div(sales.Total).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &dto.ProfitReportResponse{
		StartDate:     start,
		EndDate:       end,
		TotalSales:    sales.Total,
		TotalExpenses: expenses.Total,
		Profit:        profit,
		Margin:        margin,
	}, nil
}

func (s *reportService) ProductSales(ctx context.Context, period dto.ReportPeriod) (*dto.ProductSalesResponse, error) {
	start, end := normalizePeriod(period)
	rows, err := s.repo.ProductSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	products := make([]dto.ProductSalesRow, 0, len(rows))
	for _, row := range rows {
		products = append(products, dto.ProductSalesRow{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Revenue:     row.Revenue,
		})
	}
	return &dto.ProductSalesResponse{StartDate: start, EndDate: end, Products: products}, nil
}

func (s *reportService) CustomerSales(ctx context.Context, period dto.ReportPeriod) (*dto.CustomerSalesResponse, error) {
	start, end := normalizePeriod(period)
	rows, err := s.repo.CustomerSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	customers := make([]dto.CustomerSalesRow, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, dto.CustomerSalesRow{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			SaleCount:    row.SaleCount,
			Revenue:      row.Revenue,
		})
	}
	return &dto.CustomerSalesResponse{StartDate: start, EndDate: end, Customers: customers}, nil
}

func (s *reportService) AllCheques(ctx context.Context) (*dto.ChequeListResponse, error) {
	rows, err := s.repo.AllCheques(ctx)
	if err != nil {
		return nil, err
	}
	return chequesToDTO(rows), nil
}

func (s *reportService) UpcomingCheques(ctx context.Context, days int) (*dto.ChequeListResponse, error) {
	if days < 1 {
		days = 7
	}
	today := s.now()
	start := today.Format("2006-01-02")
	end := today.AddDate(0, 0, days).Format("2006-01-02")
	rows, err := s.repo.ChequesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return chequesToDTO(rows), nil
}

func monthlyToDTO(rows []repository.MonthlyRow) []dto.MonthlyAmount {
	out := make([]dto.MonthlyAmount, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.MonthlyAmount{Month: row.Month, Total: row.Total, Count: row.Count})
	}
	return out
}

func chequesToDTO(rows []repository.ChequeRow) *dto.ChequeListResponse {
	resp := &dto.ChequeListResponse{
		Cheques: make([]dto.ChequeRow, 0, len(rows)),
		Total:   decimal.Zero,
	}
	for _, row := range rows {
		resp.Cheques = append(resp.Cheques, dto.ChequeRow{
			SaleID:       row.SaleID,
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			Amount:       row.Amount,
			ChequeDate:   row.ChequeDate.Format("2006-01-02"),
			SaleDate:     row.SaleDate.Format("2006-01-02"),
		})
		resp.Total = resp.Total.Add(row.Amount)
	}
	return resp
}
