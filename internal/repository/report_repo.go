package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregate rows scanned from raw report queries. SQLite has no native
// decimal type so sums come back through decimal's sql.Scanner.

type PeriodTotal struct {
	Total decimal.Decimal
	Count int64
}

type MonthlyRow struct {
	Month string
	Total decimal.Decimal
	Count int64
}

type CategoryRow struct {
	Category *string
	Total    decimal.Decimal
	Count    int64
}

type ProductSalesRow struct {
	ProductID   uint
	ProductName string
	Quantity    int64
	Revenue     decimal.Decimal
}

type CustomerSalesRow struct {
	CustomerID   uint
	CustomerName string
	SaleCount    int64
	Revenue      decimal.Decimal
}

type ChequeRow struct {
	SaleID       uint
	CustomerID   *uint
	CustomerName *string
	Amount       decimal.Decimal
	ChequeDate   time.Time
	SaleDate     time.Time
}

// ReportRepository runs the aggregate queries behind the report endpoints.
// All periods are closed date ranges in YYYY-MM-DD form.
type ReportRepository interface {
	TotalSales(ctx context.Context, start, end string) (PeriodTotal, error)
	MonthlySales(ctx context.Context, start, end string) ([]MonthlyRow, error)
	TotalExpenses(ctx context.Context, start, end string) (PeriodTotal, error)
	MonthlyExpenses(ctx context.Context, start, end string) ([]MonthlyRow, error)
	ExpensesByCategory(ctx context.Context, start, end string) ([]CategoryRow, error)
	ProductSales(ctx context.Context, start, end string) ([]ProductSalesRow, error)
	CustomerSales(ctx context.Context, start, end string) ([]CustomerSalesRow, error)
	ChequesBetween(ctx context.Context, start, end string) ([]ChequeRow, error)
	AllCheques(ctx context.Context) ([]ChequeRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) TotalSales(ctx context.Context, start, end string) (PeriodTotal, error) {
	var row PeriodTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count
		FROM sales
		WHERE DATE(sale_date) BETWEEN ? AND ?`, start, end).Scan(&row).Error
	return row, err
}

func (r *reportRepo) MonthlySales(ctx context.Context, start, end string) ([]MonthlyRow, error) {
	var rows []MonthlyRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT strftime('%Y-%m', sale_date) AS month,
		       COALESCE(SUM(total_amount), 0) AS total,
		       COUNT(*) AS count
		FROM sales
		WHERE DATE(sale_date) BETWEEN ? AND ?
		GROUP BY month
		ORDER BY month ASC`, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) TotalExpenses(ctx context.Context, start, end string) (PeriodTotal, error) {
	var row PeriodTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
		FROM expenses
		WHERE DATE(expense_date) BETWEEN ? AND ?`, start, end).Scan(&row).Error
	return row, err
}

func (r *reportRepo) MonthlyExpenses(ctx context.Context, start, end string) ([]MonthlyRow, error) {
	var rows []MonthlyRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT strftime('%Y-%m', expense_date) AS month,
		       COALESCE(SUM(amount), 0) AS total,
		       COUNT(*) AS count
		FROM expenses
		WHERE DATE(expense_date) BETWEEN ? AND ?
		GROUP BY month
		ORDER BY month ASC`, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ExpensesByCategory(ctx context.Context, start, end string) ([]CategoryRow, error) {
	var rows []CategoryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT category,
		       COALESCE(SUM(amount), 0) AS total,
		       COUNT(*) AS count
		FROM expenses
		WHERE DATE(expense_date) BETWEEN ? AND ?
		GROUP BY category
		ORDER BY total DESC`, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ProductSales(ctx context.Context, start, end string) ([]ProductSalesRow, error) {
	var rows []ProductSalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT si.product_id AS product_id,
		       p.name AS product_name,
		       COALESCE(SUM(si.quantity), 0) AS quantity,
		       COALESCE(SUM(si.price * si.quantity), 0) AS revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE DATE(s.sale_date) BETWEEN ? AND ?
		GROUP BY si.product_id, p.name
		ORDER BY revenue DESC`, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) CustomerSales(ctx context.Context, start, end string) ([]CustomerSalesRow, error) {
	var rows []CustomerSalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.customer_id AS customer_id,
		       c.name AS customer_name,
		       COUNT(*) AS sale_count,
		       COALESCE(SUM(s.total_amount), 0) AS revenue
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.customer_id IS NOT NULL
		  AND DATE(s.sale_date) BETWEEN ? AND ?
		GROUP BY s.customer_id, c.name
		ORDER BY revenue DESC`, start, end).Scan(&rows).Error
	return rows, err
}

const chequeSelect = `
	SELECT s.id AS sale_id,
	       s.customer_id AS customer_id,
	       c.name AS customer_name,
	       s.total_amount AS amount,
	       s.cheque_date AS cheque_date,
	       s.sale_date AS sale_date
	FROM sales s
	LEFT JOIN customers c ON c.id = s.customer_id
	WHERE s.payment_type = 'cheque' AND s.cheque_date IS NOT NULL`

func (r *reportRepo) ChequesBetween(ctx context.Context, start, end string) ([]ChequeRow, error) {
	var rows []ChequeRow
	err := r.db.WithContext(ctx).Raw(
		chequeSelect+` AND DATE(s.cheque_date) BETWEEN ? AND ? ORDER BY s.cheque_date ASC`,
		start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) AllCheques(ctx context.Context) ([]ChequeRow, error) {
	var rows []ChequeRow
	err := r.db.WithContext(ctx).Raw(chequeSelect + ` ORDER BY s.cheque_date ASC`).Scan(&rows).Error
	return rows, err
}
