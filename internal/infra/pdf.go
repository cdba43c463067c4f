package infra

// pdf.go: invoice PDF rendering with go-pdf/fpdf.
//
// Two layouts:
//   - Default: an A4 table layout with company header, customer block,
//     item rows and a bold total. Used when no template is selected.
//   - Template: every field is placed at absolute mm coordinates taken from
//     an InvoiceTemplateData, matching pre-printed invoice paper. Templates
//     can render a duplicate copy on the lower half of the page.

import (
	"bytes"
	"fmt"
	"time"

	"ledgerdesk/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

type InvoiceLine struct {
	Name     string
	Barcode  string
	Quantity int
	Price    decimal.Decimal
	Total    decimal.Decimal
}

// InvoiceData carries everything a rendered invoice can show.
type InvoiceData struct {
	InvoiceNumber   string
	Date            time.Time
	CompanyName     string
	CompanyAddress  string
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	Lines           []InvoiceLine
	Total           decimal.Decimal
	PaymentType     string
	ChequeDate      string
}

const (
	defaultRowGap = 12.0
	// Vertical offset of the duplicate copy: half an A4 page.
	copyPageOffset = 148.5
)

// RenderInvoicePDF renders data as a single A4 page. A nil template selects
// the built-in table layout.
func RenderInvoicePDF(data InvoiceData, tpl *dto.InvoiceTemplateData, money *CurrencyFormatter) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	if tpl == nil {
		renderTableLayout(pdf, data, money)
	} else {
		renderTemplateLayout(pdf, data, tpl, money, 0, 0)
		if tpl.Copy {
			renderTemplateLayout(pdf, data, tpl, money, tpl.CopyOffsetX, copyPageOffset+tpl.CopyOffsetY)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func renderTableLayout(pdf *fpdf.Fpdf, data InvoiceData, money *CurrencyFormatter) {
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, data.CompanyName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, data.CompanyAddress, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW/2, 6, "Invoice "+data.InvoiceNumber, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, data.Date.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	if data.CustomerName != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, "Bill to", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, data.CustomerName, "", 1, "L", false, 0, "")
		if data.CustomerAddress != "" {
			pdf.CellFormat(contentW, 5, data.CustomerAddress, "", 1, "L", false, 0, "")
		}
		if data.CustomerPhone != "" {
			pdf.CellFormat(contentW, 5, data.CustomerPhone, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	col1 := contentW * 0.46 // name
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range data.Lines {
		name := line.Name
		if len(name) > 48 {
			name = name[:47] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, money.Format(line.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, money.Format(line.Total), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 8, money.Format(data.Total), "", 1, "R", false, 0, "")

	if data.PaymentType != "" {
		pdf.SetFont("Helvetica", "", 9)
		label := "Payment: " + data.PaymentType
		if data.ChequeDate != "" {
			label += " (cheque due " + data.ChequeDate + ")"
		}
		pdf.CellFormat(contentW, 6, label, "", 1, "L", false, 0, "")
	}
}

// renderTemplateLayout places each selected field at its configured position,
// shifted by (dx, dy) so the same code draws the duplicate copy.
func renderTemplateLayout(pdf *fpdf.Fpdf, data InvoiceData, tpl *dto.InvoiceTemplateData, money *CurrencyFormatter, dx, dy float64) {
	values := map[string]string{
		"invoiceNumber":   data.InvoiceNumber,
		"date":            data.Date.Format("02/01/2006"),
		"companyName":     data.CompanyName,
		"companyAddress":  data.CompanyAddress,
		"customerName":    data.CustomerName,
		"customerAddress": data.CustomerAddress,
		"customerPhone":   data.CustomerPhone,
		"total":           money.Format(data.Total),
		"paymentType":     data.PaymentType,
		"chequeDate":      data.ChequeDate,
	}

	selected := tpl.SelectedFields
	if len(selected) == 0 {
		selected = make([]string, 0, len(tpl.Fields))
		for key := range tpl.Fields {
			selected = append(selected, key)
		}
	}

	rowGap := tpl.RowGap
	if rowGap <= 0 {
		rowGap = defaultRowGap
	}

	for _, key := range selected {
		field, ok := tpl.Fields[key]
		if !ok {
			continue
		}
		size := field.Size
		if size <= 0 {
			size = 10
		}
		pdf.SetFont("Helvetica", "", size)

		switch key {
		case "itemName", "itemBarcode", "itemQuantity", "itemPrice", "itemTotal":
			for i, line := range data.Lines {
				y := field.Y + float64(i)*rowGap
				pdf.Text(field.X+dx, y+dy, itemFieldValue(key, line, money))
			}
		default:
			text := field.Text
			if text == "" {
				text = values[key]
			}
			pdf.Text(field.X+dx, field.Y+dy, text)
		}
	}
}

func itemFieldValue(key string, line InvoiceLine, money *CurrencyFormatter) string {
	switch key {
	case "itemName":
		return line.Name
	case "itemBarcode":
		return line.Barcode
	case "itemQuantity":
		return fmt.Sprintf("%d", line.Quantity)
	case "itemPrice":
		return money.Format(line.Price)
	case "itemTotal":
		return money.Format(line.Total)
	}
	return ""
}
