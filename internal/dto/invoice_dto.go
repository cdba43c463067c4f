package dto

// FieldSetting positions one invoice field on the page. Coordinates are in
// millimetres from the top-left corner of an A4 sheet.
type FieldSetting struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size,omitempty"`
	// Text overrides the field's computed value (static labels).
	Text string `json:"text,omitempty"`
}

// InvoiceTemplateData is the JSON payload stored in an invoice template. It
// describes which fields are printed and where, plus optional duplicate-copy
// settings for carbon-copy style invoice paper.
type InvoiceTemplateData struct {
	Fields         map[string]FieldSetting `json:"fields"`
	SelectedFields []string                `json:"selectedFields,omitempty"`
	// RowGap is the vertical distance between item rows in mm. Zero means
	// the default of 12.
	RowGap float64 `json:"rowGap,omitempty"`
	// Copy enables a second rendering of all fields offset by half a page
	// (148.5mm) plus the per-axis offsets below.
	Copy        bool    `json:"copy,omitempty"`
	CopyOffsetX float64 `json:"copyOffsetX,omitempty"`
	CopyOffsetY float64 `json:"copyOffsetY,omitempty"`
}

type CreateInvoiceTemplateRequest struct {
	Name string              `json:"name" validate:"required,min=1,max=200"`
	Data InvoiceTemplateData `json:"data" validate:"required"`
}

type UpdateInvoiceTemplateRequest struct {
	Name string              `json:"name" validate:"required,min=1,max=200"`
	Data InvoiceTemplateData `json:"data" validate:"required"`
}

type InvoiceTemplateResponse struct {
	ID        uint                `json:"id"`
	Name      string              `json:"name"`
	Data      InvoiceTemplateData `json:"data"`
	CreatedAt string              `json:"createdAt"`
}

// SaveInvoiceRequest records that an invoice was issued for a sale. The
// invoice number is generated server-side.
type SaveInvoiceRequest struct {
	SaleID     uint  `json:"saleId" validate:"required,min=1"`
	TemplateID *uint `json:"templateId"`
}

type InvoiceResponse struct {
	ID            uint   `json:"id"`
	SaleID        uint   `json:"saleId"`
	InvoiceNumber string `json:"invoiceNumber"`
	TemplateType  string `json:"templateType"`
	CreatedAt     string `json:"createdAt"`
}

// RenderInvoiceRequest selects the template for GET /v1/sales/:id/invoice.pdf
// and POST /v1/sales/:id/invoice/export. A nil TemplateID renders the
// built-in table layout.
type RenderInvoiceRequest struct {
	TemplateID *uint `json:"templateId" form:"templateId"`
}

type ExportInvoiceResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}
