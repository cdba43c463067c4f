package handler

import (
	"net/http"
	"strconv"

	"ledgerdesk/internal/apierror"
	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type InvoicesHandler struct{ svc service.InvoiceService }

func NewInvoicesHandler(svc service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc}
}

// ── Templates ────────────────────────────────────────────────────────────────

func (h *InvoicesHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateInvoiceTemplateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InvoicesHandler) GetTemplate(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	resp, err := h.svc.GetTemplate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) ListTemplates(c *gin.Context) {
	resp, err := h.svc.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) UpdateTemplate(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req dto.UpdateInvoiceTemplateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) DeleteTemplate(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.svc.DeleteTemplate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Saved invoices ───────────────────────────────────────────────────────────

func (h *InvoicesHandler) Save(c *gin.Context) {
	var req dto.SaveInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InvoicesHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	resp, err := h.svc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) List(c *gin.Context) {
	resp, err := h.svc.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.svc.DeleteInvoice(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Rendering ────────────────────────────────────────────────────────────────

// RenderPDF handles GET /v1/sales/:id/invoice.pdf and streams the document
// inline so the UI can preview it.
func (h *InvoicesHandler) RenderPDF(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	templateID, ok := queryTemplateID(c)
	if !ok {
		return
	}
	pdfBytes, name, err := h.svc.RenderPDF(c.Request.Context(), id, templateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Export handles POST /v1/sales/:id/invoice/export. The PDF is written to
// the export directory by the worker pool; the response carries the
// destination path.
func (h *InvoicesHandler) Export(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req dto.RenderInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	resp, err := h.svc.ExportAsync(c.Request.Context(), id, req.TemplateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

func queryTemplateID(c *gin.Context) (*uint, bool) {
	raw := c.Query("templateId")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid templateId"))
		return nil, false
	}
	u := uint(id)
	return &u, true
}
