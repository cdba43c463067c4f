package handler

import (
	"net/http"

	"ledgerdesk/internal/dto"
	"ledgerdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) Sales(c *gin.Context) {
	var period dto.ReportPeriod
	if !bindQuery(c, &period) {
		return
	}
	resp, err := h.svc.SalesReport(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Expenses(c *gin.Context) {
	var period dto.ReportPeriod
	if !bindQuery(c, &period) {
		return
	}
	resp, err := h.svc.ExpensesReport(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Profit(c *gin.Context) {
	var period dto.ReportPeriod
	if !bindQuery(c, &period) {
		return
	}
	resp, err := h.svc.ProfitReport(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Products(c *gin.Context) {
	var period dto.ReportPeriod
	if !bindQuery(c, &period) {
		return
	}
	resp, err := h.svc.ProductSales(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Customers(c *gin.Context) {
	var period dto.ReportPeriod
	if !bindQuery(c, &period) {
		return
	}
	resp, err := h.svc.CustomerSales(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Cheques(c *gin.Context) {
	resp, err := h.svc.AllCheques(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) UpcomingCheques(c *gin.Context) {
	var filter dto.UpcomingChequesFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.UpcomingCheques(c.Request.Context(), filter.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
