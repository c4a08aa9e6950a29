package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"villa_backend/internal/models"
	"villa_backend/internal/services"
	"villa_backend/pkg/utils"
)

// InvoiceHandler holds the invoice service.
type InvoiceHandler struct {
	invoiceService services.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(is services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: is}
}

func (h *InvoiceHandler) respondError(c *gin.Context, err error, op, fallback string) {
	utils.LogError(err, op)
	switch {
	case errors.Is(err, services.ErrInvoiceNotFound):
		respondNotFound(c, "Invoice not found.", err)
	case errors.Is(err, services.ErrReservationForInvoiceMissing):
		respondNotFound(c, "Reservation for invoice not found.", err)
	case errors.Is(err, services.ErrInvoiceValidation):
		utils.RespondValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrCancelledReservationInvoice):
		respondConflict(c, "Cancelled reservations cannot be invoiced.", err)
	case errors.Is(err, services.ErrInvoiceStatusUpdate):
		respondConflict(c, "Invoice status change is not allowed.", err)
	default:
		utils.RespondInternalError(c, fallback)
	}
}

// CreateInvoice handles POST /api/invoices.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req services.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreateInvoice", err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "CreateInvoice: Error from invoiceService.CreateInvoice", "Failed to create invoice.")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices handles listing invoices by reservation and status.
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	var filters models.InvoiceFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, "GetInvoices", err)
		return
	}
	filters.Page, filters.PageSize = services.NormalizePage(filters.Page, filters.PageSize)

	invoices, total, err := h.invoiceService.GetInvoices(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err, "GetInvoices: Error from invoiceService.GetInvoices", "Failed to fetch invoices.")
		return
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}

	c.JSON(http.StatusOK, ListResponse{Data: invoices, Total: total, Page: filters.Page, PageSize: filters.PageSize})
}

// GetInvoiceByID handles GET /api/invoices/:id.
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "GetInvoiceByID: Error for ID "+c.Param("id"), "Failed to fetch invoice.")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// MarkInvoicePaid handles POST /api/invoices/:id/pay.
func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.MarkInvoicePaid(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "MarkInvoicePaid: Error for ID "+c.Param("id"), "Failed to mark invoice as paid.")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// VoidInvoice handles POST /api/invoices/:id/void.
func (h *InvoiceHandler) VoidInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "VoidInvoice: Error for ID "+c.Param("id"), "Failed to void invoice.")
		return
	}
	c.JSON(http.StatusOK, invoice)
}
