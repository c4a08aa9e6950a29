package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"villa_backend/internal/models"
	"villa_backend/internal/services"
	"villa_backend/pkg/utils"
)

// ReservationHandler holds the reservation service.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	RegisterValidators()
	return &ReservationHandler{reservationService: rs}
}

func (h *ReservationHandler) respondError(c *gin.Context, err error, op, fallback string) {
	utils.LogError(err, op)
	switch {
	case errors.Is(err, services.ErrReservationNotFound):
		respondNotFound(c, "Reservation not found.", err)
	case errors.Is(err, services.ErrClientForReservationNotFound):
		respondNotFound(c, "Client for reservation not found.", err)
	case errors.Is(err, services.ErrReservationValidation),
		errors.Is(err, services.ErrInvalidReservationDates):
		utils.RespondValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrReservationLocked):
		respondConflict(c, "Reservation can no longer be modified.", err)
	case errors.Is(err, services.ErrInvalidStatusTransition):
		respondConflict(c, "Reservation status change is not allowed.", err)
	case errors.Is(err, services.ErrReservationHasInvoices):
		respondConflict(c, "Reservation cannot be deleted as it has invoices.", err)
	default:
		utils.RespondInternalError(c, fallback)
	}
}

// CreateReservation handles POST /api/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreateReservation", err)
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "CreateReservation: Error from reservationService.CreateReservation", "Failed to create reservation.")
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations handles listing with filters and pagination.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	var filters models.ReservationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, "GetReservations", err)
		return
	}
	filters.Page, filters.PageSize = services.NormalizePage(filters.Page, filters.PageSize)

	reservations, total, err := h.reservationService.GetReservations(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err, "GetReservations: Error from reservationService.GetReservations", "Failed to fetch reservations.")
		return
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}

	c.JSON(http.StatusOK, ListResponse{Data: reservations, Total: total, Page: filters.Page, PageSize: filters.PageSize})
}

// GetReservationByID handles GET /api/reservations/:id.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "reservation")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservationByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "GetReservationByID: Error for ID "+c.Param("id"), "Failed to fetch reservation.")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// GetReservationByBookingCode handles GET /api/reservations/code/:code.
func (h *ReservationHandler) GetReservationByBookingCode(c *gin.Context) {
	reservation, err := h.reservationService.GetReservationByBookingCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err, "GetReservationByBookingCode: Error for code "+c.Param("code"), "Failed to fetch reservation.")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation handles PUT /api/reservations/:id.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "reservation")
	if !ok {
		return
	}

	var req services.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateReservation", err)
		return
	}

	reservation, err := h.reservationService.UpdateReservation(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "UpdateReservation: Error for ID "+c.Param("id"), "Failed to update reservation.")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservationStatus handles PATCH /api/reservations/:id/status.
func (h *ReservationHandler) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "reservation")
	if !ok {
		return
	}

	var req services.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateReservationStatus", err)
		return
	}

	reservation, err := h.reservationService.UpdateReservationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err, "UpdateReservationStatus: Error for ID "+c.Param("id"), "Failed to update reservation status.")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CancelReservation handles POST /api/reservations/:id/cancel.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "reservation")
	if !ok {
		return
	}

	reservation, err := h.reservationService.CancelReservation(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "CancelReservation: Error for ID "+c.Param("id"), "Failed to cancel reservation.")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CompleteReservation handles POST /api/reservations/:id/complete.
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "reservation")
	if !ok {
		return
	}

	reservation, err := h.reservationService.CompleteReservation(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "CompleteReservation: Error for ID "+c.Param("id"), "Failed to complete reservation.")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation handles DELETE /api/reservations/:id.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "reservation")
	if !ok {
		return
	}

	if err := h.reservationService.DeleteReservation(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "DeleteReservation: Error for ID "+c.Param("id"), "Failed to delete reservation.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}
