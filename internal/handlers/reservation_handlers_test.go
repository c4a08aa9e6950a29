package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"villa_backend/internal/handlers"
	"villa_backend/internal/models"
	"villa_backend/internal/services"
	"villa_backend/mocks"
)

func newReservationHandler() (*handlers.ReservationHandler, *mocks.MockReservationService) {
	mockSvc := new(mocks.MockReservationService)
	return handlers.NewReservationHandler(mockSvc), mockSvc
}

func TestReservationHandler_CreateReservation_Success(t *testing.T) {
	h, mockSvc := newReservationHandler()

	created := &models.Reservation{ID: 1, BookingCode: "BK-20240701-0001", Status: models.ReservationStatusPending, FinalPrice: 900}
	mockSvc.On("CreateReservation", mock.Anything, mock.MatchedBy(func(req services.CreateReservationRequest) bool {
		return req.GuestName == "John" && req.TotalPrice == 1000 && req.Discount == 100
	})).Return(created, nil)

	body := []byte(`{"guestName":"John","villaName":"Kenanga","checkIn":"2024-07-01","checkOut":"2024-07-03","totalPrice":1000,"discount":100,"status":"pending"}`)
	c, w := newTestContext(http.MethodPost, "/api/reservations", body)
	h.CreateReservation(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "BK-20240701-0001", got.BookingCode)
	mockSvc.AssertExpectations(t)
}

func TestReservationHandler_CreateReservation_BindingFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing guest name", `{"villaName":"Kenanga","checkIn":"2024-07-01","checkOut":"2024-07-03"}`},
		{"unknown status", `{"guestName":"John","villaName":"Kenanga","checkIn":"2024-07-01","checkOut":"2024-07-03","status":"ARCHIVED"}`},
		{"negative price", `{"guestName":"John","villaName":"Kenanga","checkIn":"2024-07-01","checkOut":"2024-07-03","totalPrice":-5}`},
		{"malformed json", `{"guestName":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newReservationHandler()

			c, w := newTestContext(http.MethodPost, "/api/reservations", []byte(tt.body))
			h.CreateReservation(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_FAILED", decodeError(t, w).Error.Code)
			mockSvc.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
		})
	}
}

func TestReservationHandler_CreateReservation_ServiceErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{services.ErrInvalidReservationDates, http.StatusBadRequest, "VALIDATION_FAILED"},
		{fmt.Errorf("%w: discount cannot exceed total price", services.ErrReservationValidation), http.StatusBadRequest, "VALIDATION_FAILED"},
		{services.ErrClientForReservationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{services.ErrBookingCodeGeneration, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{errors.New("db down"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h, mockSvc := newReservationHandler()
			mockSvc.On("CreateReservation", mock.Anything, mock.Anything).Return(nil, tt.err)

			body := []byte(`{"guestName":"John","villaName":"Kenanga","checkIn":"2024-07-03","checkOut":"2024-07-01"}`)
			c, w := newTestContext(http.MethodPost, "/api/reservations", body)
			h.CreateReservation(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Error.Code)
		})
	}
}

func TestReservationHandler_GetReservationByID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setup      func(*mocks.MockReservationService)
		wantStatus int
	}{
		{"found", "5", func(m *mocks.MockReservationService) {
			m.On("GetReservationByID", mock.Anything, int64(5)).Return(&models.Reservation{ID: 5}, nil)
		}, http.StatusOK},
		{"not found", "5", func(m *mocks.MockReservationService) {
			m.On("GetReservationByID", mock.Anything, int64(5)).Return(nil, services.ErrReservationNotFound)
		}, http.StatusNotFound},
		{"bad id", "abc", func(*mocks.MockReservationService) {}, http.StatusBadRequest},
		{"zero id", "0", func(*mocks.MockReservationService) {}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newReservationHandler()
			tt.setup(mockSvc)

			c, w := newTestContext(http.MethodGet, "/api/reservations/"+tt.id, nil)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}
			h.GetReservationByID(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestReservationHandler_GetReservations_BindsFilters(t *testing.T) {
	h, mockSvc := newReservationHandler()

	mockSvc.On("GetReservations", mock.Anything, mock.MatchedBy(func(f models.ReservationFilters) bool {
		return f.Status != nil && *f.Status == "PROSES" &&
			f.Gro != nil && *f.Gro == "Ayu" &&
			f.CheckInFrom.Equal(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)) &&
			f.Page == 2 && f.PageSize == 10
	})).Return([]models.Reservation{{ID: 1}}, 11, nil)

	c, w := newTestContext(http.MethodGet, "/api/reservations?status=PROSES&gro=Ayu&checkInFrom=2024-07-01&page=2", nil)
	h.GetReservations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data     []models.Reservation `json:"data"`
		Total    int                  `json:"total"`
		Page     int                  `json:"page"`
		PageSize int                  `json:"pageSize"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 11, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	mockSvc.AssertExpectations(t)
}

func TestReservationHandler_GetReservations_BadDate(t *testing.T) {
	h, _ := newReservationHandler()

	c, w := newTestContext(http.MethodGet, "/api/reservations?checkInFrom=07-01-2024", nil)
	h.GetReservations(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationHandler_UpdateReservationStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"allowed", `{"status":"SELESAI"}`, nil, http.StatusOK},
		{"invalid transition", `{"status":"PENDING"}`, services.ErrInvalidStatusTransition, http.StatusConflict},
		{"unknown status rejected by binding", `{"status":"DONE"}`, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newReservationHandler()
			if tt.err != nil {
				mockSvc.On("UpdateReservationStatus", mock.Anything, int64(3), mock.Anything).Return(nil, tt.err)
			} else {
				mockSvc.On("UpdateReservationStatus", mock.Anything, int64(3), mock.Anything).
					Return(&models.Reservation{ID: 3, Status: models.ReservationStatusSelesai}, nil).Maybe()
			}

			c, w := newTestContext(http.MethodPatch, "/api/reservations/3/status", []byte(tt.body))
			c.Params = gin.Params{{Key: "id", Value: "3"}}
			h.UpdateReservationStatus(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestReservationHandler_UpdateReservation_Locked(t *testing.T) {
	h, mockSvc := newReservationHandler()
	mockSvc.On("UpdateReservation", mock.Anything, int64(3), mock.Anything).Return(nil, services.ErrReservationLocked)

	c, w := newTestContext(http.MethodPut, "/api/reservations/3", []byte(`{"guestName":"Jane"}`))
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.UpdateReservation(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, w).Error.Code)
}

func TestReservationHandler_CancelAndComplete(t *testing.T) {
	h, mockSvc := newReservationHandler()
	mockSvc.On("CancelReservation", mock.Anything, int64(4)).Return(&models.Reservation{ID: 4, Status: models.ReservationStatusBatal}, nil)
	mockSvc.On("CompleteReservation", mock.Anything, int64(5)).Return(nil, services.ErrReservationNotFound)

	c, w := newTestContext(http.MethodPost, "/api/reservations/4/cancel", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	h.CancelReservation(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodPost, "/api/reservations/5/complete", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.CompleteReservation(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationHandler_DeleteReservation_HasInvoices(t *testing.T) {
	h, mockSvc := newReservationHandler()
	mockSvc.On("DeleteReservation", mock.Anything, int64(4)).Return(services.ErrReservationHasInvoices)

	c, w := newTestContext(http.MethodDelete, "/api/reservations/4", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	h.DeleteReservation(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReservationHandler_GetReservationByBookingCode(t *testing.T) {
	h, mockSvc := newReservationHandler()
	mockSvc.On("GetReservationByBookingCode", mock.Anything, "BK-20240701-0001").Return(&models.Reservation{ID: 1}, nil)

	c, w := newTestContext(http.MethodGet, "/api/reservations/code/BK-20240701-0001", nil)
	c.Params = gin.Params{{Key: "code", Value: "BK-20240701-0001"}}
	h.GetReservationByBookingCode(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
