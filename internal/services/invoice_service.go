package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"villa_backend/internal/bookingcode"
	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
	"villa_backend/pkg/utils"
)

// --- Custom Service Errors for Invoice ---
var (
	ErrInvoiceNotFound              = errors.New("invoice not found")
	ErrInvoiceValidation            = errors.New("invoice data validation error")
	ErrInvoiceStatusUpdate          = errors.New("invalid invoice status transition")
	ErrReservationForInvoiceMissing = errors.New("reservation specified for invoice not found")
	ErrCancelledReservationInvoice  = errors.New("cancelled reservations cannot be invoiced")
	ErrInvoiceNumberGeneration      = errors.New("could not generate a unique invoice number")
)

// --- Invoice DTOs ---
type CreateInvoiceRequest struct {
	ReservationID int64    `json:"reservationId" binding:"required"`
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"` // defaults to the reservation's final price
	DueDate       *string  `json:"dueDate"`                         // YYYY-MM-DD
	Notes         *string  `json:"notes"`
}

// --- InvoiceService Interface ---
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*models.Invoice, error)
	GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error)
	GetInvoices(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, int, error)
	MarkInvoicePaid(ctx context.Context, id int64) (*models.Invoice, error)
	VoidInvoice(ctx context.Context, id int64) (*models.Invoice, error)
}

type invoiceService struct {
	invoiceRepo     repositories.InvoiceRepository
	reservationRepo repositories.ReservationRepository
	sequencer       bookingcode.Sequencer
	db              repositories.SQLExecutor
	loc             *time.Location
	now             func() time.Time
}

// NewInvoiceService creates a new instance of InvoiceService. Invoice numbers
// are dated in loc.
func NewInvoiceService(
	ir repositories.InvoiceRepository,
	rr repositories.ReservationRepository,
	seq bookingcode.Sequencer,
	db repositories.SQLExecutor,
	loc *time.Location,
) InvoiceService {
	if loc == nil {
		loc = time.UTC
	}
	return &invoiceService{
		invoiceRepo:     ir,
		reservationRepo: rr,
		sequencer:       seq,
		db:              db,
		loc:             loc,
		now:             time.Now,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*models.Invoice, error) {
	reservation, err := s.reservationRepo.GetReservationByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrReservationForInvoiceMissing, req.ReservationID)
		}
		return nil, fmt.Errorf("failed to load reservation for invoice: %w", err)
	}
	if reservation.Status == models.ReservationStatusBatal {
		return nil, ErrCancelledReservationInvoice
	}

	amount := reservation.FinalPrice
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvoiceValidation)
	}

	now := s.now().In(s.loc)
	invoice := &models.Invoice{
		ReservationID: reservation.ID,
		Amount:        amount,
		Status:        models.InvoiceStatusUnpaid,
		IssuedAt:      now.UTC(),
		Notes:         utils.NormalizeOptional(req.Notes),
	}

	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		due, dateErr := parseDate(*req.DueDate)
		if dateErr != nil {
			return nil, fmt.Errorf("%w: dueDate: %v", ErrInvoiceValidation, dateErr)
		}
		invoice.DueDate = &due
	}

	key := bookingcode.InvoiceNumberKey(now)
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		seq, seqErr := s.sequencer.Next(ctx, key)
		if seqErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvoiceNumberGeneration, seqErr)
		}
		invoice.InvoiceNumber = bookingcode.FormatInvoiceNumber(now, seq)

		err = s.invoiceRepo.CreateInvoice(ctx, s.db, invoice)
		if err == nil {
			utils.LogInfo("Invoice issued", map[string]interface{}{
				"invoice_id":     invoice.ID,
				"invoice_number": invoice.InvoiceNumber,
				"reservation_id": invoice.ReservationID,
			})
			return invoice, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to create invoice in repository: %w", err)
		}
	}
	return nil, ErrInvoiceNumberGeneration
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by ID: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) GetInvoices(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, int, error) {
	filters.Page, filters.PageSize = NormalizePage(filters.Page, filters.PageSize)
	if filters.Status != nil && *filters.Status != "" {
		status := models.InvoiceStatus(strings.ToUpper(strings.TrimSpace(*filters.Status)))
		if !status.IsValid() {
			return nil, 0, fmt.Errorf("%w: invalid status %q", ErrInvoiceValidation, *filters.Status)
		}
		normalized := string(status)
		filters.Status = &normalized
	}

	invoices, total, err := s.invoiceRepo.GetInvoices(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get invoices: %w", err)
	}
	return invoices, total, nil
}

// updateInvoiceStatus moves an UNPAID invoice to next. PAID and VOID are final.
func (s *invoiceService) updateInvoiceStatus(ctx context.Context, id int64, next models.InvoiceStatus) (*models.Invoice, error) {
	invoice, err := s.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoiceStatusUnpaid {
		return nil, fmt.Errorf("%w: invoice is already %s", ErrInvoiceStatusUpdate, invoice.Status)
	}

	invoice.Status = next
	if next == models.InvoiceStatusPaid {
		paidAt := s.now().UTC()
		invoice.PaidAt = &paidAt
	}

	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, s.db, invoice); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInvoiceStatusUpdate, err)
	}
	return invoice, nil
}

func (s *invoiceService) MarkInvoicePaid(ctx context.Context, id int64) (*models.Invoice, error) {
	return s.updateInvoiceStatus(ctx, id, models.InvoiceStatusPaid)
}

func (s *invoiceService) VoidInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	return s.updateInvoiceStatus(ctx, id, models.InvoiceStatusVoid)
}
