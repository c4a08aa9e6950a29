package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"villa_backend/internal/bookingcode"
	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
	"villa_backend/pkg/utils"
)

// --- Custom Service Errors for Reservation ---
var (
	ErrReservationNotFound          = errors.New("reservation not found")
	ErrReservationValidation        = errors.New("reservation data validation error")
	ErrInvalidReservationDates      = errors.New("check-out date cannot be before check-in date")
	ErrClientForReservationNotFound = errors.New("client specified for reservation not found")
	ErrReservationLocked            = errors.New("completed or cancelled reservations cannot be modified")
	ErrInvalidStatusTransition      = errors.New("invalid reservation status transition")
	ErrBookingCodeGeneration        = errors.New("could not generate a unique booking code")
	ErrReservationHasInvoices       = errors.New("reservation cannot be deleted as it has invoices")
)

// maxCodeAttempts bounds retries when a generated code collides with a stored one.
const maxCodeAttempts = 3

// --- Reservation DTOs ---
type CreateReservationRequest struct {
	ClientID       *int64  `json:"clientId"`
	GuestName      string  `json:"guestName" binding:"required"`
	VillaName      string  `json:"villaName" binding:"required"`
	Gro            *string `json:"gro"`
	Status         *string `json:"status" binding:"omitempty,reservation_status"`
	CheckIn        string  `json:"checkIn" binding:"required"`  // YYYY-MM-DD
	CheckOut       string  `json:"checkOut" binding:"required"` // YYYY-MM-DD
	NumberOfGuests *int    `json:"numberOfGuests" binding:"omitempty,min=1"`
	TotalPrice     float64 `json:"totalPrice" binding:"min=0"`
	Discount       float64 `json:"discount" binding:"min=0"`
	Notes          *string `json:"notes"`
}

// UpdateReservationRequest is a partial update. Status changes go through
// UpdateReservationStatus so transitions are checked.
type UpdateReservationRequest struct {
	ClientID       *int64   `json:"clientId"`
	GuestName      *string  `json:"guestName"`
	VillaName      *string  `json:"villaName"`
	Gro            *string  `json:"gro"` // empty string clears the GRO
	CheckIn        *string  `json:"checkIn"`
	CheckOut       *string  `json:"checkOut"`
	NumberOfGuests *int     `json:"numberOfGuests" binding:"omitempty,min=1"`
	TotalPrice     *float64 `json:"totalPrice" binding:"omitempty,min=0"`
	Discount       *float64 `json:"discount" binding:"omitempty,min=0"`
	Notes          *string  `json:"notes"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required,reservation_status"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*models.Reservation, error)
	GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error)
	GetReservationByBookingCode(ctx context.Context, code string) (*models.Reservation, error)
	GetReservations(ctx context.Context, filters models.ReservationFilters) ([]models.Reservation, int, error)
	UpdateReservation(ctx context.Context, id int64, req UpdateReservationRequest) (*models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (*models.Reservation, error)
	CompleteReservation(ctx context.Context, id int64) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
}

type reservationService struct {
	reservationRepo repositories.ReservationRepository
	clientRepo      repositories.ClientRepository
	sequencer       bookingcode.Sequencer
	db              repositories.SQLExecutor
	loc             *time.Location
	now             func() time.Time
}

// NewReservationService creates a new instance of ReservationService. Booking
// codes are dated in loc.
func NewReservationService(
	rr repositories.ReservationRepository,
	cr repositories.ClientRepository,
	seq bookingcode.Sequencer,
	db repositories.SQLExecutor,
	loc *time.Location,
) ReservationService {
	if loc == nil {
		loc = time.UTC
	}
	return &reservationService{
		reservationRepo: rr,
		clientRepo:      cr,
		sequencer:       seq,
		db:              db,
		loc:             loc,
		now:             time.Now,
	}
}

// computeFinalPrice validates the amounts and returns total minus discount.
func computeFinalPrice(total, discount float64) (float64, error) {
	if total < 0 || discount < 0 {
		return 0, fmt.Errorf("%w: prices cannot be negative", ErrReservationValidation)
	}
	t := decimal.NewFromFloat(total)
	d := decimal.NewFromFloat(discount)
	if d.GreaterThan(t) {
		return 0, fmt.Errorf("%w: discount cannot exceed total price", ErrReservationValidation)
	}
	return t.Sub(d).InexactFloat64(), nil
}

func parseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := parseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: checkIn: %v", ErrReservationValidation, err)
	}
	checkOut, err := parseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: checkOut: %v", ErrReservationValidation, err)
	}
	if checkOut.Before(checkIn) {
		return time.Time{}, time.Time{}, ErrInvalidReservationDates
	}
	return checkIn, checkOut, nil
}

func (s *reservationService) ensureClientExists(ctx context.Context, clientID *int64) error {
	if clientID == nil {
		return nil
	}
	if _, err := s.clientRepo.GetClientByID(ctx, *clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrClientForReservationNotFound, *clientID)
		}
		return fmt.Errorf("failed to validate client for reservation: %w", err)
	}
	return nil
}

func (s *reservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*models.Reservation, error) {
	checkIn, checkOut, err := parseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	finalPrice, err := computeFinalPrice(req.TotalPrice, req.Discount)
	if err != nil {
		return nil, err
	}

	guestName := strings.TrimSpace(req.GuestName)
	villaName := strings.TrimSpace(req.VillaName)
	if guestName == "" || villaName == "" {
		return nil, fmt.Errorf("%w: guest name and villa name are required", ErrReservationValidation)
	}

	status := models.ReservationStatusPending
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status, err = models.ParseReservationStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReservationValidation, err)
		}
	}

	guests := 1
	if req.NumberOfGuests != nil {
		guests = *req.NumberOfGuests
	}
	if guests < 1 {
		return nil, fmt.Errorf("%w: number of guests must be at least 1", ErrReservationValidation)
	}

	if err := s.ensureClientExists(ctx, req.ClientID); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	reservation := &models.Reservation{
		ClientID:       req.ClientID,
		GuestName:      guestName,
		VillaName:      villaName,
		Gro:            utils.NormalizeOptional(req.Gro),
		Status:         status,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: guests,
		TotalPrice:     req.TotalPrice,
		Discount:       req.Discount,
		FinalPrice:     finalPrice,
		Notes:          utils.NormalizeOptional(req.Notes),
		CreatedAt:      now.UTC(),
	}

	key := bookingcode.BookingCodeKey(now)
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		seq, seqErr := s.sequencer.Next(ctx, key)
		if seqErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrBookingCodeGeneration, seqErr)
		}
		reservation.BookingCode = bookingcode.FormatBookingCode(now, seq)

		err = s.reservationRepo.CreateReservation(ctx, s.db, reservation)
		if err == nil {
			utils.LogInfo("Reservation created", map[string]interface{}{
				"reservation_id": reservation.ID,
				"booking_code":   reservation.BookingCode,
			})
			return reservation, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to create reservation in repository: %w", err)
		}
		utils.LogWarn("Booking code collision, retrying", map[string]interface{}{
			"booking_code": reservation.BookingCode,
			"attempt":      attempt,
		})
	}
	return nil, ErrBookingCodeGeneration
}

func (s *reservationService) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by ID: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) GetReservationByBookingCode(ctx context.Context, code string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByBookingCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by booking code: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) GetReservations(ctx context.Context, filters models.ReservationFilters) ([]models.Reservation, int, error) {
	filters.Page, filters.PageSize = NormalizePage(filters.Page, filters.PageSize)

	if filters.Status != nil && strings.TrimSpace(*filters.Status) != "" {
		status, err := models.ParseReservationStatus(*filters.Status)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrReservationValidation, err)
		}
		normalized := string(status)
		filters.Status = &normalized
	}
	if !filters.CheckInFrom.IsZero() && !filters.CheckInTo.IsZero() && filters.CheckInTo.Before(filters.CheckInFrom) {
		return nil, 0, fmt.Errorf("%w: checkInTo is before checkInFrom", ErrReservationValidation)
	}

	reservations, total, err := s.reservationRepo.GetReservations(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get reservations: %w", err)
	}
	return reservations, total, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, id int64, req UpdateReservationRequest) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: reservation is %s", ErrReservationLocked, reservation.Status)
	}

	if req.ClientID != nil {
		if err := s.ensureClientExists(ctx, req.ClientID); err != nil {
			return nil, err
		}
		reservation.ClientID = req.ClientID
	}
	if req.GuestName != nil {
		if strings.TrimSpace(*req.GuestName) == "" {
			return nil, fmt.Errorf("%w: guest name cannot be empty", ErrReservationValidation)
		}
		reservation.GuestName = strings.TrimSpace(*req.GuestName)
	}
	if req.VillaName != nil {
		if strings.TrimSpace(*req.VillaName) == "" {
			return nil, fmt.Errorf("%w: villa name cannot be empty", ErrReservationValidation)
		}
		reservation.VillaName = strings.TrimSpace(*req.VillaName)
	}
	if req.Gro != nil {
		reservation.Gro = utils.NormalizeOptional(req.Gro)
	}

	if req.CheckIn != nil || req.CheckOut != nil {
		checkInStr := reservation.CheckIn.Format(dateLayout)
		checkOutStr := reservation.CheckOut.Format(dateLayout)
		if req.CheckIn != nil {
			checkInStr = *req.CheckIn
		}
		if req.CheckOut != nil {
			checkOutStr = *req.CheckOut
		}
		checkIn, checkOut, dateErr := parseStayDates(checkInStr, checkOutStr)
		if dateErr != nil {
			return nil, dateErr
		}
		reservation.CheckIn = checkIn
		reservation.CheckOut = checkOut
	}

	if req.NumberOfGuests != nil {
		if *req.NumberOfGuests < 1 {
			return nil, fmt.Errorf("%w: number of guests must be at least 1", ErrReservationValidation)
		}
		reservation.NumberOfGuests = *req.NumberOfGuests
	}
	if req.TotalPrice != nil {
		reservation.TotalPrice = *req.TotalPrice
	}
	if req.Discount != nil {
		reservation.Discount = *req.Discount
	}
	reservation.FinalPrice, err = computeFinalPrice(reservation.TotalPrice, reservation.Discount)
	if err != nil {
		return nil, err
	}
	if req.Notes != nil {
		reservation.Notes = utils.NormalizeOptional(req.Notes)
	}

	if err := s.reservationRepo.UpdateReservation(ctx, s.db, reservation); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation in repository: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error) {
	next, err := models.ParseReservationStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationValidation, err)
	}
	return s.transition(ctx, id, next)
}

func (s *reservationService) transition(ctx context.Context, id int64, next models.ReservationStatus) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, reservation.Status, next)
	}

	previous := reservation.Status
	reservation.Status = next
	if err := s.reservationRepo.UpdateReservation(ctx, s.db, reservation); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	utils.LogInfo("Reservation status changed", map[string]interface{}{
		"reservation_id": reservation.ID,
		"from":           previous,
		"to":             next,
	})
	return reservation, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationStatusBatal)
}

func (s *reservationService) CompleteReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationStatusSelesai)
}

func (s *reservationService) DeleteReservation(ctx context.Context, id int64) error {
	if _, err := s.GetReservationByID(ctx, id); err != nil {
		return err
	}
	err := s.reservationRepo.DeleteReservation(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		if errors.Is(err, repositories.ErrReferenced) {
			return ErrReservationHasInvoices
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}
