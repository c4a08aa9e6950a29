package models

import (
	"fmt"
	"strings"
	"time"
)

// ReservationStatus is the closed set of reservation lifecycle states.
type ReservationStatus string

const (
	ReservationStatusPending ReservationStatus = "PENDING"
	ReservationStatusProses  ReservationStatus = "PROSES"  // in progress
	ReservationStatusSelesai ReservationStatus = "SELESAI" // completed
	ReservationStatusBatal   ReservationStatus = "BATAL"   // cancelled
)

// AllReservationStatuses lists every valid status in lifecycle order.
var AllReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusProses,
	ReservationStatusSelesai,
	ReservationStatusBatal,
}

// ParseReservationStatus validates a raw status string. Matching is case-insensitive.
func ParseReservationStatus(raw string) (ReservationStatus, error) {
	s := ReservationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if s.IsValid() {
		return s, nil
	}
	return "", fmt.Errorf("invalid reservation status %q", raw)
}

// IsValid reports whether s is one of the known statuses.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusProses, ReservationStatusSelesai, ReservationStatusBatal:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusSelesai || s == ReservationStatusBatal
}

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending: {ReservationStatusProses, ReservationStatusSelesai, ReservationStatusBatal},
	ReservationStatusProses:  {ReservationStatusSelesai, ReservationStatusBatal},
}

// CanTransitionTo reports whether a reservation in status s may move to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is a villa booking as stored by the reservation repository.
type Reservation struct {
	ID             int64             `json:"id" db:"id"`
	BookingCode    string            `json:"bookingCode" db:"booking_code"`
	ClientID       *int64            `json:"clientId,omitempty" db:"client_id"`
	GuestName      string            `json:"guestName" db:"guest_name"`
	VillaName      string            `json:"villaName" db:"villa_name"`
	Gro            *string           `json:"gro,omitempty" db:"gro"`
	Status         ReservationStatus `json:"status" db:"status"`
	CheckIn        time.Time         `json:"checkIn" db:"check_in"`
	CheckOut       time.Time         `json:"checkOut" db:"check_out"`
	NumberOfGuests int               `json:"numberOfGuests" db:"number_of_guests"`
	TotalPrice     float64           `json:"totalPrice" db:"total_price"`
	Discount       float64           `json:"discount" db:"discount"`
	FinalPrice     float64           `json:"finalPrice" db:"final_price"`
	Notes          *string           `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
}

// Nights returns the number of nights between check-in and check-out.
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// ReservationRecord is the read-only projection consumed by the aggregator.
// A nil Gro means no staff member is credited; a nil FinalPrice means the
// store had no usable amount.
type ReservationRecord struct {
	ID          string            `json:"id" db:"id"`
	BookingCode string            `json:"bookingCode" db:"booking_code"`
	Gro         *string           `json:"gro,omitempty" db:"gro"`
	Status      ReservationStatus `json:"status" db:"status"`
	FinalPrice  *float64          `json:"finalPrice" db:"final_price"`
	CheckIn     time.Time         `json:"checkIn" db:"check_in"`
	CheckOut    time.Time         `json:"checkOut" db:"check_out"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
}

// ReservationRecordFilter narrows the records fetched for aggregation.
// The zero value fetches everything.
type ReservationRecordFilter struct {
	Gro         *string
	CreatedFrom *time.Time
}

// ReservationFilters defines the available filters for listing reservations.
// Zero times mean no bound on that side.
type ReservationFilters struct {
	Status      *string   `form:"status"`
	Gro         *string   `form:"gro"`
	ClientID    *int64    `form:"clientId"`
	CheckInFrom time.Time `form:"checkInFrom" time_format:"2006-01-02"`
	CheckInTo   time.Time `form:"checkInTo" time_format:"2006-01-02"`
	Search      *string   `form:"search"`
	Page        int       `form:"page"`
	PageSize    int       `form:"pageSize"`
}
