package models

import "time"

// InvoiceStatus defines the type for invoice statuses
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "UNPAID"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
	InvoiceStatusVoid   InvoiceStatus = "VOID"
)

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	default:
		return false
	}
}

// Invoice is a bill issued against a reservation.
type Invoice struct {
	ID            int64         `json:"id" db:"id"`
	InvoiceNumber string        `json:"invoiceNumber" db:"invoice_number"`
	ReservationID int64         `json:"reservationId" db:"reservation_id"`
	Amount        float64       `json:"amount" db:"amount"`
	Status        InvoiceStatus `json:"status" db:"status"`
	IssuedAt      time.Time     `json:"issuedAt" db:"issued_at"`
	DueDate       *time.Time    `json:"dueDate,omitempty" db:"due_date"`
	PaidAt        *time.Time    `json:"paidAt,omitempty" db:"paid_at"`
	Notes         *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// InvoiceFilters defines the available filters for listing invoices.
type InvoiceFilters struct {
	ReservationID *int64  `form:"reservationId"`
	Status        *string `form:"status"`
	Page          int     `form:"page"`
	PageSize      int     `form:"pageSize"`
}
