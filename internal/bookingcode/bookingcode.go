// Package bookingcode generates the human-readable codes assigned to
// reservations and invoices.
package bookingcode

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	BookingCodePrefix   = "BK-"
	InvoiceNumberPrefix = "INV/"

	// keys are per day or per month, so only recent ones matter
	maxTrackedKeys = 64
)

// Sequencer hands out increasing numbers per key, starting at 1.
type Sequencer interface {
	Next(ctx context.Context, key string) (int64, error)
}

// BookingCodeKey is the per-day prefix shared by every booking code created on day.
func BookingCodeKey(day time.Time) string {
	return BookingCodePrefix + day.Format("20060102") + "-"
}

// FormatBookingCode renders BK-YYYYMMDD-NNNN. Sequences past 9999 widen the last part.
func FormatBookingCode(day time.Time, seq int64) string {
	return fmt.Sprintf("%s%04d", BookingCodeKey(day), seq)
}

// InvoiceNumberKey is the per-month prefix shared by every invoice issued in month.
func InvoiceNumberKey(month time.Time) string {
	return InvoiceNumberPrefix + month.Format("2006/01") + "/"
}

// FormatInvoiceNumber renders INV/YYYY/MM/NNNN.
func FormatInvoiceNumber(month time.Time, seq int64) string {
	return fmt.Sprintf("%s%04d", InvoiceNumberKey(month), seq)
}

// LastSeq reports the highest numeric suffix among stored codes with a
// prefix, or 0 when there are none.
type LastSeq func(ctx context.Context, prefix string) (int64, error)

// StoreSequencer derives the next number from the highest code already
// stored. Gaps left by deleted rows are never reused. It also remembers the
// last number it issued per key, so a retry after a collision in this process
// always moves forward; another process racing for the same number loses on
// the unique constraint and retries.
type StoreSequencer struct {
	last LastSeq

	mu     sync.Mutex
	issued map[string]int64
}

// NewStoreSequencer creates a sequencer backed by last.
func NewStoreSequencer(last LastSeq) *StoreSequencer {
	return &StoreSequencer{last: last, issued: make(map[string]int64)}
}

func (s *StoreSequencer) Next(ctx context.Context, key string) (int64, error) {
	stored, err := s.last(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("reading last code for %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := stored + 1
	if prev := s.issued[key]; prev >= next {
		next = prev + 1
	}
	if len(s.issued) > maxTrackedKeys {
		s.issued = make(map[string]int64)
	}
	s.issued[key] = next
	return next, nil
}
