package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"villa_backend/internal/aggregator"
	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
)

var (
	ErrAnalyticsSourceUnavailable = errors.New("reservation records could not be loaded")
	ErrInvalidReportYear          = errors.New("invalid report year")
)

// AnalyticsService serves the GRO and dashboard roll-ups. Every call loads the
// current records and aggregates them; nothing is cached between calls.
type AnalyticsService interface {
	GroSummary(ctx context.Context) ([]models.GroSummaryEntry, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	MonthlyRevenue(ctx context.Context, year int) ([]models.MonthlyRevenuePoint, error)
	GroReservations(ctx context.Context, gro string) ([]models.ReservationRecord, error)
}

type analyticsService struct {
	source repositories.ReservationSource
	loc    *time.Location
	now    func() time.Time
}

// NewAnalyticsService creates an AnalyticsService reading from source. The
// current month is computed in loc; now defaults to time.Now.
func NewAnalyticsService(source repositories.ReservationSource, loc *time.Location, now func() time.Time) AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &analyticsService{source: source, loc: loc, now: now}
}

func (s *analyticsService) load(ctx context.Context, filter models.ReservationRecordFilter) ([]models.ReservationRecord, error) {
	records, err := s.source.ListReservationRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyticsSourceUnavailable, err)
	}
	return records, nil
}

func (s *analyticsService) GroSummary(ctx context.Context) ([]models.GroSummaryEntry, error) {
	records, err := s.load(ctx, models.ReservationRecordFilter{})
	if err != nil {
		return nil, err
	}
	return aggregator.SummarizeByGro(records), nil
}

func (s *analyticsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	records, err := s.load(ctx, models.ReservationRecordFilter{})
	if err != nil {
		return nil, err
	}
	stats := aggregator.ComputeDashboardStats(records, s.now().In(s.loc))
	return &stats, nil
}

func (s *analyticsService) MonthlyRevenue(ctx context.Context, year int) ([]models.MonthlyRevenuePoint, error) {
	if year == 0 {
		year = s.now().In(s.loc).Year()
	}
	if year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidReportYear, year)
	}
	records, err := s.load(ctx, models.ReservationRecordFilter{})
	if err != nil {
		return nil, err
	}
	return aggregator.MonthlyRevenue(records, year, s.loc), nil
}

func (s *analyticsService) GroReservations(ctx context.Context, gro string) ([]models.ReservationRecord, error) {
	gro = strings.TrimSpace(gro)
	return s.load(ctx, models.ReservationRecordFilter{Gro: &gro})
}
