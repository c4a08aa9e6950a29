package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"villa_backend/internal/reports"
	"villa_backend/internal/services"
	"villa_backend/pkg/utils"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printGroSummary(ctx context.Context, w io.Writer, as services.AnalyticsService, asJSON bool) error {
	entries, err := as.GroSummary(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		if entries == nil {
			return writeJSON(w, []struct{}{})
		}
		return writeJSON(w, entries)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GRO\tRESERVATIONS\tREVENUE\tAVERAGE\tCOMPLETED\tPENDING\tCANCELLED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%d\t%d\t%d\n",
			e.Gro, e.TotalReservations, e.TotalRevenue, e.AverageRevenue,
			e.CompletedReservations, e.PendingReservations, e.CancelledReservations)
	}
	return tw.Flush()
}

func printDashboard(ctx context.Context, w io.Writer, as services.AnalyticsService, asJSON bool) error {
	stats, err := as.DashboardStats(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, stats)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total reservations\t%d\n", stats.TotalReservations)
	fmt.Fprintf(tw, "Total revenue\t%.2f\n", stats.TotalRevenue)
	fmt.Fprintf(tw, "Pending\t%d\n", stats.PendingReservations)
	fmt.Fprintf(tw, "Completed\t%d\n", stats.CompletedReservations)
	fmt.Fprintf(tw, "This month, reservations\t%d\n", stats.MonthlyReservations)
	fmt.Fprintf(tw, "This month, revenue\t%.2f\n", stats.MonthlyRevenue)
	return tw.Flush()
}

func printMonthlyRevenue(ctx context.Context, w io.Writer, as services.AnalyticsService, year int, asJSON bool) error {
	points, err := as.MonthlyRevenue(ctx, year)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, points)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tRESERVATIONS\tREVENUE")
	for _, p := range points {
		fmt.Fprintf(tw, "%04d-%02d\t%d\t%.2f\n", p.Year, p.Month, p.Reservations, p.Revenue)
	}
	return tw.Flush()
}

func exportGroSummary(ctx context.Context, as services.AnalyticsService, out string) error {
	now := time.Now()
	if out == "" {
		out = reports.GroSummaryFilename(now)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	if err := writeGroWorkbook(ctx, f, as, now); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}
	utils.LogInfo("GRO summary exported", map[string]interface{}{"file": out})
	return nil
}

func writeGroWorkbook(ctx context.Context, w io.Writer, as services.AnalyticsService, now time.Time) error {
	entries, err := as.GroSummary(ctx)
	if err != nil {
		return err
	}
	stats, err := as.DashboardStats(ctx)
	if err != nil {
		return err
	}
	return reports.WriteGroSummary(w, entries, stats, now)
}
