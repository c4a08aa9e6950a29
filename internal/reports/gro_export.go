package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"villa_backend/internal/models"
)

const (
	GroSheet       = "GRO Summary"
	DashboardSheet = "Dashboard"

	// ContentType is the MIME type of the workbooks written here.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var groHeader = []interface{}{
	"GRO",
	"Total Reservations",
	"Total Revenue",
	"Average Revenue",
	"Completed",
	"Pending",
	"Cancelled",
}

// GroSummaryFilename names the export after the day it was generated.
func GroSummaryFilename(generatedAt time.Time) string {
	return fmt.Sprintf("gro-summary-%s.xlsx", generatedAt.Format("20060102"))
}

// WriteGroSummary writes the GRO roll-up as an XLSX workbook to w, one row per
// entry in the order given. When stats is not nil a second sheet carries the
// dashboard totals.
func WriteGroSummary(w io.Writer, entries []models.GroSummaryEntry, stats *models.DashboardStats, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), GroSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	if err := f.SetSheetRow(GroSheet, "A1", &groHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(GroSheet, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, e := range entries {
		row := []interface{}{
			e.Gro,
			e.TotalReservations,
			e.TotalRevenue,
			e.AverageRevenue,
			e.CompletedReservations,
			e.PendingReservations,
			e.CancelledReservations,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(GroSheet, cell, &row); err != nil {
			return fmt.Errorf("write row for %q: %w", e.Gro, err)
		}
	}
	if len(entries) > 0 {
		last := len(entries) + 1
		if err := f.SetCellStyle(GroSheet, "C2", fmt.Sprintf("D%d", last), moneyStyle); err != nil {
			return fmt.Errorf("style revenue columns: %w", err)
		}
	}
	_ = f.SetColWidth(GroSheet, "A", "A", 24)
	_ = f.SetColWidth(GroSheet, "B", "G", 18)

	if stats != nil {
		if err := writeDashboardSheet(f, stats, generatedAt, headerStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeDashboardSheet(f *excelize.File, stats *models.DashboardStats, generatedAt time.Time, headerStyle int) error {
	if _, err := f.NewSheet(DashboardSheet); err != nil {
		return fmt.Errorf("create dashboard sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Generated At", generatedAt.Format(time.RFC3339)},
		{"Total Reservations", stats.TotalReservations},
		{"Total Revenue", stats.TotalRevenue},
		{"Pending Reservations", stats.PendingReservations},
		{"Completed Reservations", stats.CompletedReservations},
		{"Monthly Reservations", stats.MonthlyReservations},
		{"Monthly Revenue", stats.MonthlyRevenue},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(DashboardSheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write dashboard row: %w", err)
		}
	}
	if err := f.SetCellStyle(DashboardSheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("style dashboard header: %w", err)
	}
	_ = f.SetColWidth(DashboardSheet, "A", "B", 26)
	return nil
}
