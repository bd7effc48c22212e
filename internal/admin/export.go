package admin

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSummary     = "Summary"
	SheetSegments    = "Segments"
	SheetEvents      = "Top Events"
	SheetLocalEvents = "Site Events"
	SheetInsights    = "Insights"
)

// WriteWorkbook writes r as an xlsx workbook to w.
func WriteWorkbook(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("admin: rename sheet: %w", err)
	}
	if err := writeSummary(f, r); err != nil {
		return err
	}

	segments := r.SegmentChart()
	if err := writeTable(f, SheetSegments, []any{"segment", "users"}, chartRows(segments)); err != nil {
		return err
	}
	events := r.EventsChart()
	if err := writeTable(f, SheetEvents, []any{"event", "count"}, chartRows(events)); err != nil {
		return err
	}

	local := make([][]any, 0, len(r.LocalEvents))
	for _, ec := range r.LocalEvents {
		local = append(local, []any{ec.Name, ec.Count})
	}
	if err := writeTable(f, SheetLocalEvents, []any{"event", "count"}, local); err != nil {
		return err
	}

	var insights [][]any
	if r.Remote != nil {
		for _, in := range r.Remote.Insights.Insights {
			row := []any{in.Title(), in.Text(), "", "", "", ""}
			if x := in.Explanation; x != nil {
				row[2], row[3], row[4], row[5] = x.What, x.Why, x.SoWhat, x.Recommendation
			}
			insights = append(insights, row)
		}
	}
	if err := writeTable(f, SheetInsights, []any{"segment", "insight", "what", "why", "so what", "recommendation"}, insights); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("admin: write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r *Report) error {
	s := r.Stats()
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	rows := [][]any{
		{"metric", "value"},
		{"generated_at", generated.UTC().Format(time.RFC3339)},
		{"total_users", s.TotalUsers},
		{"segments", s.Segments},
		{"total_events_24h", s.TotalEvents},
		{"total_rules", s.TotalRules},
		{"total_visitors", s.TotalVisitors},
		{"unique_visitors", s.UniqueVisitors},
		{"visitors_today", s.VisitorsToday},
		{"visitors_this_week", s.VisitorsThisWeek},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("admin: summary row %d: %w", i, err)
		}
	}
	return nil
}

func chartRows(c Chart) [][]any {
	rows := make([][]any, len(c.Labels))
	for i := range c.Labels {
		rows[i] = []any{c.Labels[i], c.Values[i]}
	}
	return rows
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("admin: new sheet %s: %w", sheet, err)
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("admin: stream %s: %w", sheet, err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("admin: %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("admin: %s row %d: %w", sheet, i, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("admin: flush %s: %w", sheet, err)
	}
	return nil
}
