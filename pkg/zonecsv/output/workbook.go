package output

import (
	"strconv"

	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names used in report workbooks.
const (
	SheetOutcomes = "Outcomes"
	SheetCounts   = "Counts"
	SheetStats    = "Stats"
	SheetSamples  = "Samples"
)

// WriteRunWorkbook saves a run report as an xlsx workbook with one row per scenario.
func WriteRunWorkbook(r *models.RunReport, path string) error {
	rows := [][]string{{"scenario", "outcome", "rows", "numeric_zones", "path", "reason"}}
	for _, o := range r.Outcomes {
		rows = append(rows, []string{
			o.Scenario,
			string(o.Outcome),
			strconv.Itoa(o.Rows),
			strconv.Itoa(o.NumericZones),
			o.Path,
			o.Reason,
		})
	}
	return saveWorkbook(path, map[string][][]string{SheetOutcomes: rows}, []string{SheetOutcomes})
}

// WriteCountWorkbook saves a count report as an xlsx workbook.
func WriteCountWorkbook(r *models.CountReport, path string) error {
	rows := [][]string{{"scenario", "zones", "missing", "path", "reason"}}
	for _, s := range r.Scenarios {
		rows = append(rows, []string{
			s.Scenario,
			strconv.Itoa(s.Zones),
			strconv.FormatBool(s.Missing),
			s.Path,
			s.Reason,
		})
	}
	return saveWorkbook(path, map[string][][]string{SheetCounts: rows}, []string{SheetCounts})
}

// WriteStatsWorkbook saves a stats summary and its sample rows as an xlsx workbook.
// Sample cells are stored as text so zone ids are never turned into numbers.
func WriteStatsWorkbook(s *models.ZoneStats, path string) error {
	summary := [][]string{
		{"metric", "value"},
		{"path", s.Path},
		{"rows", strconv.Itoa(s.Rows)},
		{"unique_zones", strconv.Itoa(s.UniqueZones)},
		{"min_zone", strconv.FormatInt(s.MinZone, 10)},
		{"max_zone", strconv.FormatInt(s.MaxZone, 10)},
		{"median_zone", strconv.FormatFloat(s.MedianZone, 'f', -1, 64)},
		{"threshold", strconv.FormatInt(s.Threshold, 10)},
	}
	samples := append([][]string{s.Header}, s.Samples...)
	return saveWorkbook(path,
		map[string][][]string{SheetStats: summary, SheetSamples: samples},
		[]string{SheetStats, SheetSamples})
}

// saveWorkbook writes each named sheet's rows as string cells and saves to path.
func saveWorkbook(path string, sheets map[string][][]string, order []string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		for rowIdx, row := range sheets[name] {
			for colIdx, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return err
				}
				if err := f.SetCellStr(name, cell, value); err != nil {
					return err
				}
			}
		}
	}

	return f.SaveAs(path)
}
