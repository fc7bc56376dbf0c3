package output

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/models"
	"github.com/xuri/excelize/v2"
)

func TestWriteRunWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	r := &models.RunReport{Outcomes: []models.ScenarioOutcome{
		{Scenario: "MTP25_2020", Path: "a.csv", Outcome: models.OutcomeSuccess, Rows: 4, NumericZones: 4},
		{Scenario: "MTP25_2030", Path: "b.csv", Outcome: models.OutcomeError, Reason: "line 3: malformed row"},
	}}
	require.NoError(t, WriteRunWorkbook(r, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOutcomes}, f.GetSheetList())
	rows, err := f.GetRows(SheetOutcomes)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "scenario", rows[0][0])
	require.GreaterOrEqual(t, len(rows[1]), 5)
	assert.Equal(t, []string{"MTP25_2020", "success", "4", "4", "a.csv"}, rows[1][:5])
	require.Len(t, rows[2], 6)
	assert.Equal(t, "line 3: malformed row", rows[2][5])
}

func TestWriteCountWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.xlsx")
	r := &models.CountReport{Scenarios: []models.ScenarioCount{
		{Scenario: "MTP25_2020", Zones: 7, Path: "a.csv"},
		{Scenario: "MTP25_2050NB", Missing: true, Path: "b.csv"},
	}}
	require.NoError(t, WriteCountWorkbook(r, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetCounts)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.GreaterOrEqual(t, len(rows[2]), 4)
	assert.Equal(t, []string{"MTP25_2050NB", "0", "true", "b.csv"}, rows[2][:4])
}

func TestWriteStatsWorkbookKeepsZonesAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	s := &models.ZoneStats{
		Path:        "a.csv",
		Header:      []string{"ZONE", "VALUE"},
		Rows:        2,
		UniqueZones: 2,
		MaxZone:     1500,
		Threshold:   1000,
		Samples:     [][]string{{"1500", "x"}},
	}
	require.NoError(t, WriteStatsWorkbook(s, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetStats, SheetSamples}, f.GetSheetList())

	cellType, err := f.GetCellType(SheetSamples, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeNumber, cellType)

	value, err := f.GetCellValue(SheetSamples, "A2")
	require.NoError(t, err)
	assert.Equal(t, "1500", value)
}
