package zonecsv

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/models"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/parser"
	"go.uber.org/zap"
)

// Count reports the number of distinct zone values in each scenario's file.
// Missing files are marked and skipped; read failures are recorded per
// scenario. The returned error is non-nil only for invalid options.
func Count(opts Options) (*models.CountReport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	report := &models.CountReport{Root: opts.Root}
	for _, scenario := range opts.Scenarios {
		path := opts.Path(scenario)
		entry := models.ScenarioCount{Scenario: scenario, Path: path}

		zones, err := countZones(path, opts.Encoding)
		switch {
		case err == nil:
			entry.Zones = zones
			log.Debug("zones counted", zap.String("scenario", scenario), zap.Int("zones", zones))
		case errors.Is(err, ErrMissingSource):
			entry.Missing = true
			log.Warn("missing file", zap.String("scenario", scenario), zap.String("path", path))
		default:
			entry.Reason = err.Error()
			log.Error("count failed", zap.String("scenario", scenario), zap.Error(err))
		}
		report.Scenarios = append(report.Scenarios, entry)
	}
	return report, nil
}

// countZones returns the number of distinct raw zone values in path.
// A file without a header has no zones.
func countZones(path, encoding string) (int, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return 0, ErrMissingSource
	}
	if err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rd, err := parser.NewReader(f, parser.ReaderOptions{Encoding: encoding})
	if err != nil {
		return 0, err
	}
	if _, err := rd.ReadHeader(); err != nil {
		if errors.Is(err, parser.ErrNoHeader) {
			return 0, nil
		}
		return 0, err
	}

	zones := make(map[string]struct{})
	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		zones[row[parser.ZoneColumn]] = struct{}{}
	}
	return len(zones), nil
}
