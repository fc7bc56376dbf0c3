package zonecsv

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/montanaflynn/stats"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/models"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/parser"
)

// Stats scans one zone file and summarizes its zone column: distinct zone
// count, smallest, largest and median zone id, and a bounded sample of rows
// whose zone exceeds the threshold.
func Stats(path string, opts StatsOptions) (*models.ZoneStats, error) {
	if opts.SampleCap < 0 {
		return nil, fmt.Errorf("%w: negative sample cap", ErrInvalidOptions)
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingSource)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd, err := parser.NewReader(f, parser.ReaderOptions{Encoding: opts.Encoding})
	if err != nil {
		return nil, err
	}
	header, err := rd.ReadHeader()
	if errors.Is(err, parser.ErrNoHeader) {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySource)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result := &models.ZoneStats{
		Path:      path,
		Header:    header,
		Threshold: opts.Threshold,
	}
	unique := make(map[int64]struct{})

	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		zone, err := parser.ParseZone(row[parser.ZoneColumn], opts.ZonePrefix)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w: %v", path, rd.Line(), ErrInvalidZone, err)
		}

		if len(unique) == 0 || zone < result.MinZone {
			result.MinZone = zone
		}
		if len(unique) == 0 || zone > result.MaxZone {
			result.MaxZone = zone
		}
		unique[zone] = struct{}{}

		if zone > opts.Threshold && len(result.Samples) < opts.SampleCap {
			result.Samples = append(result.Samples, row)
		}
	}

	result.Rows = rd.Rows()
	result.UniqueZones = len(unique)
	if len(unique) > 0 {
		data := make(stats.Float64Data, 0, len(unique))
		for zone := range unique {
			data = append(data, float64(zone))
		}
		median, err := stats.Median(data)
		if err != nil {
			return nil, err
		}
		result.MedianZone = median
	}

	return result, nil
}
