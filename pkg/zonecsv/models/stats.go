package models

// ZoneStats summarizes the zone column of one file.
type ZoneStats struct {
	// Path is the file that was scanned.
	Path string `json:"path"`
	// Header is the file's header row.
	Header []string `json:"header"`
	// Rows is the number of data rows.
	Rows int `json:"rows"`
	// UniqueZones is the number of distinct zone ids.
	UniqueZones int `json:"unique_zones"`
	// MinZone is the smallest zone id (0 when there are no rows).
	MinZone int64 `json:"min_zone"`
	// MaxZone is the largest zone id (0 when there are no rows).
	MaxZone int64 `json:"max_zone"`
	// MedianZone is the median of the distinct zone ids.
	MedianZone float64 `json:"median_zone"`
	// Threshold is the zone id that sample rows must exceed.
	Threshold int64 `json:"threshold"`
	// Samples holds up to the sample cap of rows whose zone exceeds Threshold.
	Samples [][]string `json:"samples,omitempty"`
}
