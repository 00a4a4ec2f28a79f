package model

import "time"

// RunSummary captures metrics from a single extraction run.
type RunSummary struct {
	CampusID       string
	Format         string
	RawPath        string
	OutputPath     string
	ParquetPath    string
	DevlogPath     string
	RunID          string
	RecordsWritten int64
	DurationWalk   time.Duration
	DurationTotal  time.Duration
}
