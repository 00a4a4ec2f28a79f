package extract

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Harshitha061298/Clearcare-Project/internal/audit"
	"github.com/Harshitha061298/Clearcare-Project/internal/config"
	"github.com/Harshitha061298/Clearcare-Project/internal/model"
	"github.com/Harshitha061298/Clearcare-Project/internal/normalize"
	"github.com/Harshitha061298/Clearcare-Project/internal/output"
	"github.com/Harshitha061298/Clearcare-Project/internal/paths"
	"github.com/Harshitha061298/Clearcare-Project/internal/registry"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes one full extraction: registry lookup → config load → walk →
// canonical output + devlog. The run owns all its accumulators; nothing is
// shared across runs.
func Run(log zerolog.Logger, cfg *config.Config, format Format) (*model.RunSummary, error) {
	totalStart := time.Now()
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Str("campus_id", cfg.CampusID).Logger()

	log.Info().Str("registry", cfg.RegistryPath).Msg("resolving campus")
	hospital, err := registry.Lookup(cfg.RegistryPath, cfg.CampusID)
	if err != nil {
		return nil, &PipelineError{Phase: "registry", Err: err}
	}
	log.Info().
		Str("hospital", hospital.HospitalName).
		Str("system", hospital.HealthcareSystem).
		Str("raw_file", hospital.RawFilename).
		Msg("campus resolved")

	ex, err := config.LoadExtract(cfg.ConfigPath)
	if err != nil {
		return nil, &PipelineError{Phase: "config", Err: err}
	}

	layout := paths.Layout{BaseDir: cfg.BaseDir}
	if err := layout.EnsureDirs(hospital.HealthcareSystem); err != nil {
		return nil, &PipelineError{Phase: "layout", Err: err}
	}

	rawPath := layout.RawFile(hospital.HealthcareSystem, hospital.RawFilename)
	outPath := layout.ExtractedFile(hospital.HealthcareSystem, cfg.CampusID)
	devlogPath := layout.DevlogFile(hospital.HealthcareSystem, cfg.CampusID)

	withModifiers := format != FormatJSON
	report := audit.NewReport(withModifiers)
	codes := normalize.NewCodeTypes(ex, report)

	csvOut, err := output.NewCSVWriter(outPath, withModifiers)
	if err != nil {
		return nil, &PipelineError{Phase: "output", Err: err}
	}

	sink := output.RecordWriter(csvOut)
	var parquetOut *output.ParquetWriter
	parquetPath := ""
	if cfg.WriteParquet {
		parquetPath = layout.ParquetFile(hospital.HealthcareSystem, cfg.CampusID)
		parquetOut, err = output.NewParquetWriter(parquetPath)
		if err != nil {
			csvOut.Close()
			return nil, &PipelineError{Phase: "output", Err: err}
		}
		sink = output.MultiWriter(csvOut, parquetOut)
	}

	walkStart := time.Now()
	log.Info().Str("format", string(format)).Str("raw_path", rawPath).Msg("starting walk")
	walkErr := walk(format, hospital, codes, report, rawPath, sink)

	closeErr := csvOut.Close()
	if parquetOut != nil {
		if err := parquetOut.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	if walkErr != nil {
		return nil, &PipelineError{Phase: "walk", Err: walkErr}
	}
	if closeErr != nil {
		return nil, &PipelineError{Phase: "output", Err: closeErr}
	}
	walkDur := time.Since(walkStart)

	allowed := ex.Allowed()
	sort.Strings(allowed)
	if err := report.WriteFile(devlogPath, allowed); err != nil {
		return nil, &PipelineError{Phase: "devlog", Err: err}
	}

	written := report.Records()
	if written == 0 {
		log.Warn().Msg("no valid records found for allowed code types")
	}

	summary := &model.RunSummary{
		CampusID:       cfg.CampusID,
		Format:         string(format),
		RawPath:        rawPath,
		OutputPath:     outPath,
		ParquetPath:    parquetPath,
		DevlogPath:     devlogPath,
		RunID:          runID.String(),
		RecordsWritten: written,
		DurationWalk:   walkDur,
		DurationTotal:  time.Since(totalStart),
	}

	log.Info().
		Int64("records", summary.RecordsWritten).
		Str("output", summary.OutputPath).
		Str("devlog", summary.DevlogPath).
		Str("walk_duration", summary.DurationWalk.String()).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("extraction complete")

	return summary, nil
}

func walk(format Format, hospital *model.Hospital, codes *normalize.CodeTypes, report *audit.Report, rawPath string, sink Sink) error {
	switch format {
	case FormatJSON:
		w := &JSONWalker{Hospital: hospital, Codes: codes, Report: report}
		return w.Walk(rawPath, sink)
	case FormatTall:
		w := &TallWalker{Hospital: hospital, Codes: codes, Report: report}
		return w.Walk(rawPath, sink)
	case FormatWide:
		w := &WideWalker{Hospital: hospital, Codes: codes, Report: report}
		return w.Walk(rawPath, sink)
	default:
		return fmt.Errorf("unknown source format %q", format)
	}
}
