package zonecsv

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/models"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/parser"
	"go.uber.org/zap"
)

// renameFile replaces the source with the finished temp file.
var renameFile = os.Rename

// rewriteResult holds counters from one file rewrite.
type rewriteResult struct {
	rows         int
	numericZones int
}

// Normalize rewrites the zone column of every configured scenario's file.
// Errors are scenario-scoped and recorded in the report; the returned error
// is non-nil only for invalid options.
func Normalize(opts Options) (*models.RunReport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	report := &models.RunReport{
		RunID: uuid.NewString(),
		Root:  opts.Root,
	}
	log := opts.logger().With(zap.String("run_id", report.RunID))
	log.Info("normalizing zone files",
		zap.String("root", opts.Root),
		zap.Strings("scenarios", opts.Scenarios),
		zap.Bool("dry_run", opts.DryRun))

	for _, scenario := range opts.Scenarios {
		report.Outcomes = append(report.Outcomes, normalizeScenario(scenario, opts, log))
	}

	log.Info("normalization finished",
		zap.Int("success", report.Count(models.OutcomeSuccess)),
		zap.Int("file_missing", report.Count(models.OutcomeFileMissing)),
		zap.Int("empty_source", report.Count(models.OutcomeEmptySource)),
		zap.Int("error", report.Count(models.OutcomeError)))
	return report, nil
}

// NormalizeScenario rewrites the zone column of a single scenario's file.
func NormalizeScenario(scenario string, opts Options) models.ScenarioOutcome {
	return normalizeScenario(scenario, opts, opts.logger())
}

func normalizeScenario(scenario string, opts Options, log *zap.Logger) models.ScenarioOutcome {
	path := opts.Path(scenario)
	log = log.With(zap.String("scenario", scenario), zap.String("path", path))
	out := models.ScenarioOutcome{
		Scenario: scenario,
		Path:     path,
		DryRun:   opts.DryRun,
	}

	res, err := rewriteFile(scenario, path, opts)
	switch {
	case err == nil:
		out.Outcome = models.OutcomeSuccess
		out.Rows = res.rows
		out.NumericZones = res.numericZones
		log.Info("zone file updated", zap.Int("rows", res.rows), zap.Int("numeric_zones", res.numericZones))
	case errors.Is(err, ErrMissingSource):
		out.Outcome = models.OutcomeFileMissing
		log.Warn("skipping scenario: file not found")
	case errors.Is(err, ErrEmptySource):
		out.Outcome = models.OutcomeEmptySource
		log.Warn("skipping scenario: file is empty")
	default:
		out.Outcome = models.OutcomeError
		out.Reason = err.Error()
		out.Err = err
		log.Error("scenario failed", zap.Error(err))
	}
	return out
}

// rewriteFile streams path through the zone transform into a sibling temp
// file and renames it over path, or over the target when path is a symlink.
// The source is untouched unless the rename runs.
func rewriteFile(scenario, path string, opts Options) (rewriteResult, error) {
	var res rewriteResult

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return res, NewScenarioError(scenario, StageResolve, ErrMissingSource)
	}
	if err != nil {
		return res, NewScenarioError(scenario, StageResolve, err)
	}
	// A symlinked source is rewritten in place at its target; the link stays.
	path, err = filepath.EvalSymlinks(path)
	if err != nil {
		return res, NewScenarioError(scenario, StageResolve, err)
	}

	src, err := os.Open(path)
	if err != nil {
		return res, NewScenarioError(scenario, StageRead, err)
	}
	defer src.Close()

	rd, err := parser.NewReader(src, parser.ReaderOptions{Encoding: opts.Encoding})
	if err != nil {
		return res, NewScenarioError(scenario, StageRead, err)
	}
	header, err := rd.ReadHeader()
	if errors.Is(err, parser.ErrNoHeader) {
		return res, NewScenarioError(scenario, StageRead, ErrEmptySource)
	}
	if err != nil {
		return res, NewScenarioError(scenario, StageRead, err)
	}

	wopts := parser.WriterOptions{
		Encoding: opts.Encoding,
		BOM:      rd.HasBOM(),
		CRLF:     opts.LineEnding.CRLF(rd.CRLF()),
		Quoting:  opts.Quoting,
	}

	if opts.DryRun {
		wr, err := parser.NewWriter(io.Discard, wopts)
		if err != nil {
			return res, NewScenarioError(scenario, StageWrite, err)
		}
		return copyRows(scenario, rd, wr, header, opts.mapper())
	}

	// Same directory as the source so the rename stays on one volume.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return res, NewScenarioError(scenario, StageWrite, err)
	}
	tmpPath := tmp.Name()
	replaced := false
	defer func() {
		if !replaced {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	wr, err := parser.NewWriter(tmp, wopts)
	if err != nil {
		return res, NewScenarioError(scenario, StageWrite, err)
	}
	res, err = copyRows(scenario, rd, wr, header, opts.mapper())
	if err != nil {
		return res, err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return res, NewScenarioError(scenario, StageWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		return res, NewScenarioError(scenario, StageWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return res, NewScenarioError(scenario, StageWrite, err)
	}
	if err := src.Close(); err != nil {
		return res, NewScenarioError(scenario, StageRead, err)
	}

	if err := renameFile(tmpPath, path); err != nil {
		return res, NewScenarioError(scenario, StageReplace, err)
	}
	replaced = true
	return res, nil
}

// copyRows writes the header unchanged and each row with its zone field mapped.
func copyRows(scenario string, rd *parser.Reader, wr *parser.Writer, header []string, mapZone parser.ZoneMapper) (rewriteResult, error) {
	var res rewriteResult

	if err := wr.WriteHeader(header); err != nil {
		return res, NewScenarioError(scenario, StageWrite, err)
	}
	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, NewScenarioError(scenario, StageRead, err)
		}

		row[parser.ZoneColumn] = mapZone(row[parser.ZoneColumn])
		if parser.LooksNumeric(row[parser.ZoneColumn]) {
			res.numericZones++
		}
		if err := wr.WriteRow(row); err != nil {
			return res, NewScenarioError(scenario, StageWrite, err)
		}
		res.rows++
	}
	if err := wr.Close(); err != nil {
		return res, NewScenarioError(scenario, StageWrite, err)
	}
	return res, nil
}
