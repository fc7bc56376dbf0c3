// Package main provides the CLI entry point for zonecsv.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/zonecsv-go/internal/config"
	"github.com/ukaji3/zonecsv-go/internal/logging"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/output"
	"go.uber.org/zap"
)

var (
	configPath     string
	rootDir        string
	scenarios      []string
	pattern        string
	zonePrefix     string
	encoding       string
	missingIsError bool
	logLevel       string
	logFormat      string
	verbose        bool
	jsonOutput     bool
	pretty         bool
	xlsxPath       string

	quoting    string
	lineEnding string
	dryRun     bool

	threshold int64
	sampleCap int

	force bool

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zonecsv",
		Short: "Normalize and report on zone columns of scenario CSV files",
		Long: `zonecsv rewrites the ZONE column of each scenario's CSV file as text
and reports zone statistics and distinct zone counts across scenarios.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath, "Config file path (missing file means defaults)")
	pf.StringVar(&rootDir, "root", "", "Directory the scenario folders live under")
	pf.StringSliceVar(&scenarios, "scenario", nil, "Scenario folder name (repeatable, case-sensitive)")
	pf.StringVar(&pattern, "pattern", "", "File path under root; {scenario} is replaced by the scenario name")
	pf.StringVar(&zonePrefix, "zone-prefix", "", "Prefix added to zone values (fix) or stripped before parsing (stats)")
	pf.StringVar(&encoding, "encoding", "", "File encoding label, e.g. utf-8 or windows-1252")
	pf.BoolVar(&missingIsError, "missing-is-error", false, "Exit non-zero when a scenario's file is missing")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: json, console")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&xlsxPath, "xlsx", "", "Also write the report to this .xlsx file")

	rootCmd.AddCommand(newFixCmd(), newStatsCmd(), newCountCmd(), newInitCmd())
	return rootCmd
}

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite the zone column of every scenario file as text",
		Long: `Rewrite the zone column of every configured scenario's CSV file.

Each file is streamed into a temporary sibling file and atomically renamed over
the original, so a failure never leaves a partially written file behind.`,
		Args: cobra.NoArgs,
		RunE: runFix,
	}
	cmd.Flags().StringVar(&quoting, "quoting", "", "Zone quoting policy: minimal, zone")
	cmd.Flags().StringVar(&lineEnding, "line-ending", "", "Line ending: auto, lf, crlf")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Read and transform without replacing any file")
	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file.csv]",
		Short: "Summarize the zone column of one file",
		Long: `Report the unique zone count, the min, max and median zone id, and sample rows
whose zone exceeds the threshold. Without a file argument the first configured
scenario's file is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStats,
	}
	cmd.Flags().Int64Var(&threshold, "threshold", 0, "Zone id sample rows must exceed (default from config)")
	cmd.Flags().IntVar(&sampleCap, "sample-cap", 0, "Maximum number of sample rows (default from config)")
	return cmd
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count distinct zone values per scenario",
		Args:  cobra.NoArgs,
		RunE:  runCount,
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Long: `Write the configuration resolved from defaults, the environment and flags
to the --config path so later runs need no flags.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

// setup loads configuration, applies flags over it and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("config", configPath),
		zap.String("root", cfg.Root),
		zap.Strings("scenarios", cfg.Scenarios))
	return nil
}

// applyFlags overrides configuration values with flags set on the command line.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("root") {
		c.Root = rootDir
	}
	if flags.Changed("scenario") {
		c.Scenarios = scenarios
	}
	if flags.Changed("pattern") {
		c.Pattern = pattern
	}
	if flags.Changed("zone-prefix") {
		c.ZonePrefix = zonePrefix
	}
	if flags.Changed("encoding") {
		c.Encoding = encoding
	}
	if flags.Changed("missing-is-error") {
		c.MissingIsError = missingIsError
	}
	if flags.Changed("quoting") {
		c.Quoting = quoting
	}
	if flags.Changed("line-ending") {
		c.LineEnding = lineEnding
	}
	if flags.Changed("threshold") {
		c.Stats.Threshold = threshold
	}
	if flags.Changed("sample-cap") {
		c.Stats.SampleCap = sampleCap
	}
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		c.Logging.Format = logFormat
	}
	if verbose {
		c.Logging.Level = "debug"
	}
}

func runFix(cmd *cobra.Command, args []string) error {
	opts := cfg.Options()
	opts.DryRun = dryRun
	opts.Logger = logger

	report, err := zonecsv.Normalize(opts)
	if err != nil {
		return err
	}

	if err := printReport(cmd.OutOrStdout(), report, output.RunLines(report)); err != nil {
		return err
	}
	if xlsxPath != "" {
		if err := output.WriteRunWorkbook(report, xlsxPath); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}

	if failed := report.Failures(opts.MissingIsError); failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(report.Outcomes))
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		path = cfg.Options().Path(cfg.Scenarios[0])
	}
	logger.Debug("scanning zone file", zap.String("path", path))

	result, err := zonecsv.Stats(path, cfg.StatsOptions())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if err := printReport(cmd.OutOrStdout(), result, output.StatsLines(result)); err != nil {
		return err
	}
	if xlsxPath != "" {
		if err := output.WriteStatsWorkbook(result, xlsxPath); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	opts := cfg.Options()
	opts.Logger = logger

	report, err := zonecsv.Count(opts)
	if err != nil {
		return err
	}

	if err := printReport(cmd.OutOrStdout(), report, output.CountLines(report)); err != nil {
		return err
	}
	if xlsxPath != "" {
		if err := output.WriteCountWorkbook(report, xlsxPath); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}

	if report.Failed(opts.MissingIsError) {
		return fmt.Errorf("zone count failed for one or more scenarios")
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}
	logger.Info("configuration written", zap.String("config", configPath))
	_, err := fmt.Fprintln(cmd.OutOrStdout(), "wrote "+configPath)
	return err
}

// printReport writes v as JSON when --json is set, otherwise the text lines.
func printReport(w io.Writer, v any, lines []string) error {
	if jsonOutput {
		data, err := output.ToJSON(v, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
