package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/devpulse/devpulse/schema"
)

// Default values for configuration.
const (
	DefaultIntervals = 1
	DefaultPrecision = 4
	MaxPrecision     = 6
)

// Config holds the runtime configuration for a command run.
// This struct remains the "final, validated" config.
type Config struct {
	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	StartTime time.Time
	EndTime   time.Time
	Intervals int

	Kind    schema.MetricKind     // single-metric command
	Kinds   []schema.MetricKind   // multi-metric command
	Weights []schema.MetricWeight // composite command

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)

	IngestFile string
	ExportFile string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Backend    string `mapstructure:"backend"`
	DBConnect  string `mapstructure:"db-connect"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Emoji      string `mapstructure:"emoji"`
	Color      string `mapstructure:"color"`

	// --- Fields shared by the metric/metrics/cps commands ---
	Start     string `mapstructure:"start"`
	End       string `mapstructure:"end"`
	Intervals int    `mapstructure:"intervals"`

	// --- Fields from metricCmd.Flags() ---
	Metric string `mapstructure:"metric"`

	// --- Fields from metricsCmd.Flags() ---
	Metrics string `mapstructure:"metrics"`

	// --- Fields from cpsCmd.Flags() ---
	Weights string `mapstructure:"weights"`

	// --- Fields from ingestCmd / exportCmd ---
	IngestFile string `mapstructure:"file"`
	ExportFile string `mapstructure:"export-file"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Sections whose inputs are absent are
// skipped, so one validator serves every command.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeWindow(cfg, input); err != nil {
		return err
	}
	if err := processMetricSelection(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-window fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.IngestFile = input.IngestFile
	cfg.ExportFile = input.ExportFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Backend Validation ---
	cfg.Backend = schema.DatabaseBackend(strings.ToLower(input.Backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql", input.Backend)
	}
	cfg.DBConnect = input.DBConnect
	if err := ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect); err != nil {
		return err
	}

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 3. Precision Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	return nil
}

// processTimeWindow parses the request window. Commands without a window
// (status, ingest, export) leave both bounds empty and skip this entirely.
func processTimeWindow(cfg *Config, input *ConfigRawInput) error {
	if input.Start == "" && input.End == "" {
		return nil
	}
	start, end, err := ParseWindow(input.Start, input.End)
	if err != nil {
		return err
	}
	cfg.StartTime = start
	cfg.EndTime = end

	if input.Intervals == 0 {
		cfg.Intervals = DefaultIntervals
		return nil
	}
	if input.Intervals < 1 {
		return fmt.Errorf("intervals must be at least 1 (received %d)", input.Intervals)
	}
	cfg.Intervals = input.Intervals
	return nil
}

// processMetricSelection resolves the single-kind and multi-kind selections.
func processMetricSelection(cfg *Config, input *ConfigRawInput) error {
	if input.Metric != "" {
		kind := schema.MetricKind(strings.ToUpper(strings.TrimSpace(input.Metric)))
		if _, ok := schema.ValidMetricKinds[kind]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidMetric, input.Metric)
		}
		cfg.Kind = kind
	}

	if input.Metrics != "" {
		kinds, err := ParseMetricList(input.Metrics)
		if err != nil {
			return err
		}
		cfg.Kinds = kinds
	}

	return nil
}

// processWeights converts the raw weights string into validated pairs.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	if input.Weights == "" {
		return nil
	}
	weights, err := ParseWeights(input.Weights)
	if err != nil {
		return err
	}
	cfg.Weights = weights
	return nil
}

// ParseMetricList parses a comma-separated list of metric kinds.
func ParseMetricList(s string) ([]schema.MetricKind, error) {
	var kinds []schema.MetricKind
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind := schema.MetricKind(strings.ToUpper(part))
		if _, ok := schema.ValidMetricKinds[kind]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMetric, part)
		}
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: empty metric list", ErrInvalidMetric)
	}
	return kinds, nil
}

// ParseWeights parses a string like "SATISFACTION:0.3,NUMBER_OF_COMMITS:0.7"
// into validated weight pairs.
func ParseWeights(s string) ([]schema.MetricWeight, error) {
	var weights []schema.MetricWeight
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid weight format '%s', expected 'metric:value'", part)
		}

		kind := schema.MetricKind(strings.ToUpper(strings.TrimSpace(keyValue[0])))
		if _, ok := schema.ValidMetricKinds[kind]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMetric, keyValue[0])
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(keyValue[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value '%s' for metric %s: %w", keyValue[1], kind, err)
		}
		if value < 0.0 || value > 1.0 {
			return nil, fmt.Errorf("%w: %s has weight %v", ErrInvalidWeight, kind, value)
		}

		weights = append(weights, schema.MetricWeight{Kind: kind, Weight: value})
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: empty weights list", ErrInvalidWeight)
	}
	return weights, nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends. SQLite accepts any
// value because the connection string is a file path.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
