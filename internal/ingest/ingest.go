// Package ingest loads observation events from delimited CSV files into an
// event store.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// Delimiter is the field separator for ingested files. Exports in this
// format pair it with decimal-comma numbers.
const Delimiter = ';'

var requiredColumns = []string{"type", "timestamp", "value"}

// Result summarizes one ingestion run. Skipped rows were individually
// malformed; they are warned about and do not abort the run.
type Result struct {
	Inserted int
	Skipped  int
}

// FromCSV ingests every row of a semicolon-delimited CSV file. The header
// row names the columns; `type`, `timestamp` and `value` are required,
// `id` and the link columns are optional. Malformed rows are skipped with
// a warning rather than failing the whole file.
func FromCSV(ctx context.Context, store contract.EventStore, path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open ingest file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return FromReader(ctx, store, file)
}

// FromReader ingests rows from an already-open CSV stream.
func FromReader(ctx context.Context, store contract.EventStore, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read header row: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return Result{}, fmt.Errorf("missing required column %q", name)
		}
	}

	var result Result
	line := 1
	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			contract.Warning(fmt.Sprintf("Skipping line %d: %v", line, err))
			result.Skipped++
			continue
		}

		event, err := parseRecord(columns, record)
		if err != nil {
			contract.Warning(fmt.Sprintf("Skipping line %d: %v", line, err))
			result.Skipped++
			continue
		}
		if _, err := store.InsertEvent(ctx, event); err != nil {
			contract.Warning(fmt.Sprintf("Skipping line %d: %v", line, err))
			result.Skipped++
			continue
		}
		result.Inserted++
	}
	return result, nil
}

func parseRecord(columns map[string]int, record []string) (schema.Event, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	category := schema.EventCategory(field("type"))
	if _, ok := schema.ValidEventCategories[category]; !ok {
		return schema.Event{}, fmt.Errorf("%w: %q", contract.ErrInvalidCategory, field("type"))
	}

	timestamp, err := contract.ParseTimestamp(field("timestamp"))
	if err != nil {
		return schema.Event{}, err
	}

	// Decimal commas are converted so European exports load unchanged.
	rawValue := strings.ReplaceAll(field("value"), ",", ".")
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return schema.Event{}, fmt.Errorf("invalid value %q", field("value"))
	}

	event := schema.Event{
		Category:  category,
		Timestamp: timestamp,
		Value:     value,
	}

	if raw := field("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return schema.Event{}, fmt.Errorf("invalid id %q", raw)
		}
		event.ID = id
	}
	if raw := field("commit_hash"); raw != "" {
		hash := raw
		event.Links.CommitHash = &hash
	}
	if raw := field("deployment_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return schema.Event{}, fmt.Errorf("invalid deployment_id %q", raw)
		}
		event.Links.DeploymentID = &id
	}
	if raw := field("deployment_failure_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return schema.Event{}, fmt.Errorf("invalid deployment_failure_id %q", raw)
		}
		event.Links.DeploymentFailureID = &id
	}
	if raw := field("ai_rework_commit"); raw != "" {
		rework, err := contract.ParseBoolString(raw)
		if err != nil {
			return schema.Event{}, fmt.Errorf("invalid ai_rework_commit %q", raw)
		}
		event.Links.AIRework = rework
	}

	return event, nil
}
