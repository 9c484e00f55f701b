package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintStatus outputs store status, dispatching based on the output format
// configured.
func PrintStatus(status schema.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON status")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"category", "count"}, func(csvWriter *csv.Writer) error {
				for _, category := range schema.AllEventCategories {
					count, ok := status.CategoryCounts[category]
					if !ok {
						continue
					}
					if err := csvWriter.Write([]string{string(category), fmt.Sprintf("%d", count)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV status")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printStatusText(w, status, cfg)
		}, "Wrote status")
	}
}

func printStatusText(w io.Writer, status schema.StoreStatus, cfg *contract.Config) error {
	title := "Event store status"
	if cfg.UseEmojis {
		title = "🗄️  " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total events: %d\n", status.TotalEvents); err != nil {
		return err
	}
	if status.FirstEvent != nil && status.LastEvent != nil {
		if _, err := fmt.Fprintf(w, "Span: %s to %s\n",
			contract.FormatTimestamp(*status.FirstEvent), contract.FormatTimestamp(*status.LastEvent)); err != nil {
			return err
		}
	}
	if status.TotalEvents == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Count"})

	var data [][]string
	for _, category := range schema.AllEventCategories {
		count, ok := status.CategoryCounts[category]
		if !ok {
			continue
		}
		data = append(data, []string{string(category), fmt.Sprintf("%d", count)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintKinds outputs the metric kind catalog, dispatching based on the
// output format configured.
func PrintKinds(cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			catalog := make([]map[string]any, 0, len(schema.AllMetricKinds))
			for _, kind := range schema.AllMetricKinds {
				_, lowerIsBetter := schema.LowerIsBetter[kind]
				catalog = append(catalog, map[string]any{
					"metric_type":     string(kind),
					"description":     kind.Description(),
					"lower_is_better": lowerIsBetter,
				})
			}
			return writeJSON(w, catalog)
		}, "Wrote JSON metric catalog")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "description", "lower_is_better"}, func(csvWriter *csv.Writer) error {
				for _, kind := range schema.AllMetricKinds {
					_, lowerIsBetter := schema.LowerIsBetter[kind]
					row := []string{string(kind), kind.Description(), fmt.Sprintf("%t", lowerIsBetter)}
					if err := csvWriter.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV metric catalog")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printKindsText(w, cfg)
		}, "Wrote metric catalog")
	}
}

func printKindsText(w io.Writer, cfg *contract.Config) error {
	title := "Available metrics"
	if cfg.UseEmojis {
		title = "📈 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Description", "Polarity"})

	maxLabel := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for _, kind := range schema.AllMetricKinds {
		polarity := "higher is better"
		if _, ok := schema.LowerIsBetter[kind]; ok {
			polarity = "lower is better"
		}
		data = append(data, []string{
			string(kind),
			contract.TruncateLabel(kind.Description(), maxLabel),
			polarity,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
