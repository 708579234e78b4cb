package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/datets/series"
	"github.com/arloliu/datets/wire"
)

const (
	inspectCmdUse   = "inspect <file>"
	inspectCmdShort = "Summarize a series stored as CSV or wire frame"
	formatFlag      = "format"
	headFlag        = "head"
)

// Summary describes a series for inspect output.
type Summary struct {
	Entries     int     `json:"entries" yaml:"entries"`
	Earliest    string  `json:"earliest,omitempty" yaml:"earliest,omitempty"`
	Latest      string  `json:"latest,omitempty" yaml:"latest,omitempty"`
	Min         float64 `json:"min" yaml:"min"`
	Max         float64 `json:"max" yaml:"max"`
	Fingerprint string  `json:"fingerprint" yaml:"fingerprint"`
	Rows        []Row   `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Row is one date,value pair of inspect output.
type Row struct {
	Date  string  `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

// NewInspectCommand creates the inspect subcommand.
func NewInspectCommand() *cobra.Command {
	var (
		outputFormat string
		head         int
	)

	cmd := &cobra.Command{
		Use:   inspectCmdUse,
		Short: inspectCmdShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed(formatFlag) {
				outputFormat = cfg.Output.Format
			}
			if !cmd.Flags().Changed(headFlag) {
				head = cfg.Output.Head
			}
			if head < 0 {
				return fmt.Errorf("--%s must be >= 0", headFlag)
			}

			s, err := readSeriesFile(args[0], cfg.CSV.CommaRune())
			if err != nil {
				return err
			}

			return renderSummary(cmd.OutOrStdout(), summarize(s, head), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, formatFlag, "f", "", "output format: table, json or yaml")
	cmd.Flags().IntVarP(&head, headFlag, "n", 0, "number of leading rows to show")

	return cmd
}

func summarize(s series.NumericSeries, head int) Summary {
	sum := Summary{
		Entries:     s.Len(),
		Fingerprint: fmt.Sprintf("%016x", wire.Fingerprint(s)),
	}

	if s.IsEmpty() {
		return sum
	}

	earliest, _ := s.EarliestDate()
	latest, _ := s.LatestDate()
	sum.Earliest = earliest.String()
	sum.Latest = latest.String()
	sum.Min, _ = s.MinValue()
	sum.Max, _ = s.MaxValue()

	if rows, err := s.Head(min(head, s.Len())); err == nil {
		for date, value := range rows.AllDates() {
			sum.Rows = append(sum.Rows, Row{Date: date.String(), Value: value})
		}
	}

	return sum
}

func renderSummary(w io.Writer, sum Summary, outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(jsonSafe(sum))
	case "yaml":
		data, err := yaml.Marshal(sum)
		if err != nil {
			return err
		}
		_, err = w.Write(data)

		return err
	case "table", "":
		renderTable(w, sum)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}

// jsonSafe replaces non-finite values, which encoding/json rejects, with 0.
func jsonSafe(sum Summary) Summary {
	finite := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}

		return v
	}

	out := sum
	out.Min, out.Max = finite(sum.Min), finite(sum.Max)
	out.Rows = make([]Row, len(sum.Rows))
	for i, r := range sum.Rows {
		out.Rows[i] = Row{Date: r.Date, Value: finite(r.Value)}
	}

	return out
}

func renderTable(w io.Writer, sum Summary) {
	info := table.NewWriter()
	info.SetOutputMirror(w)
	info.SetStyle(table.StyleLight)
	info.AppendRows([]table.Row{
		{"Entries", humanize.Comma(int64(sum.Entries))},
		{"Earliest", sum.Earliest},
		{"Latest", sum.Latest},
		{"Min", sum.Min},
		{"Max", sum.Max},
		{"Fingerprint", sum.Fingerprint},
	})
	info.Render()

	if len(sum.Rows) == 0 {
		return
	}

	rows := table.NewWriter()
	rows.SetOutputMirror(w)
	rows.SetStyle(table.StyleLight)
	rows.AppendHeader(table.Row{"Date", "Value"})
	for _, r := range sum.Rows {
		rows.AppendRow(table.Row{r.Date, r.Value})
	}
	if len(sum.Rows) < sum.Entries {
		rows.AppendFooter(table.Row{fmt.Sprintf("%d of %s rows", len(sum.Rows), humanize.Comma(int64(sum.Entries)))})
	}
	rows.Render()
}
