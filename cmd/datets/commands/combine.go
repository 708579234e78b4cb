package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/datets/series"
)

const (
	combineCmdUse   = "combine <a> <b>"
	combineCmdShort = "Combine two series date by date and print the result as CSV"
	opFlag          = "op"
	modeFlag        = "mode"
	outputFlag      = "output"

	modeIntersection = "intersection"
	modeUnion        = "union"
	modeDisjoint     = "disjoint"
)

// ErrUnknownOperator is returned for an --op outside the operator catalogue.
var ErrUnknownOperator = errors.New("unknown operator")

// ErrUnknownMode is returned for a --mode other than intersection, union or disjoint.
var ErrUnknownMode = errors.New("unknown combine mode")

var binaryOps = map[string]series.BinaryOp[float64]{
	"add":      series.OpAdd,
	"subtract": series.OpSubtract,
	"multiply": series.OpMultiply,
	"divide":   series.OpDivide,
	"power":    series.OpPower,
	"minimum":  series.OpMinimum,
	"maximum":  series.OpMaximum,
	"average":  series.OpAverage,
	"first":    series.OpFirst,
	"second":   series.OpSecond,
}

// NewCombineCommand creates the combine subcommand.
func NewCombineCommand() *cobra.Command {
	var (
		opName  string
		mode    string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   combineCmdUse,
		Short: combineCmdShort,
		Long: `Combine two series stored as CSV or wire frames.

Modes:
  intersection  keep dates present in both inputs and apply --op
  union         keep dates present in either input, apply --op on shared dates
  disjoint      merge inputs that share no date; --op is ignored`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			comma := cfg.CSV.CommaRune()

			a, err := readSeriesFile(args[0], comma)
			if err != nil {
				return err
			}
			b, err := readSeriesFile(args[1], comma)
			if err != nil {
				return err
			}

			result, err := combine(a, b, opName, mode)
			if err != nil {
				return err
			}
			slog.Debug("combined", "op", opName, "mode", mode, "a", a.Len(), "b", b.Len(), "result", result.Len())

			w, closeFn, err := createOutput(outPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := writeCSV(w, result, comma); err != nil {
				_ = closeFn()
				return err
			}

			return closeFn()
		},
	}

	cmd.Flags().StringVar(&opName, opFlag, "add", "operator: "+strings.Join(operatorNames(), ", "))
	cmd.Flags().StringVar(&mode, modeFlag, modeIntersection, "alignment: intersection, union or disjoint")
	cmd.Flags().StringVarP(&outPath, outputFlag, "o", "", "output CSV file (default stdout)")

	return cmd
}

func combine(a, b series.NumericSeries, opName, mode string) (series.NumericSeries, error) {
	mode = strings.ToLower(mode)
	if mode == modeDisjoint {
		return a.NoIntersectionOperation(b)
	}

	op, ok := binaryOps[strings.ToLower(opName)]
	if !ok {
		return series.NumericSeries{}, fmt.Errorf("%w %q (want one of %s)", ErrUnknownOperator, opName, strings.Join(operatorNames(), ", "))
	}

	switch mode {
	case modeIntersection:
		return a.Operate(b, op), nil
	case modeUnion:
		return a.UnionOperate(b, op), nil
	default:
		return series.NumericSeries{}, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
}

func operatorNames() []string {
	names := make([]string, 0, len(binaryOps))
	for name := range binaryOps {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
