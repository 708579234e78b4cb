package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/datets/wire"
)

// NewDecodeCommand creates the decode subcommand.
func NewDecodeCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "decode <frame>",
		Short: "Decode a wire frame and print it as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			h, err := wire.ParseHeader(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			slog.Debug("frame header",
				"entries", h.Count,
				"key_encoding", h.Flag.KeyEncodingType(),
				"value_encoding", h.Flag.ValueEncodingType(),
				"key_compression", h.Flag.KeyCompression(),
				"value_compression", h.Flag.ValueCompression(),
				"big_endian", h.Flag.IsBigEndian(),
			)

			s, err := wire.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			w, closeFn, err := createOutput(outPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := writeCSV(w, s, cfg.CSV.CommaRune()); err != nil {
				_ = closeFn()
				return err
			}

			return closeFn()
		},
	}

	cmd.Flags().StringVarP(&outPath, outputFlag, "o", "", "output CSV file (default stdout)")

	return cmd
}
