package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/datets/wire"
)

const (
	encodeCmdUse   = "encode <input>"
	encodeCmdShort = "Encode a CSV series into a compact wire frame"

	keyEncodingFlag      = "key-encoding"
	valueEncodingFlag    = "value-encoding"
	compressionFlag      = "compression"
	keyCompressionFlag   = "key-compression"
	valueCompressionFlag = "value-compression"
	byteOrderFlag        = "byte-order"
)

// ErrNoOutputFile is returned when encode runs without --output.
var ErrNoOutputFile = errors.New("output file is required (use --output)")

// NewEncodeCommand creates the encode subcommand.
func NewEncodeCommand() *cobra.Command {
	var (
		outPath     string
		compression string
	)

	cmd := &cobra.Command{
		Use:   encodeCmdUse,
		Short: encodeCmdShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return ErrNoOutputFile
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			wc := cfg.Wire
			flags := cmd.Flags()
			if flags.Changed(compressionFlag) {
				wc.KeyCompression, wc.ValueCompression = compression, compression
			}
			overrides := map[string]*string{
				keyEncodingFlag:      &wc.KeyEncoding,
				valueEncodingFlag:    &wc.ValueEncoding,
				keyCompressionFlag:   &wc.KeyCompression,
				valueCompressionFlag: &wc.ValueCompression,
				byteOrderFlag:        &wc.ByteOrder,
			}
			for name, dst := range overrides {
				if flags.Changed(name) {
					*dst, _ = flags.GetString(name)
				}
			}

			opts, err := wc.Options()
			if err != nil {
				return err
			}

			s, err := readSeriesFile(args[0], cfg.CSV.CommaRune())
			if err != nil {
				return err
			}

			data, err := wire.Encode(s, opts...)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, outFilePerm); err != nil {
				return err
			}

			stats, err := wire.Stats(data)
			if err != nil {
				return err
			}
			slog.Debug("encoded", "path", outPath, "entries", s.Len(), "bytes", len(data), "wire", wc)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s entries, %s (raw %s, %.1f%% saved)\n",
				outPath,
				humanize.Comma(int64(s.Len())),
				humanize.Bytes(uint64(stats.CompressedSize)), //nolint:gosec
				humanize.Bytes(uint64(stats.OriginalSize)),   //nolint:gosec
				stats.SpaceSavings(),
			)

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&outPath, outputFlag, "o", "", "output frame file")
	flags.StringVar(&compression, compressionFlag, "", "compression for both payloads: none, zstd, s2 or lz4")
	flags.String(keyEncodingFlag, "", "key encoding: raw or delta")
	flags.String(valueEncodingFlag, "", "value encoding: raw or gorilla")
	flags.String(keyCompressionFlag, "", "key payload compression")
	flags.String(valueCompressionFlag, "", "value payload compression")
	flags.String(byteOrderFlag, "", "byte order: little, big or native")

	return cmd
}
