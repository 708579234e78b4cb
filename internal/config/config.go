// Package config loads CLI settings from defaults, an optional yaml file and
// DATETS_ environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/datets/errs"
	"github.com/arloliu/datets/format"
	"github.com/arloliu/datets/wire"
)

// Defaults.
const (
	DefaultKeyEncoding      = "delta"
	DefaultValueEncoding    = "gorilla"
	DefaultKeyCompression   = "none"
	DefaultValueCompression = "zstd"
	DefaultByteOrder        = "little"
	DefaultOutputFormat     = "table"
	DefaultHead             = 20
	DefaultComma            = ","
)

// Output formats accepted by Output.Format.
var outputFormats = []string{"table", "json", "yaml"}

// Byte orders accepted by Wire.ByteOrder.
var byteOrders = []string{"little", "big", "native"}

var (
	// ErrInvalidOutputFormat is returned for an unknown output format.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidHead is returned for a negative row limit.
	ErrInvalidHead = errors.New("head must be >= 0")
	// ErrInvalidByteOrder is returned for an unknown byte order.
	ErrInvalidByteOrder = errors.New("invalid byte order")
	// ErrInvalidComma is returned when the CSV separator is not a single character.
	ErrInvalidComma = errors.New("csv comma must be a single character")
)

// Config is the top-level CLI configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Wire   WireConfig   `mapstructure:"wire"`
	Output OutputConfig `mapstructure:"output"`
	CSV    CSVConfig    `mapstructure:"csv"`
}

// WireConfig holds the default frame layout of the encode command.
type WireConfig struct {
	KeyEncoding      string `mapstructure:"key_encoding"`
	ValueEncoding    string `mapstructure:"value_encoding"`
	KeyCompression   string `mapstructure:"key_compression"`
	ValueCompression string `mapstructure:"value_compression"`
	ByteOrder        string `mapstructure:"byte_order"`
}

// OutputConfig holds inspect output settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Head   int    `mapstructure:"head"`
}

// CSVConfig holds CSV reader and writer settings.
type CSVConfig struct {
	Comma string `mapstructure:"comma"`
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.Wire.Options(); err != nil {
		return err
	}

	if !slices.Contains(outputFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output.Format)
	}

	if c.Output.Head < 0 {
		return ErrInvalidHead
	}

	if utf8.RuneCountInString(c.CSV.Comma) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidComma, c.CSV.Comma)
	}

	return nil
}

// CommaRune returns the CSV separator. Validate guarantees it is one rune.
func (c CSVConfig) CommaRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Comma)
	return r
}

// Options translates the wire settings into encoder options.
func (w WireConfig) Options() ([]wire.Option, error) {
	keyEnc, err := format.ParseEncodingType(w.KeyEncoding)
	if err != nil {
		return nil, fmt.Errorf("key encoding: %w", err)
	}

	valEnc, err := format.ParseEncodingType(w.ValueEncoding)
	if err != nil {
		return nil, fmt.Errorf("value encoding: %w", err)
	}

	if !keyEnc.ValidForKeys() {
		return nil, fmt.Errorf("key encoding: %w: %s", errs.ErrInvalidEncodingType, keyEnc)
	}
	if !valEnc.ValidForValues() {
		return nil, fmt.Errorf("value encoding: %w: %s", errs.ErrInvalidEncodingType, valEnc)
	}

	keyComp, err := format.ParseCompressionType(w.KeyCompression)
	if err != nil {
		return nil, fmt.Errorf("key compression: %w", err)
	}

	valComp, err := format.ParseCompressionType(w.ValueCompression)
	if err != nil {
		return nil, fmt.Errorf("value compression: %w", err)
	}

	opts := []wire.Option{
		wire.WithKeyEncoding(keyEnc),
		wire.WithValueEncoding(valEnc),
		wire.WithKeyCompression(keyComp),
		wire.WithValueCompression(valComp),
	}

	switch strings.ToLower(w.ByteOrder) {
	case "little":
		opts = append(opts, wire.WithLittleEndian())
	case "big":
		opts = append(opts, wire.WithBigEndian())
	case "native":
		opts = append(opts, wire.WithNativeEndian())
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrInvalidByteOrder, w.ByteOrder, strings.Join(byteOrders, ", "))
	}

	return opts, nil
}
