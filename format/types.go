// Package format defines the enumerations stored in a wire header: the
// column encodings for keys and values, and the compression applied to each
// encoded column.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/datets/errs"
)

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeRaw     EncodingType = 0x1 // TypeRaw stores fixed-width keys or values.
	TypeDelta   EncodingType = 0x2 // TypeDelta stores keys as varint gaps. Keys only.
	TypeGorilla EncodingType = 0x3 // TypeGorilla stores values XOR-compressed. Values only.

	CompressionNone CompressionType = 0x1 // CompressionNone leaves the column as encoded.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	case TypeGorilla:
		return "Gorilla"
	default:
		return "Unknown"
	}
}

// ValidForKeys reports whether e can encode the key column.
func (e EncodingType) ValidForKeys() bool {
	return e == TypeRaw || e == TypeDelta
}

// ValidForValues reports whether e can encode the value column.
func (e EncodingType) ValidForValues() bool {
	return e == TypeRaw || e == TypeGorilla
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c names a supported compression.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseEncodingType parses a case-insensitive encoding name such as "delta".
func ParseEncodingType(name string) (EncodingType, error) {
	for _, e := range []EncodingType{TypeRaw, TypeDelta, TypeGorilla} {
		if strings.EqualFold(name, e.String()) {
			return e, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrInvalidEncodingType, name)
}

// ParseCompressionType parses a case-insensitive compression name such as "zstd".
func ParseCompressionType(name string) (CompressionType, error) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
}
