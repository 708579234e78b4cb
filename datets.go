// Package datets provides immutable date-indexed time series with set-algebra
// alignment and a compact binary wire format.
//
// A series maps calendar dates to values in strictly ascending date order.
// Dates are stored as dense integer keys (see package datekey), which keeps
// lookups at O(log n) and lets two series be combined with a single merge
// pass over their keys.
//
// # Core Features
//
//   - Immutable Series[V] and NumericSeries with O(log n) lookup
//   - Inclusive or exclusive date-range slicing, head, tail and positional lag
//   - Element-wise arithmetic aligned by date intersection or union
//   - Structural sharing of key sets between value-only transforms
//   - Mutable Builder with last-write-wins semantics and bulk loading
//   - Wire frames with delta/gorilla encodings, zstd/s2/lz4 compression and
//     xxHash64 checksums
//
// # Basic Usage
//
// Building and combining series:
//
//	import "github.com/arloliu/datets"
//
//	prices, _ := datets.NewNumeric([]datekey.Date{
//	    datekey.Of(2024, 1, 2),
//	    datekey.Of(2024, 1, 3),
//	}, []float64{101.5, 102.25})
//
//	fx, _ := datets.NewNumeric([]datekey.Date{
//	    datekey.Of(2024, 1, 3),
//	    datekey.Of(2024, 1, 4),
//	}, []float64{1.09, 1.1})
//
//	// dates present in both inputs only: {2024-01-03: 111.4525}
//	converted := prices.Multiply(fx)
//
// Encoding and decoding:
//
//	data, _ := datets.Encode(converted)
//	decoded, _ := datets.Decode(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the series and
// wire packages for the most common use cases. For fine-grained control use
// those packages directly.
package datets

import (
	"github.com/arloliu/datets/datekey"
	"github.com/arloliu/datets/format"
	"github.com/arloliu/datets/series"
	"github.com/arloliu/datets/wire"
)

var defaultWireOptions = []wire.Option{
	wire.WithLittleEndian(),
	wire.WithKeyEncoding(format.TypeDelta),
	wire.WithKeyCompression(format.CompressionNone),
	wire.WithValueEncoding(format.TypeGorilla),
	wire.WithValueCompression(format.CompressionNone),
}

// NewNumeric creates a numeric series from parallel date and value slices.
//
// Both slices are copied. Dates must be strictly ascending.
//
// Returns:
//   - series.NumericSeries: The new series
//   - error: ErrLengthMismatch, ErrDomainRange, ErrInvalidDate or ErrInvalidOrder
func NewNumeric(dates []datekey.Date, values []float64) (series.NumericSeries, error) {
	return series.NumericOfDates(dates, values)
}

// NewNumericFromMap creates a numeric series from an unordered date map.
func NewNumericFromMap(m map[datekey.Date]float64) (series.NumericSeries, error) {
	b := series.NewNumericBuilder()
	if err := b.PutMap(m); err != nil {
		return series.NumericSeries{}, err
	}

	return series.BuildNumeric(b), nil
}

// NewSeries creates a generic series from parallel date and value slices.
func NewSeries[V any](dates []datekey.Date, values []V) (series.Series[V], error) {
	return series.OfDates(dates, values)
}

// NewBuilder creates an empty numeric builder.
func NewBuilder() *series.Builder[float64] {
	return series.NewNumericBuilder()
}

// Encode serializes s with the recommended settings: little-endian, delta
// keys and gorilla values, uncompressed. Extra opts override the defaults.
//
// Example:
//
//	data, err := datets.Encode(s, wire.WithValueCompression(format.CompressionZstd))
func Encode(s series.NumericSeries, opts ...wire.Option) ([]byte, error) {
	all := make([]wire.Option, 0, len(defaultWireOptions)+len(opts))
	all = append(all, defaultWireOptions...)
	all = append(all, opts...)

	return wire.Encode(s, all...)
}

// Decode parses a frame produced by Encode or wire.Encode.
func Decode(data []byte) (series.NumericSeries, error) {
	return wire.Decode(data)
}

// Fingerprint returns an encoding-independent 64-bit digest of s.
func Fingerprint(s series.NumericSeries) uint64 {
	return wire.Fingerprint(s)
}
