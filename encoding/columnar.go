package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/datets/endian"
	"github.com/arloliu/datets/errs"
	"github.com/arloliu/datets/format"
)

// ColumnarEncoder appends values of one column to an internal pooled buffer.
type ColumnarEncoder[T any] interface {
	// Bytes returns the encoded column. The slice is valid until the next
	// Write, WriteSlice or Finish and must not be modified.
	Bytes() []byte

	// Len returns the number of values written since the encoder was created.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Reset clears the running encoder state but keeps the encoded bytes, so
	// a new independent run can be appended to the same column.
	Reset()

	// Finish returns the buffer to its pool. The encoder must not be used
	// afterwards:
	//
	//	enc := encoding.NewKeyDeltaEncoder()
	//	defer enc.Finish()
	Finish()

	// Write appends a single value.
	Write(value T)

	// WriteSlice appends every value of values.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values back from a column produced by the matching encoder.
type ColumnarDecoder[T any] interface {
	// All yields up to count values from data. Malformed or truncated data
	// ends the sequence early.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false if index is outside [0, count)
	// or the data is malformed.
	At(data []byte, index int, count int) (T, bool)
}

// DecodeInto appends exactly count values from data to dst.
//
// Returns:
//   - []T: dst extended by count values
//   - error: ErrCorruptPayload if data holds fewer than count values
func DecodeInto[T any](dec ColumnarDecoder[T], dst []T, data []byte, count int) ([]T, error) {
	start := len(dst)
	for v := range dec.All(data, count) {
		dst = append(dst, v)
	}

	if got := len(dst) - start; got != count {
		return dst, fmt.Errorf("%w: decoded %d of %d values", errs.ErrCorruptPayload, got, count)
	}

	return dst, nil
}

// NewKeyEncoder returns the key column encoder for enc.
func NewKeyEncoder(enc format.EncodingType, engine endian.EndianEngine) (ColumnarEncoder[int], error) {
	switch enc {
	case format.TypeRaw:
		return NewKeyRawEncoder(engine), nil
	case format.TypeDelta:
		return NewKeyDeltaEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s is not a key encoding", errs.ErrInvalidEncodingType, enc)
	}
}

// NewKeyDecoder returns the key column decoder for enc.
func NewKeyDecoder(enc format.EncodingType, engine endian.EndianEngine) (ColumnarDecoder[int], error) {
	switch enc {
	case format.TypeRaw:
		return NewKeyRawDecoder(engine), nil
	case format.TypeDelta:
		return NewKeyDeltaDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s is not a key encoding", errs.ErrInvalidEncodingType, enc)
	}
}

// NewValueEncoder returns the value column encoder for enc.
func NewValueEncoder(enc format.EncodingType, engine endian.EndianEngine) (ColumnarEncoder[float64], error) {
	switch enc {
	case format.TypeRaw:
		return NewNumericRawEncoder(engine), nil
	case format.TypeGorilla:
		return NewNumericGorillaEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s is not a value encoding", errs.ErrInvalidEncodingType, enc)
	}
}

// NewValueDecoder returns the value column decoder for enc.
func NewValueDecoder(enc format.EncodingType, engine endian.EndianEngine) (ColumnarDecoder[float64], error) {
	switch enc {
	case format.TypeRaw:
		return NewNumericRawDecoder(engine), nil
	case format.TypeGorilla:
		return NewNumericGorillaDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s is not a value encoding", errs.ErrInvalidEncodingType, enc)
	}
}
