package encoding

import (
	"iter"
	"math"

	"github.com/arloliu/datets/endian"
	"github.com/arloliu/datets/internal/pool"
)

const numericRawWidth = 8

// NumericRawEncoder stores float64 values as their IEEE 754 bits in the
// engine's byte order, 8 bytes per value.
type NumericRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*NumericRawEncoder)(nil)

// NewNumericRawEncoder creates a raw value encoder using engine's byte order.
func NewNumericRawEncoder(engine endian.EndianEngine) *NumericRawEncoder {
	return &NumericRawEncoder{
		engine: engine,
		buf:    pool.GetColumnBuffer(),
	}
}

// Write appends one value.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.engine.PutUint64(e.buf.Extend(numericRawWidth), math.Float64bits(val))
}

// WriteSlice appends values with a single buffer growth.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(values) == 0 {
		return
	}

	e.count += len(values)
	out := e.buf.Extend(len(values) * numericRawWidth)
	for i, v := range values {
		e.engine.PutUint64(out[i*numericRawWidth:], math.Float64bits(v))
	}
}

// Bytes returns the encoded column.
func (e *NumericRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *NumericRawEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *NumericRawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset is a no-op: raw values carry no running state.
func (e *NumericRawEncoder) Reset() {}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *NumericRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// NumericRawDecoder reads columns written by NumericRawEncoder. It is stateless.
type NumericRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = NumericRawDecoder{}

// NewNumericRawDecoder creates a decoder; engine must match the encoder's.
func NewNumericRawDecoder(engine endian.EndianEngine) NumericRawDecoder {
	return NumericRawDecoder{engine: engine}
}

// All yields count values. It yields nothing when data is shorter than count values.
func (d NumericRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(data) < count*numericRawWidth {
			return
		}

		for i := range count {
			start := i * numericRawWidth
			if !yield(math.Float64frombits(d.engine.Uint64(data[start : start+numericRawWidth]))) {
				return
			}
		}
	}
}

// At returns the value at index in O(1).
func (d NumericRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * numericRawWidth
	if start+numericRawWidth > len(data) {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[start : start+numericRawWidth])), true
}
