package encoding

import (
	"iter"
	"math"
	"math/bits"

	"github.com/arloliu/datets/internal/pool"
)

// NumericGorillaEncoder compresses float64 values with the Gorilla XOR scheme.
//
// The first value is stored as 64 raw bits. Each following value is XORed
// with its predecessor and written as:
//   - '0' when the XOR is zero (value unchanged)
//   - '1' '0' + meaningful bits when they fit the previous leading/trailing window
//   - '1' '1' + 5 bits leading zeros + 6 bits (block size - 1) + meaningful bits
//
// Slowly moving daily series such as prices or rates typically take 1-20
// bits per value. See https://www.vldb.org/pvldb/vol8/p1816-teller.pdf.
//
// The last byte is zero-padded, so Bytes is always a complete column.
type NumericGorillaEncoder struct {
	buf           *pool.ByteBuffer
	prevValue     uint64
	count         int
	free          int // unused low bits in the last byte of buf
	prevLeading   int
	prevTrailing  int
	prevBlockSize int
	runStarted    bool
}

var _ ColumnarEncoder[float64] = (*NumericGorillaEncoder)(nil)

// NewNumericGorillaEncoder creates a Gorilla encoder.
func NewNumericGorillaEncoder() *NumericGorillaEncoder {
	return &NumericGorillaEncoder{buf: pool.GetColumnBuffer()}
}

// Write appends one value.
//
// Panics if Finish has been called.
func (e *NumericGorillaEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.count++
	e.writeValue(math.Float64bits(val))
}

// WriteSlice appends values.
//
// Panics if Finish has been called.
func (e *NumericGorillaEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.count += len(values)
	e.buf.Grow(8 + len(values))
	for _, v := range values {
		e.writeValue(math.Float64bits(v))
	}
}

func (e *NumericGorillaEncoder) writeValue(valBits uint64) {
	if !e.runStarted {
		e.runStarted = true
		e.prevValue = valBits
		e.prevBlockSize = 0
		e.writeBits(valBits, 64)

		return
	}

	xor := valBits ^ e.prevValue
	e.prevValue = valBits

	if xor == 0 {
		e.writeBits(0, 1)
		return
	}

	leading := bits.LeadingZeros64(xor)
	trailing := bits.TrailingZeros64(xor)

	// Leading zeros are stored in 5 bits; widen the window downwards instead.
	if leading > 31 {
		leading = 31
	}

	if e.prevBlockSize > 0 && leading >= e.prevLeading && trailing >= e.prevTrailing {
		e.writeBits(0b10, 2)
		e.writeBits(xor>>e.prevTrailing, e.prevBlockSize)

		return
	}

	blockSize := 64 - leading - trailing
	e.writeBits(0b11, 2)
	e.writeBits(uint64(leading), 5)     //nolint:gosec
	e.writeBits(uint64(blockSize-1), 6) //nolint:gosec
	e.writeBits(xor>>trailing, blockSize)

	e.prevLeading = leading
	e.prevTrailing = trailing
	e.prevBlockSize = blockSize
}

// writeBits appends the low n bits of value, most significant first.
func (e *NumericGorillaEncoder) writeBits(value uint64, n int) {
	for n > 0 {
		if e.free == 0 {
			_ = e.buf.WriteByte(0)
			e.free = 8
		}

		take := min(n, e.free)
		chunk := (value >> (n - take)) & (1<<take - 1)
		e.buf.B[len(e.buf.B)-1] |= byte(chunk << (e.free - take))
		e.free -= take
		n -= take
	}
}

// Bytes returns the encoded column.
func (e *NumericGorillaEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *NumericGorillaEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes, including the padded last byte.
func (e *NumericGorillaEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset starts a new run: the next value is written uncompressed. Bits of
// the next run continue in the current byte.
func (e *NumericGorillaEncoder) Reset() {
	e.runStarted = false
	e.prevValue = 0
	e.prevLeading = 0
	e.prevTrailing = 0
	e.prevBlockSize = 0
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *NumericGorillaEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.count = 0
	e.free = 0
	e.Reset()
}

// NumericGorillaDecoder reads a single run written by NumericGorillaEncoder.
// It is stateless and safe for concurrent use.
type NumericGorillaDecoder struct{}

var _ ColumnarDecoder[float64] = NumericGorillaDecoder{}

// NewNumericGorillaDecoder creates a Gorilla decoder.
func NewNumericGorillaDecoder() NumericGorillaDecoder {
	return NumericGorillaDecoder{}
}

// All yields up to count values, stopping early on truncated or malformed data.
func (d NumericGorillaDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if len(data) == 0 || count <= 0 {
			return
		}

		br := bitReader{data: data}
		prev, ok := br.readBits(64)
		if !ok || !yield(math.Float64frombits(prev)) {
			return
		}

		trailing, blockSize := 0, 0
		for range count - 1 {
			changed, ok := br.readBits(1)
			if !ok {
				return
			}

			if changed == 1 {
				newBlock, ok := br.readBits(1)
				if !ok {
					return
				}

				if newBlock == 1 {
					leading, ok1 := br.readBits(5)
					size, ok2 := br.readBits(6)
					if !ok1 || !ok2 {
						return
					}
					blockSize = int(size) + 1                  //nolint:gosec
					trailing = 64 - int(leading) - blockSize //nolint:gosec
					if trailing < 0 {
						return
					}
				} else if blockSize == 0 {
					return
				}

				meaningful, ok := br.readBits(blockSize)
				if !ok {
					return
				}
				prev ^= meaningful << trailing
			}

			if !yield(math.Float64frombits(prev)) {
				return
			}
		}
	}
}

// At decodes sequentially up to index.
func (d NumericGorillaDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for v := range d.All(data, index+1) {
		if i == index {
			return v, true
		}
		i++
	}

	return 0, false
}

// bitReader reads big-endian bit fields from a byte slice.
type bitReader struct {
	data []byte
	pos  int // bit offset
}

// readBits reads n <= 64 bits, returning false when fewer remain.
func (br *bitReader) readBits(n int) (uint64, bool) {
	if br.pos+n > len(br.data)*8 {
		return 0, false
	}

	var v uint64
	for n > 0 {
		avail := 8 - br.pos&7
		take := min(n, avail)
		chunk := (uint64(br.data[br.pos>>3]) >> (avail - take)) & (1<<take - 1)
		v = v<<take | chunk
		br.pos += take
		n -= take
	}

	return v, true
}
