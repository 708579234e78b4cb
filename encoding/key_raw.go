package encoding

import (
	"iter"

	"github.com/arloliu/datets/endian"
	"github.com/arloliu/datets/internal/pool"
)

const keyRawWidth = 4

// KeyRawEncoder stores each dense date key as a fixed-width int32.
//
// Every key, including the MinKey and MaxKey sentinels, fits in 32 bits, so
// the column takes exactly 4 bytes per entry and supports O(1) random access.
type KeyRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[int] = (*KeyRawEncoder)(nil)

// NewKeyRawEncoder creates a fixed-width key encoder using engine's byte order.
func NewKeyRawEncoder(engine endian.EndianEngine) *KeyRawEncoder {
	return &KeyRawEncoder{
		engine: engine,
		buf:    pool.GetColumnBuffer(),
	}
}

// Write appends one key.
func (e *KeyRawEncoder) Write(key int) {
	e.count++
	e.engine.PutUint32(e.buf.Extend(keyRawWidth), uint32(int32(key))) //nolint:gosec
}

// WriteSlice appends keys with a single buffer growth.
func (e *KeyRawEncoder) WriteSlice(keys []int) {
	if len(keys) == 0 {
		return
	}

	e.count += len(keys)
	out := e.buf.Extend(len(keys) * keyRawWidth)
	for i, key := range keys {
		e.engine.PutUint32(out[i*keyRawWidth:], uint32(int32(key))) //nolint:gosec
	}
}

// Bytes returns the encoded column.
func (e *KeyRawEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of keys written.
func (e *KeyRawEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *KeyRawEncoder) Size() int {
	return e.buf.Len()
}

// Reset is a no-op: raw keys carry no running state.
func (e *KeyRawEncoder) Reset() {}

// Finish returns the buffer to the pool.
func (e *KeyRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// KeyRawDecoder reads columns written by KeyRawEncoder. It is stateless.
type KeyRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[int] = KeyRawDecoder{}

// NewKeyRawDecoder creates a decoder; engine must match the encoder's.
func NewKeyRawDecoder(engine endian.EndianEngine) KeyRawDecoder {
	return KeyRawDecoder{engine: engine}
}

// All yields count keys. It yields nothing when data is shorter than count keys.
func (d KeyRawDecoder) All(data []byte, count int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if count <= 0 || len(data) < count*keyRawWidth {
			return
		}

		for i := range count {
			if !yield(d.decode(data, i)) {
				return
			}
		}
	}
}

// At returns the key at index in O(1).
func (d KeyRawDecoder) At(data []byte, index int, count int) (int, bool) {
	if index < 0 || index >= count || (index+1)*keyRawWidth > len(data) {
		return 0, false
	}

	return d.decode(data, index), true
}

func (d KeyRawDecoder) decode(data []byte, index int) int {
	start := index * keyRawWidth
	return int(int32(d.engine.Uint32(data[start : start+keyRawWidth]))) //nolint:gosec
}
