package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/datets/internal/pool"
)

// KeyDeltaEncoder stores dense date keys as varint gaps.
//
// The first key of a run is zigzag + varint encoded so the negative MinKey
// sentinel stays compact. Every following key is stored as the unsigned
// varint gap from its predecessor. Dense keys of consecutive days differ by
// 1 and month boundaries by at most 73, so a daily series costs one byte per
// entry after the first; a year boundary costs two.
//
// Keys must be ascending within a run. Decoding is sequential.
type KeyDeltaEncoder struct {
	buf     *pool.ByteBuffer
	temp    [binary.MaxVarintLen64]byte
	prevKey int64
	count   int
	started bool
}

var _ ColumnarEncoder[int] = (*KeyDeltaEncoder)(nil)

// NewKeyDeltaEncoder creates a gap encoder.
//
// Example:
//
//	enc := NewKeyDeltaEncoder()
//	defer enc.Finish()
//	enc.WriteSlice([]int{20240130, 20240131, 20240201}) // 4 + 1 + 1 bytes
func NewKeyDeltaEncoder() *KeyDeltaEncoder {
	return &KeyDeltaEncoder{buf: pool.GetColumnBuffer()}
}

// Write appends one key.
func (e *KeyDeltaEncoder) Write(key int) {
	e.count++
	e.writeKey(int64(key))
}

// WriteSlice appends keys, growing the buffer once for the common case of
// one-byte gaps.
func (e *KeyDeltaEncoder) WriteSlice(keys []int) {
	if len(keys) == 0 {
		return
	}

	e.count += len(keys)
	e.buf.Grow(binary.MaxVarintLen64 + len(keys))
	for _, key := range keys {
		e.writeKey(int64(key))
	}
}

func (e *KeyDeltaEncoder) writeKey(key int64) {
	var n int
	if !e.started {
		e.started = true
		n = binary.PutUvarint(e.temp[:], uint64((key<<1)^(key>>63))) //nolint:gosec
	} else {
		n = binary.PutUvarint(e.temp[:], uint64(key-e.prevKey)) //nolint:gosec
	}
	_, _ = e.buf.Write(e.temp[:n])
	e.prevKey = key
}

// Bytes returns the encoded column.
func (e *KeyDeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of keys written.
func (e *KeyDeltaEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *KeyDeltaEncoder) Size() int {
	return e.buf.Len()
}

// Reset starts a new run: the next key is written in full.
func (e *KeyDeltaEncoder) Reset() {
	e.started = false
	e.prevKey = 0
}

// Finish returns the buffer to the pool.
func (e *KeyDeltaEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
	e.Reset()
}

// KeyDeltaDecoder reads a single run written by KeyDeltaEncoder. It is stateless.
type KeyDeltaDecoder struct{}

var _ ColumnarDecoder[int] = KeyDeltaDecoder{}

// NewKeyDeltaDecoder creates a gap decoder.
func NewKeyDeltaDecoder() KeyDeltaDecoder {
	return KeyDeltaDecoder{}
}

// All yields up to count keys, stopping early on malformed varints.
func (d KeyDeltaDecoder) All(data []byte, count int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if len(data) == 0 || count <= 0 {
			return
		}

		zigzag, n := binary.Uvarint(data)
		if n <= 0 {
			return
		}
		offset := n
		cur := int64(zigzag>>1) ^ -int64(zigzag&1) //nolint:gosec
		if !yield(int(cur)) {
			return
		}

		for range count - 1 {
			gap, n := binary.Uvarint(data[offset:])
			if n <= 0 {
				return
			}
			offset += n
			cur += int64(gap) //nolint:gosec
			if !yield(int(cur)) {
				return
			}
		}
	}
}

// At decodes sequentially up to index.
func (d KeyDeltaDecoder) At(data []byte, index int, count int) (int, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for key := range d.All(data, index+1) {
		if i == index {
			return key, true
		}
		i++
	}

	return 0, false
}
