package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer(t *testing.T) {
	t.Run("new buffer", func(t *testing.T) {
		bb := NewByteBuffer(64)
		require.Equal(t, 0, bb.Len())
		require.Equal(t, 64, cap(bb.B))
	})

	t.Run("write and reset", func(t *testing.T) {
		bb := NewByteBuffer(8)
		n, err := bb.Write([]byte("2024-"))
		require.NoError(t, err)
		require.Equal(t, 5, n)
		require.NoError(t, bb.WriteByte('1'))
		require.Equal(t, []byte("2024-1"), bb.Bytes())

		capacity := cap(bb.B)
		bb.Reset()
		require.Equal(t, 0, bb.Len())
		require.Equal(t, capacity, cap(bb.B))
	})

	t.Run("grow keeps content", func(t *testing.T) {
		bb := NewByteBuffer(4)
		_, _ = bb.Write([]byte("abcd"))
		bb.Grow(100)
		require.GreaterOrEqual(t, cap(bb.B)-bb.Len(), 100)
		require.Equal(t, []byte("abcd"), bb.Bytes())

		before := cap(bb.B)
		bb.Grow(10)
		require.Equal(t, before, cap(bb.B), "no growth when capacity suffices")
	})

	t.Run("extend", func(t *testing.T) {
		bb := NewByteBuffer(2)
		_, _ = bb.Write([]byte{1})
		tail := bb.Extend(3)
		require.Len(t, tail, 3)
		copy(tail, []byte{2, 3, 4})
		require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes())
	})

	t.Run("write to", func(t *testing.T) {
		bb := NewByteBuffer(8)
		_, _ = bb.Write([]byte("frame"))

		var out bytes.Buffer
		n, err := bb.WriteTo(&out)
		require.NoError(t, err)
		require.Equal(t, int64(5), n)
		require.Equal(t, "frame", out.String())
	})
}

func TestByteBufferPool(t *testing.T) {
	t.Run("reuses reset buffers", func(t *testing.T) {
		p := NewByteBufferPool(16, 64)
		bb := p.Get()
		_, _ = bb.Write([]byte("abc"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("drops oversized buffers", func(t *testing.T) {
		p := NewByteBufferPool(16, 64)
		bb := p.Get()
		bb.Grow(1024)
		p.Put(bb)
		require.Equal(t, 0, bb.Len())

		fresh := p.Get()
		require.LessOrEqual(t, cap(fresh.B), 64)
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(16, 64)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("default pools", func(t *testing.T) {
		column := GetColumnBuffer()
		require.GreaterOrEqual(t, cap(column.B), ColumnBufferDefaultSize)
		PutColumnBuffer(column)

		frame := GetFrameBuffer()
		require.GreaterOrEqual(t, cap(frame.B), FrameBufferDefaultSize)
		PutFrameBuffer(frame)
	})

	t.Run("concurrent use", func(t *testing.T) {
		p := NewByteBufferPool(16, 1024)
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					bb := p.Get()
					_ = bb.WriteByte(byte(i))
					p.Put(bb)
				}
			}()
		}
		wg.Wait()
	})
}
