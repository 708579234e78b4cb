package wire

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/datets/compress"
	"github.com/arloliu/datets/encoding"
	"github.com/arloliu/datets/errs"
	"github.com/arloliu/datets/format"
	"github.com/arloliu/datets/internal/hash"
	"github.com/arloliu/datets/internal/options"
	"github.com/arloliu/datets/internal/pool"
	"github.com/arloliu/datets/series"
)

// Encode serializes s into a self-describing frame.
//
// The key and value columns are encoded and compressed independently
// according to opts, then framed behind a Header carrying a checksum of the
// payloads.
//
// Parameters:
//   - s: Series to encode, possibly empty
//   - opts: Byte order, encoding and compression options
//
// Returns:
//   - []byte: The frame, owned by the caller
//   - error: Option errors, ErrSeriesTooLarge, or compression failures
//
// Example:
//
//	data, err := wire.Encode(s,
//	    wire.WithKeyEncoding(format.TypeDelta),
//	    wire.WithValueEncoding(format.TypeGorilla),
//	    wire.WithCompression(format.CompressionZstd),
//	)
func Encode(s series.NumericSeries, opts ...Option) ([]byte, error) {
	config := newEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	if uint64(s.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries", errs.ErrSeriesTooLarge, s.Len())
	}

	header := NewHeader()
	header.Flag = config.flag
	header.Count = uint32(s.Len()) //nolint:gosec

	keyPayload, err := encodeKeys(config.flag, s.Keys())
	if err != nil {
		return nil, err
	}
	valPayload, err := encodeValues(config.flag, s.Values())
	if err != nil {
		return nil, err
	}

	if uint64(len(keyPayload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: key payload of %d bytes", errs.ErrSeriesTooLarge, len(keyPayload))
	}
	header.KeyPayloadLen = uint32(len(keyPayload)) //nolint:gosec

	frame := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(frame)

	frame.Grow(HeaderSize + len(keyPayload) + len(valPayload))
	hdr := frame.Extend(HeaderSize)
	_, _ = frame.Write(keyPayload)
	_, _ = frame.Write(valPayload)

	header.Checksum = hash.Checksum(frame.B[HeaderSize:])
	header.put(hdr)

	return slices.Clone(frame.Bytes()), nil
}

func encodeKeys(flag Flag, keys []int) ([]byte, error) {
	enc, err := encoding.NewKeyEncoder(flag.KeyEncodingType(), flag.EndianEngine())
	if err != nil {
		return nil, err
	}
	defer enc.Finish()

	enc.WriteSlice(keys)

	return compressPayload(flag.KeyCompression(), enc.Bytes())
}

func encodeValues(flag Flag, values []float64) ([]byte, error) {
	enc, err := encoding.NewValueEncoder(flag.ValueEncodingType(), flag.EndianEngine())
	if err != nil {
		return nil, err
	}
	defer enc.Finish()

	enc.WriteSlice(values)

	return compressPayload(flag.ValueCompression(), enc.Bytes())
}

// compressPayload returns a slice that stays valid after the encoder's
// buffer is released.
func compressPayload(comp format.CompressionType, data []byte) ([]byte, error) {
	codec, err := compress.GetCodec(comp)
	if err != nil {
		return nil, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", comp, err)
	}

	// the no-op codec hands back the pooled column buffer
	if comp == format.CompressionNone {
		out = slices.Clone(out)
	}

	return out, nil
}

// Stats reports how much a frame saves over the raw 4-byte key plus 8-byte
// value representation of its entries. Algorithm is the value compression.
func Stats(frame []byte) (compress.CompressionStats, error) {
	h, err := ParseHeader(frame)
	if err != nil {
		return compress.CompressionStats{}, err
	}

	return compress.CompressionStats{
		Algorithm:      h.Flag.ValueCompression(),
		OriginalSize:   HeaderSize + int64(h.Count)*12,
		CompressedSize: int64(len(frame)),
	}, nil
}

// Fingerprint returns a 64-bit digest of the entries of s. Equal series
// have equal fingerprints regardless of how they were encoded.
func Fingerprint(s series.NumericSeries) uint64 {
	return hash.Fingerprint(s.Keys(), s.Values())
}
