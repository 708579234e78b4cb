package wire

import (
	"fmt"

	"github.com/arloliu/datets/compress"
	"github.com/arloliu/datets/encoding"
	"github.com/arloliu/datets/errs"
	"github.com/arloliu/datets/format"
	"github.com/arloliu/datets/internal/hash"
	"github.com/arloliu/datets/internal/pool"
	"github.com/arloliu/datets/series"
)

// Decode parses a frame produced by Encode back into a series.
//
// The checksum is verified before any payload is decompressed. Decoded keys
// go through the same validation as series.NumericOfKeys, so a frame can
// never yield an unordered series.
//
// Returns:
//   - series.NumericSeries: The decoded series
//   - error: header errors from ParseHeader, ErrChecksumMismatch,
//     ErrCorruptPayload, or series construction errors
func Decode(data []byte) (series.NumericSeries, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return series.NumericSeries{}, err
	}

	payload := data[HeaderSize:]
	if sum := hash.Checksum(payload); sum != h.Checksum {
		return series.NumericSeries{}, fmt.Errorf("%w: header 0x%016x, payload 0x%016x", errs.ErrChecksumMismatch, h.Checksum, sum)
	}

	if uint64(h.KeyPayloadLen) > uint64(len(payload)) {
		return series.NumericSeries{}, fmt.Errorf("%w: key payload length %d exceeds %d bytes", errs.ErrCorruptPayload, h.KeyPayloadLen, len(payload))
	}
	if h.Count == 0 {
		return series.EmptyNumeric(), nil
	}

	count := int(h.Count)
	engine := h.Flag.EndianEngine()

	keyData, err := decompressPayload(h.Flag.KeyCompression(), payload[:h.KeyPayloadLen])
	if err != nil {
		return series.NumericSeries{}, err
	}
	valData, err := decompressPayload(h.Flag.ValueCompression(), payload[h.KeyPayloadLen:])
	if err != nil {
		return series.NumericSeries{}, err
	}

	keyDec, err := encoding.NewKeyDecoder(h.Flag.KeyEncodingType(), engine)
	if err != nil {
		return series.NumericSeries{}, err
	}
	valDec, err := encoding.NewValueDecoder(h.Flag.ValueEncodingType(), engine)
	if err != nil {
		return series.NumericSeries{}, err
	}

	// every encoded key takes at least one byte; cap preallocation by the data
	keys, releaseKeys := pool.GetIntSlice(min(count, len(keyData)))
	defer releaseKeys()
	values, releaseValues := pool.GetFloat64Slice(min(count, len(valData)))
	defer releaseValues()

	if keys, err = encoding.DecodeInto(keyDec, keys, keyData, count); err != nil {
		return series.NumericSeries{}, fmt.Errorf("key payload: %w", err)
	}
	if values, err = encoding.DecodeInto(valDec, values, valData, count); err != nil {
		return series.NumericSeries{}, fmt.Errorf("value payload: %w", err)
	}

	s, err := series.NumericOfKeys(keys, values)
	if err != nil {
		return series.NumericSeries{}, fmt.Errorf("%w: %w", errs.ErrCorruptPayload, err)
	}

	return s, nil
}

func decompressPayload(comp format.CompressionType, data []byte) ([]byte, error) {
	codec, err := compress.GetCodec(comp)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress %s payload: %w", errs.ErrCorruptPayload, comp, err)
	}

	return out, nil
}
