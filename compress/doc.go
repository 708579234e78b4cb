// Package compress provides the codecs applied to encoded wire columns.
//
// A wire frame is built in two stages. Column encodings in package encoding
// exploit the structure of dates and values (varint key gaps, Gorilla XOR
// values); a Codec from this package then compresses each encoded column
// independently:
//
//   - None (format.CompressionNone): pass-through
//   - Zstd (format.CompressionZstd): best ratio, moderate speed
//   - S2 (format.CompressionS2): balanced ratio and speed
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// Codecs are looked up by their header identifier:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(column)
//
// Delta-encoded daily keys are already small, so None or S2 are usually
// enough for keys; raw values gain the most from Zstd.
//
// # Build Tags
//
// Zstd uses the pure Go klauspost/compress implementation. Building with
// -tags gozstd and cgo enabled links libzstd through valyala/gozstd instead.
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool and are safe for
// concurrent use.
package compress
