package compress

// ZstdCompressor uses Zstandard, the best ratio of the built-in codecs.
//
// The pure Go implementation from klauspost/compress is used by default.
// Building with the gozstd tag (and cgo) switches to the libzstd binding
// from valyala/gozstd. Both produce standard zstd frames, so either build
// decodes the other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
