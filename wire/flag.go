package wire

import (
	"fmt"

	"github.com/arloliu/datets/endian"
	"github.com/arloliu/datets/errs"
	"github.com/arloliu/datets/format"
)

// Flag holds the packed option, encoding and compression fields of a frame header.
type Flag struct {
	// Options packs the byte order (bit 0) and the magic number (bits 4-15).
	// It is always stored little-endian so a reader can detect the byte order
	// of the remaining fields.
	Options uint16
	// KeyEncoding is the key column encoding.
	KeyEncoding uint8
	// ValueEncoding is the value column encoding.
	ValueEncoding uint8
	// Compression holds key compression in bits 0-3 and value compression in bits 4-7.
	Compression uint8
}

// NewFlag returns the default flag: little-endian, delta keys, gorilla
// values, uncompressed keys and zstd values.
func NewFlag() Flag {
	f := Flag{Options: MagicNumericV1Opt}
	f.WithLittleEndian()
	f.SetKeyEncoding(format.TypeDelta)
	f.SetValueEncoding(format.TypeGorilla)
	f.SetKeyCompression(format.CompressionNone)
	f.SetValueCompression(format.CompressionZstd)

	return f
}

// IsBigEndian reports whether multi-byte fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithLittleEndian selects little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// MagicNumber returns bits 4-15 of Options.
func (f Flag) MagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// KeyEncodingType returns the key column encoding.
func (f Flag) KeyEncodingType() format.EncodingType {
	return format.EncodingType(f.KeyEncoding)
}

// SetKeyEncoding sets the key column encoding.
func (f *Flag) SetKeyEncoding(enc format.EncodingType) {
	f.KeyEncoding = uint8(enc)
}

// ValueEncodingType returns the value column encoding.
func (f Flag) ValueEncodingType() format.EncodingType {
	return format.EncodingType(f.ValueEncoding)
}

// SetValueEncoding sets the value column encoding.
func (f *Flag) SetValueEncoding(enc format.EncodingType) {
	f.ValueEncoding = uint8(enc)
}

// KeyCompression returns the key compression from bits 0-3 of Compression.
func (f Flag) KeyCompression() format.CompressionType {
	return format.CompressionType(f.Compression & 0x0F)
}

// SetKeyCompression sets bits 0-3 of Compression.
func (f *Flag) SetKeyCompression(c format.CompressionType) {
	f.Compression &^= 0x0F
	f.Compression |= uint8(c) & 0x0F
}

// ValueCompression returns the value compression from bits 4-7 of Compression.
func (f Flag) ValueCompression() format.CompressionType {
	return format.CompressionType(f.Compression >> 4)
}

// SetValueCompression sets bits 4-7 of Compression.
func (f *Flag) SetValueCompression(c format.CompressionType) {
	f.Compression &^= 0xF0
	f.Compression |= (uint8(c) & 0x0F) << 4
}

// Validate checks the magic number, reserved bits, encodings and compressions.
func (f Flag) Validate() error {
	if f.MagicNumber() != MagicNumericV1Opt {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagic, f.MagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits set", errs.ErrInvalidMagic)
	}
	if !f.KeyEncodingType().ValidForKeys() {
		return fmt.Errorf("%w: key encoding %s", errs.ErrInvalidEncodingType, f.KeyEncodingType())
	}
	if !f.ValueEncodingType().ValidForValues() {
		return fmt.Errorf("%w: value encoding %s", errs.ErrInvalidEncodingType, f.ValueEncodingType())
	}
	if !f.KeyCompression().Valid() {
		return fmt.Errorf("%w: key compression %s", errs.ErrInvalidCompression, f.KeyCompression())
	}
	if !f.ValueCompression().Valid() {
		return fmt.Errorf("%w: value compression %s", errs.ErrInvalidCompression, f.ValueCompression())
	}

	return nil
}

// EndianEngine returns the engine matching the byte order bit.
func (f Flag) EndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}
