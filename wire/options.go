package wire

import (
	"fmt"

	"github.com/arloliu/datets/endian"
	"github.com/arloliu/datets/errs"
	"github.com/arloliu/datets/format"
	"github.com/arloliu/datets/internal/options"
)

// encoderConfig holds the frame layout chosen by options.
type encoderConfig struct {
	flag Flag
}

func newEncoderConfig() *encoderConfig {
	return &encoderConfig{flag: NewFlag()}
}

// Option configures Encode.
type Option = options.Option[*encoderConfig]

// WithLittleEndian writes multi-byte fields little-endian. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *encoderConfig) {
		c.flag.WithLittleEndian()
	})
}

// WithBigEndian writes multi-byte fields big-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *encoderConfig) {
		c.flag.WithBigEndian()
	})
}

// WithNativeEndian uses the byte order of the running machine.
func WithNativeEndian() Option {
	return options.NoError(func(c *encoderConfig) {
		if endian.IsBigEndian(endian.Native()) {
			c.flag.WithBigEndian()
		} else {
			c.flag.WithLittleEndian()
		}
	})
}

// WithKeyEncoding selects the key column encoding: TypeRaw or TypeDelta.
func WithKeyEncoding(enc format.EncodingType) Option {
	return options.New(func(c *encoderConfig) error {
		if !enc.ValidForKeys() {
			return fmt.Errorf("%w: %s is not a key encoding", errs.ErrInvalidEncodingType, enc)
		}
		c.flag.SetKeyEncoding(enc)

		return nil
	})
}

// WithValueEncoding selects the value column encoding: TypeRaw or TypeGorilla.
func WithValueEncoding(enc format.EncodingType) Option {
	return options.New(func(c *encoderConfig) error {
		if !enc.ValidForValues() {
			return fmt.Errorf("%w: %s is not a value encoding", errs.ErrInvalidEncodingType, enc)
		}
		c.flag.SetValueEncoding(enc)

		return nil
	})
}

// WithKeyCompression selects the compression of the key payload.
func WithKeyCompression(comp format.CompressionType) Option {
	return options.New(func(c *encoderConfig) error {
		if !comp.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, comp)
		}
		c.flag.SetKeyCompression(comp)

		return nil
	})
}

// WithValueCompression selects the compression of the value payload.
func WithValueCompression(comp format.CompressionType) Option {
	return options.New(func(c *encoderConfig) error {
		if !comp.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, comp)
		}
		c.flag.SetValueCompression(comp)

		return nil
	})
}

// WithCompression selects the same compression for both payloads.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *encoderConfig) error {
		if !comp.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, comp)
		}
		c.flag.SetKeyCompression(comp)
		c.flag.SetValueCompression(comp)

		return nil
	})
}
