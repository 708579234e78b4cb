package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/datets/errs"
)

// Header is the fixed-size section at the start of every frame.
//
//	[0:2]   Flag.Options, little-endian
//	[2]     key encoding
//	[3]     value encoding
//	[4]     key compression (bits 0-3), value compression (bits 4-7)
//	[5]     version
//	[6:8]   reserved
//	[8:12]  entry count
//	[12:16] key payload length in bytes
//	[16:24] xxHash64 of everything after the header
type Header struct {
	Flag          Flag
	Version       uint8
	Count         uint32
	KeyPayloadLen uint32
	Checksum      uint64
}

// NewHeader returns a header with the default flag and the current version.
func NewHeader() Header {
	return Header{Flag: NewFlag(), Version: Version}
}

// Bytes serializes the header into a new HeaderSize slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.put(b)

	return b
}

func (h Header) put(b []byte) {
	engine := h.Flag.EndianEngine()

	binary.LittleEndian.PutUint16(b[optionsOffset:], h.Flag.Options)
	b[keyEncodingOffset] = h.Flag.KeyEncoding
	b[valEncodingOffset] = h.Flag.ValueEncoding
	b[compressionOffset] = h.Flag.Compression
	b[versionOffset] = h.Version
	b[6], b[7] = 0, 0
	engine.PutUint32(b[countOffset:], h.Count)
	engine.PutUint32(b[keyLenOffset:], h.KeyPayloadLen)
	engine.PutUint64(b[checksumOffset:], h.Checksum)
}

// Validate checks the flag and the version.
func (h Header) Validate() error {
	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	return nil
}

// ParseHeader parses and validates the header at the start of data.
//
// Parameters:
//   - data: A frame or at least its first HeaderSize bytes
//
// Returns:
//   - Header: The parsed header
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic, ErrUnsupportedVersion,
//     ErrInvalidEncodingType or ErrInvalidCompression
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, need %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	var h Header
	h.Flag.Options = binary.LittleEndian.Uint16(data[optionsOffset:])
	h.Flag.KeyEncoding = data[keyEncodingOffset]
	h.Flag.ValueEncoding = data[valEncodingOffset]
	h.Flag.Compression = data[compressionOffset]
	h.Version = data[versionOffset]

	engine := h.Flag.EndianEngine()
	h.Count = engine.Uint32(data[countOffset:])
	h.KeyPayloadLen = engine.Uint32(data[keyLenOffset:])
	h.Checksum = engine.Uint64(data[checksumOffset:])

	if err := h.Validate(); err != nil {
		return Header{}, err
	}

	return h, nil
}
