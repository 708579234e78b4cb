package wire

const (
	// Bit masks of Flag.Options
	EndiannessMask   = 0x0001 // bit 0: 0=little-endian, 1=big-endian
	ReservedBitsMask = 0x000E // bits 1-3, must be 0
	MagicNumberMask  = 0xFFF0 // bits 4-15

	// MagicNumericV1Opt identifies a numeric date series frame.
	MagicNumericV1Opt = 0xD7E0

	// Version is the frame layout version written by Encode.
	Version = 1
)

// frame layout
const (
	HeaderSize = 24 // fixed header size in bytes

	optionsOffset     = 0
	keyEncodingOffset = 2
	valEncodingOffset = 3
	compressionOffset = 4
	versionOffset     = 5
	countOffset       = 8
	keyLenOffset      = 12
	checksumOffset    = 16
)
