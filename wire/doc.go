// Package wire implements a compact binary frame for numeric date series.
//
// A frame is a 24-byte Header followed by the key payload and the value
// payload. Each payload is encoded by a columnar codec from package encoding
// and compressed independently by a codec from package compress:
//
//	+--------+-------------+---------------+
//	| header | key payload | value payload |
//	+--------+-------------+---------------+
//
// The header records the byte order, both encodings and compressions, the
// entry count, the key payload length and an xxHash64 checksum of both
// payloads. Decode verifies the checksum before touching the payloads.
//
// Basic usage:
//
//	data, err := wire.Encode(s, wire.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	decoded, err := wire.Decode(data)
//
// Defaults: little-endian, delta keys without compression, gorilla values
// with zstd compression.
package wire
