// Package errs defines the sentinel errors returned by datets packages.
//
// Errors are wrapped with context using fmt.Errorf and the %w verb, so callers
// should match them with errors.Is:
//
//	s, err := series.OfKeys(keys, values)
//	if errors.Is(err, errs.ErrInvalidOrder) {
//	    // keys were not strictly ascending
//	}
package errs

import "errors"

// Date codec errors.
var (
	// ErrDomainRange is returned when a date's year is outside [0, 9999] and the
	// date is not one of the two sentinel extremes.
	ErrDomainRange = errors.New("date outside encodable range")
	// ErrInvalidDate is returned when a date has an impossible month or day.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidKey is returned when a dense key does not decode to a valid date.
	ErrInvalidKey = errors.New("invalid date key")
)

// Series errors.
var (
	// ErrEmptySeries is returned by aggregate and earliest/latest accessors on an empty series.
	ErrEmptySeries = errors.New("series is empty")
	// ErrInvalidOrder is returned when keys are not strictly ascending.
	ErrInvalidOrder = errors.New("keys must be strictly ascending")
	// ErrInvalidRange is returned when a slice end precedes its start.
	ErrInvalidRange = errors.New("invalid range")
	// ErrLengthMismatch is returned when parallel key and value inputs differ in length.
	ErrLengthMismatch = errors.New("keys and values length mismatch")
	// ErrIndexOutOfRange is returned for positional arguments outside the series bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrOverlappingKeys is returned when a disjoint-only combination meets a shared key.
	ErrOverlappingKeys = errors.New("series keys overlap")
)

// Iterator errors.
var (
	// ErrNoMoreElements is returned when advancing past the last entry.
	ErrNoMoreElements = errors.New("no more elements")
	// ErrIteratorNotStarted is returned when reading or removing before the first advance.
	ErrIteratorNotStarted = errors.New("iterator not started")
	// ErrEntryRemoved is returned when the current entry was already removed.
	ErrEntryRemoved = errors.New("current entry already removed")
	// ErrUnsupportedMutation is returned by Remove on a read-only series iterator.
	ErrUnsupportedMutation = errors.New("unsupported mutation of immutable series")
)

// Wire format errors.
var (
	// ErrInvalidHeaderSize is returned when a frame is shorter than its header.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidMagic is returned for a bad magic number or set reserved flag bits.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrUnsupportedVersion is returned for a header version other than the current one.
	ErrUnsupportedVersion = errors.New("unsupported wire format version")
	// ErrInvalidEncodingType is returned for an unknown or misplaced key or value encoding.
	ErrInvalidEncodingType = errors.New("invalid encoding type")
	// ErrInvalidCompression is returned for an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrChecksumMismatch is returned when the payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrCorruptPayload is returned when a payload cannot be decoded into a valid series.
	ErrCorruptPayload = errors.New("corrupt payload")
	// ErrSeriesTooLarge is returned when a series exceeds the header's count range.
	ErrSeriesTooLarge = errors.New("series too large for wire format")
)
