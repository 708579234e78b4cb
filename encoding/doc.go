// Package encoding provides the columnar codecs used by the wire format.
//
// Key columns hold dense date keys (see package datekey):
//   - KeyRawEncoder: fixed 4-byte int32 per key, O(1) random access
//   - KeyDeltaEncoder: zigzag varint first key, then unsigned varint gaps
//
// Value columns hold float64 values:
//   - NumericRawEncoder: fixed 8-byte IEEE 754 bits per value
//   - NumericGorillaEncoder: XOR bit packing for slowly changing values
//
// Encoders write into pooled buffers and must be released with Finish.
// Decoders are stateless values and safe for concurrent use:
//
//	enc := encoding.NewKeyDeltaEncoder()
//	defer enc.Finish()
//	enc.WriteSlice(keys)
//
//	dec := encoding.NewKeyDeltaDecoder()
//	for key := range dec.All(enc.Bytes(), enc.Len()) {
//	    ...
//	}
//
// NewKeyEncoder, NewValueEncoder and their decoder counterparts select a
// codec from a format.EncodingType.
package encoding
