package djcifex

import "bytes"

// MetadataPair is a single `METADANE <key> <value>` entry. Key must be
// non-empty and contain no ASCII space; Value must contain no line feed.
// Both invariants are enforced by AppendMetadata and by the encoder;
// duplicate keys are permitted and preserved in insertion order.
type MetadataPair struct {
	Key, Value []byte
}

// ImageInfo carries everything about a CIF image besides its pixels:
// format version, flags, and the ordered metadata sequence.
//
// A plain slice replaces the original C library's doubly-linked list with
// a cached tail pointer: it gives the same amortised O(1) append and a
// single tail-to-head-equivalent traversal for release (which in Go is
// simply letting the slice become garbage), while preserving insertion
// order.
type ImageInfo struct {
	Version  uint32
	Flags    Flag
	Metadata []MetadataPair
}

// AppendMetadata validates and appends a (key, value) pair to info's
// metadata sequence, copying both byte strings so the caller's buffers can
// be reused or mutated afterward.
func AppendMetadata(info *ImageInfo, key, value []byte) *Error {
	if len(key) == 0 {
		return domainError(CodeEmptyMetadataKey, 0, 0)
	}
	if bytes.IndexByte(key, ' ') >= 0 {
		return domainError(CodeInvalidMetadataKey, 0, 0)
	}
	if bytes.IndexByte(value, '\n') >= 0 {
		return domainError(CodeInvalidMetadataValue, 0, 0)
	}

	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	info.Metadata = append(info.Metadata, MetadataPair{Key: keyCopy, Value: valueCopy})
	return nil
}

// defaultEncoderMetadata is the single metadata pair the original encoder
// stamps onto every image lacking caller-supplied ImageInfo
// (cx_encoder_pair / cx_default_image_info in encode.c): it is what
// produces the `METADANE encoder DJ Cifex` line on a default-options
// encode.
var defaultEncoderMetadata = MetadataPair{
	Key:   []byte("encoder"),
	Value: []byte("DJ Cifex"),
}

// defaultImageInfo returns the ImageInfo Encode uses when its caller passes
// a nil one: current format version, the polish flag, and the default
// encoder metadata pair.
func defaultImageInfo() *ImageInfo {
	return &ImageInfo{
		Version:  FormatVersion,
		Flags:    FlagPolish,
		Metadata: []MetadataPair{defaultEncoderMetadata},
	}
}
