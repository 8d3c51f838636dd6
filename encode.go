package djcifex

import "github.com/comes-group/djcifex/numeral"

// EncodeOptions controls Encode. A nil Info makes Encode stamp the default
// header (current format version, FlagPolish, and the `encoder: DJ Cifex`
// metadata pair) via defaultImageInfo, matching the original encoder's
// cx_default_image_info fallback.
type EncodeOptions struct {
	Info *ImageInfo
}

// Encode writes img out as a complete CIF stream to w, the Go equivalent of
// cifex_encode from the original C encoder: flags, version, dimensions,
// metadata, pixels, each emitted in turn through a single 256-byte buffered
// writer that flushes whenever the next fragment would not fit and once more
// at the end.
func Encode(w Writer, img *Image, opts *EncodeOptions) *Error {
	info := defaultImageInfo()
	if opts != nil && opts.Info != nil {
		info = opts.Info
	}

	if info.Version > numeral.Max || img.Width > numeral.Max || img.Height > numeral.Max ||
		uint64(img.Channels)*8 > numeral.Max {
		return domainError(CodeNumberTooLarge, 0, 0)
	}

	fw := newFlushWriter(w)

	if cerr := emitFlags(fw, info.Flags); cerr != nil {
		return cerr
	}
	if cerr := emitVersion(fw, info.Version); cerr != nil {
		return cerr
	}
	if cerr := emitDimensions(fw, img); cerr != nil {
		return cerr
	}
	if cerr := emitMetadata(fw, info.Metadata); cerr != nil {
		return cerr
	}
	if cerr := emitPixels(fw, img); cerr != nil {
		return cerr
	}

	if err := fw.flush(); err != nil {
		return ioError(err)
	}
	return nil
}
