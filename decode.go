package djcifex

import "github.com/comes-group/djcifex/cursor"

// DecodeOptions controls Decode. A nil *DecodeOptions loads metadata using
// the default (garbage-collected) allocator; the zero value DecodeOptions{}
// uses the same allocator but leaves LoadMetadata false, so no metadata is
// retained.
type DecodeOptions struct {
	// LoadMetadata, if false, leaves the returned ImageInfo's metadata empty.
	// METADANE lines are still parsed and validated (to advance the cursor
	// to the pixel body) but are not copied.
	LoadMetadata bool
	// Allocator supplies the image's pixel storage and the scratch buffer
	// readAll uses to slurp the input. Defaults to GCAllocator.
	Allocator Allocator
}

// Decode reads a complete CIF stream from r and returns its pixels and
// header/metadata. It is the Go equivalent of cifex_decode from the
// original C decoder, restructured as a grammar-driven byte-cursor walk:
// flags, version, dimensions, metadata, pixels, each a single pass with no
// backtracking across sections.
//
// On any failure, Decode releases any pixel storage it had already
// allocated before returning; the caller is never left holding a partially
// filled Image.
func Decode(r Reader, opts *DecodeOptions) (*Image, *ImageInfo, *Error) {
	if opts == nil {
		opts = &DecodeOptions{LoadMetadata: true}
	}
	alloc := opts.Allocator
	if alloc == nil {
		alloc = defaultAllocator
	}

	buf, ierr := readAll(r, alloc)
	if ierr != nil {
		return nil, nil, ierr
	}
	if len(buf) == 0 {
		return nil, nil, domainError(CodeEmptyImageFile, 0, 0)
	}

	c := cursor.New(buf)

	flags, cerr := parseFlags(c)
	if cerr != nil {
		return nil, nil, cerr
	}
	version, cerr := parseVersion(c)
	if cerr != nil {
		return nil, nil, cerr
	}
	width, height, channels, cerr := parseDimensions(c)
	if cerr != nil {
		return nil, nil, cerr
	}

	img := &Image{}
	if cerr := AllocImage(img, alloc, width, height, channels); cerr != nil {
		return nil, nil, cerr
	}

	info := &ImageInfo{Version: version, Flags: flags}
	for {
		key, value, ok, cerr := parseMetadataField(c)
		if cerr != nil {
			FreeImage(img)
			return nil, nil, cerr
		}
		if !ok {
			break
		}
		if !opts.LoadMetadata {
			continue
		}
		if cerr := AppendMetadata(info, key, value); cerr != nil {
			FreeImage(img)
			return nil, nil, cerr
		}
	}

	if cerr := parsePixels(c, img); cerr != nil {
		FreeImage(img)
		return nil, nil, cerr
	}

	return img, info, nil
}
