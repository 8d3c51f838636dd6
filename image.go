package djcifex

// Channels is the number of bytes per pixel in an Image: 3 for RGB, 4 for
// RGBA. These are the only two values CIF defines; `bitów_na_piksel` (bits
// per pixel) maps to Channels by dividing by 8.
type Channels uint32

const (
	RGB  Channels = 3
	RGBA Channels = 4
)

// Image is a raster image: Width x Height pixels, Channels bytes each,
// stored row-major, top-to-bottom, in Data. len(Data) == Width * Height *
// Channels whenever any of the three is nonzero.
//
// The zero Image is a valid, empty (0x0) image ready for AllocImage.
type Image struct {
	Width, Height uint32
	Channels      Channels
	Data          []byte

	alloc Allocator
}

// storageSize returns the number of bytes needed to store an image of the
// given dimensions, mirroring cifex_image_storage_size.
func storageSize(width, height uint32, channels Channels) int {
	return int(width) * int(height) * int(channels)
}

// AllocImage (re)sizes img to hold width x height pixels of the given
// channel count, zero-filling the storage. If img's existing buffer is
// already large enough, it's reused in place; otherwise the old buffer is
// released via alloc and a new, zeroed one is requested. A zero-size
// request is a legal way to release an image's storage while still
// recording its (0-valued) dimensions and its requested Channels — an
// empty image still has a well-defined channel count, unlike a freed one,
// so it can round-trip through Encode/Decode.
//
// This mirrors cifex_alloc_image from original_source/src/libcifex/image.c,
// including the "only reallocate if growing" optimization.
func AllocImage(img *Image, alloc Allocator, width, height uint32, channels Channels) *Error {
	if alloc == nil {
		alloc = defaultAllocator
	}

	newSize := storageSize(width, height, channels)
	if newSize == 0 {
		if img.Data != nil && img.alloc != nil {
			img.alloc.Release(img.Data)
		}
		img.Width = width
		img.Height = height
		img.Channels = channels
		img.Data = nil
		img.alloc = alloc
		return nil
	}

	oldSize := storageSize(img.Width, img.Height, img.Channels)
	if newSize > oldSize {
		if img.Data != nil && img.alloc != nil {
			img.alloc.Release(img.Data)
		}
		img.Data = alloc.Allocate(newSize)
		img.alloc = alloc
	} else {
		img.Data = img.Data[:newSize]
		for i := range img.Data {
			img.Data[i] = 0
		}
	}

	img.Width = width
	img.Height = height
	img.Channels = channels
	return nil
}

// FreeImage releases img's pixel buffer via the allocator that produced it
// and resets img to its zero value. Calling FreeImage on an already-freed
// (or never-allocated) image is safe, mirroring cifex_free_image.
func FreeImage(img *Image) {
	if img.Data != nil && img.alloc != nil {
		img.alloc.Release(img.Data)
	}
	img.Width = 0
	img.Height = 0
	img.Channels = 0
	img.Data = nil
	img.alloc = nil
}
