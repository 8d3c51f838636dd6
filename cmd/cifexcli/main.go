// Command cifexcli converts between CIF images and conventional raster
// formats (PNG, BMP).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/bmp"

	djcifex "github.com/comes-group/djcifex"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cifexcli [flags] {decode,encode} <input-file> <output-file>\n\n")
		fmt.Fprintf(os.Stderr, "decode converts a .cif file to a .png file.\n")
		fmt.Fprintf(os.Stderr, "encode converts a .png or .bmp file to a .cif file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	dryRun := flag.Bool("dry-run", false, "decode only: parse the input without writing the output file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	mode, rest := args[0], args[1:]
	var err error
	switch mode {
	case "decode":
		err = runDecode(rest, *dryRun)
	case "encode":
		err = runEncode(rest)
	default:
		fmt.Fprintf(os.Stderr, "error: invalid mode: %s\nusage: cifexcli {decode,encode} <arguments...>\n", mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runDecode(args []string, dryRun bool) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cifexcli decode <input-file.cif> <output-file.png>")
	}
	inputName, outputName := args[0], args[1]

	in, err := OpenFile(inputName)
	if err != nil {
		return err
	}
	defer Close(in)

	img, _, cerr := djcifex.Decode(in, &djcifex.DecodeOptions{LoadMetadata: true})
	if cerr != nil {
		return fmt.Errorf("%s", cerr.Error())
	}

	if dryRun {
		return nil
	}

	out, err := os.Create(outputName)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, imageToStdlib(img))
}

func runEncode(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cifexcli encode <input-file.png|.bmp> <output-file.cif>")
	}
	inputName, outputName := args[0], args[1]

	in, err := OpenFile(inputName)
	if err != nil {
		return err
	}
	defer Close(in)

	src, _, err := decodeRaster(in)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	img, cerr := imageFromStdlib(src)
	if cerr != nil {
		return fmt.Errorf("%s", cerr.Error())
	}

	out, err := os.Create(outputName)
	if err != nil {
		return err
	}
	defer out.Close()

	if cerr := djcifex.Encode(out, img, nil); cerr != nil {
		return fmt.Errorf("%s", cerr.Error())
	}
	return nil
}

// OpenFile opens path for reading, the collaborator boundary the original
// cifex_fopen/cifex_fclose occupied: file open/close is a syscall
// concern outside the codec itself, so it lives here in the CLI rather
// than in the djcifex package.
func OpenFile(path string) (*os.File, error) {
	return os.Open(path)
}

// Close closes a file opened with OpenFile, reporting any error to stderr
// rather than propagating it, since a close failure on a read-only file
// handle carries no useful recovery action for the caller.
func Close(f *os.File) {
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: close %s: %v\n", f.Name(), err)
	}
}

// decodeRaster decodes a PNG or BMP file, trying the stdlib PNG decoder
// first and falling back to golang.org/x/image/bmp, the way stb_image.h's
// format-sniffing cxc_encode relied on covers both without the caller
// naming a format up front.
func decodeRaster(f *os.File) (image.Image, string, error) {
	img, format, err := image.Decode(f)
	if err == nil {
		return img, format, nil
	}
	if _, serr := f.Seek(0, 0); serr != nil {
		return nil, "", serr
	}
	img, err = bmp.Decode(f)
	if err != nil {
		return nil, "", err
	}
	return img, "bmp", nil
}

// imageFromStdlib converts a decoded raster image into an RGBA *djcifex.Image.
// Every input colour model is converted through color.Color.RGBA; no input is
// rejected.
func imageFromStdlib(src image.Image) (*djcifex.Image, *djcifex.Error) {
	bounds := src.Bounds()
	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())

	img := &djcifex.Image{}
	if cerr := djcifex.AllocImage(img, nil, width, height, djcifex.RGBA); cerr != nil {
		return nil, cerr
	}

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			offset := (x + y*bounds.Dx()) * int(djcifex.RGBA)
			img.Data[offset+0] = byte(r >> 8)
			img.Data[offset+1] = byte(g >> 8)
			img.Data[offset+2] = byte(b >> 8)
			img.Data[offset+3] = byte(a >> 8)
		}
	}
	return img, nil
}

// imageToStdlib converts a decoded *djcifex.Image into a stdlib image.Image
// for re-encoding as PNG.
func imageToStdlib(img *djcifex.Image) image.Image {
	out := image.NewNRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	n := int(img.Channels)
	for y := 0; y < int(img.Height); y++ {
		for x := 0; x < int(img.Width); x++ {
			offset := (x + y*int(img.Width)) * n
			a := byte(255)
			if n == 4 {
				a = img.Data[offset+3]
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = img.Data[offset+0]
			out.Pix[i+1] = img.Data[offset+1]
			out.Pix[i+2] = img.Data[offset+2]
			out.Pix[i+3] = a
		}
	}
	return out
}
