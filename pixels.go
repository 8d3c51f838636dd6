package djcifex

import (
	"github.com/comes-group/djcifex/cursor"
	"github.com/comes-group/djcifex/numeral"
)

// parsePixels fills img.Data (already sized by the caller via AllocImage)
// with img.Width * img.Height pixels of img.Channels bytes each, in
// row-major order, one `R; G; B[; A]\n` line per pixel.
//
// Unlike the original C decoder (which scans the whole image and reports
// only the last-seen syntax-error and range-error lines, preferring
// syntax), this implementation fails fast at the first offending pixel —
// a deliberate simplification over scanning the whole image.
// Within a single pixel, a syntax failure is still reported in preference
// to a range failure, since a syntax failure invalidates any range claim
// made while trying to parse that pixel's channels.
func parsePixels(c *cursor.Cursor, img *Image) *Error {
	n := int(img.Channels)
	for y := uint32(0); y < img.Height; y++ {
		for x := uint32(0); x < img.Width; x++ {
			offset := (int(x) + int(y)*int(img.Width)) * n

			var channels [4]uint32
			line := c.Line()
			syntaxBad := false
			for ch := 0; ch < n; ch++ {
				if ch > 0 {
					if !c.MatchByte(';') || !c.MatchWS() {
						syntaxBad = true
					}
				}
				v, ok := numeral.Parse(c)
				if !ok {
					syntaxBad = true
				}
				channels[ch] = v
			}
			if !c.MatchLF() {
				syntaxBad = true
			}

			if syntaxBad {
				return domainError(CodeSyntaxError, line, c.Position())
			}

			rangeBad := false
			for ch := 0; ch < n; ch++ {
				if channels[ch] > 255 {
					rangeBad = true
				}
			}
			if rangeBad {
				return domainError(CodeChannelOutOfRange, line, c.Position())
			}

			for ch := 0; ch < n; ch++ {
				img.Data[offset+ch] = byte(channels[ch])
			}
		}
	}
	return nil
}

// emitPixels writes img.Data out as one `R; G; B[; A]\n` line per pixel.
// Because every channel value is <= 255, numeral.Append can never return
// ErrNumberTooLarge here.
func emitPixels(fw *flushWriter, img *Image) *Error {
	n := int(img.Channels)
	var lineBuf [64]byte
	for y := uint32(0); y < img.Height; y++ {
		for x := uint32(0); x < img.Width; x++ {
			offset := (int(x) + int(y)*int(img.Width)) * n
			buf := lineBuf[:0]
			for ch := 0; ch < n; ch++ {
				if ch > 0 {
					buf = append(buf, ';', ' ')
				}
				var err error
				buf, err = numeral.Append(buf, uint32(img.Data[offset+ch]))
				if err != nil {
					return ioError(err)
				}
			}
			buf = append(buf, '\n')
			if err := fw.write(buf); err != nil {
				return ioError(err)
			}
		}
	}
	return nil
}
