package djcifex

import (
	"github.com/comes-group/djcifex/cursor"
	"github.com/comes-group/djcifex/numeral"
)

// FormatVersion is the current CIF format version this port reads and
// writes.
const FormatVersion = 1

const (
	litCIFPrefix  = "CIF:"
	litPolish     = "polish"
	litWersja     = "WERSJA"
	litRozmiar    = "ROZMIAR"
	litSzerokosc  = "szerokość:"
	litWysokosc   = "wysokość:"
	litBitowNaPx  = "bitów_na_piksel:"
	litMetadane   = "METADANE"
)

// parseFlags matches the `CIF: polish\n` line, setting FlagPolish on
// success. It's the Go equivalent of cx_dec_parse_flags.
func parseFlags(c *cursor.Cursor) (Flag, *Error) {
	if !c.MatchLiteral(litCIFPrefix) {
		return 0, syntaxErrorAt(c)
	}
	if !c.MatchWS() {
		return 0, syntaxErrorAt(c)
	}
	// TODO: other language flags (english, compact, quadtree) are reserved
	// by the format but not implemented; only "polish" is ever accepted.
	if !c.MatchLiteral(litPolish) {
		return 0, missingLanguageErrorAt(c)
	}
	if !c.MatchLF() {
		return 0, syntaxErrorAt(c)
	}
	return FlagPolish, nil
}

// parseVersion matches `WERSJA <number>\n`.
func parseVersion(c *cursor.Cursor) (uint32, *Error) {
	if !c.MatchLiteral(litWersja) {
		return 0, syntaxErrorAt(c)
	}
	if !c.MatchWS() {
		return 0, syntaxErrorAt(c)
	}
	version, ok := numeral.Parse(c)
	if !ok {
		return 0, syntaxErrorAt(c)
	}
	if !c.MatchLF() {
		return 0, syntaxErrorAt(c)
	}

	if version < 1 {
		return 0, domainError(CodeInvalidVersion, c.Line(), c.Position())
	}
	if version > FormatVersion {
		return 0, domainError(CodeUnsupportedVersion, c.Line(), c.Position())
	}
	return version, nil
}

// parseDimensions matches the `ROZMIAR szerokość: W, wysokość: H,
// bitów_na_piksel: BPP\n` line and returns the parsed width, height and
// channel count (BPP / 8). Commas and spaces are mandatory and literal.
func parseDimensions(c *cursor.Cursor) (width, height uint32, channels Channels, cerr *Error) {
	fail := func() (uint32, uint32, Channels, *Error) {
		return 0, 0, 0, syntaxErrorAt(c)
	}

	if !c.MatchLiteral(litRozmiar) {
		return fail()
	}
	if !c.MatchWS() {
		return fail()
	}

	if !c.MatchLiteral(litSzerokosc) {
		return fail()
	}
	if !c.MatchWS() {
		return fail()
	}
	w, ok := numeral.Parse(c)
	if !ok {
		return fail()
	}
	if !c.MatchByte(',') {
		return fail()
	}
	if !c.MatchWS() {
		return fail()
	}

	if !c.MatchLiteral(litWysokosc) {
		return fail()
	}
	if !c.MatchWS() {
		return fail()
	}
	h, ok := numeral.Parse(c)
	if !ok {
		return fail()
	}
	if !c.MatchByte(',') {
		return fail()
	}
	if !c.MatchWS() {
		return fail()
	}

	if !c.MatchLiteral(litBitowNaPx) {
		return fail()
	}
	if !c.MatchWS() {
		return fail()
	}
	bpp, ok := numeral.Parse(c)
	if !ok {
		return fail()
	}
	if !c.MatchLF() {
		return fail()
	}

	ch := Channels(bpp / 8)
	if ch != RGB && ch != RGBA {
		return 0, 0, 0, domainError(CodeInvalidBPP, c.Line(), c.Position())
	}

	return w, h, ch, nil
}

// parseMetadataField matches a single `METADANE <key> <value>\n` line. It
// returns ok == false (not an error) as soon as the next line's prefix
// isn't "METADANE ", which is how the caller knows the metadata section
// has ended: metadata parsing terminates on the first line whose prefix is
// not "METADANE ".
func parseMetadataField(c *cursor.Cursor) (key, value []byte, ok bool, cerr *Error) {
	markPos, markLine := c.Mark()
	startLine := c.Line()

	if !c.MatchLiteral(litMetadane) || !c.MatchByte(' ') {
		// Not a metadata line at all (or "METADANE" with no following
		// space): rewind fully so the caller can re-parse this position as
		// the start of the pixel body.
		c.Reset(markPos, markLine)
		return nil, nil, false, nil
	}
	start := markPos

	key, _ = c.MatchSkippingTo(' ')
	if len(key) == 0 {
		// An empty key (from "METADANE  value") is rejected here rather
		// than silently accepted, matching the encoder's existing
		// rejection of the same case.
		return nil, nil, false, domainError(CodeEmptyMetadataKey, startLine, start)
	}
	if !c.MatchWS() {
		return nil, nil, false, domainError(CodeSyntaxError, c.Line(), c.Position())
	}

	value, found := c.MatchSkippingTo('\n')
	if !found {
		return nil, nil, false, domainError(CodeSyntaxError, c.Line(), c.Position())
	}
	c.MatchLF()

	return key, value, true, nil
}

func syntaxErrorAt(c *cursor.Cursor) *Error {
	return domainError(CodeSyntaxError, c.Line(), c.Position())
}

func missingLanguageErrorAt(c *cursor.Cursor) *Error {
	return domainError(CodeMissingLanguage, c.Line(), c.Position())
}

// emitFlags writes the `CIF: polish\n` line, mirroring cx_enc_dump_flags.
func emitFlags(fw *flushWriter, flags Flag) *Error {
	if flags&FlagPolish == 0 {
		return domainError(CodeMissingLanguage, 0, 0)
	}
	if err := fw.write([]byte(litCIFPrefix + " " + litPolish + "\n")); err != nil {
		return ioError(err)
	}
	return nil
}

// emitVersion writes the `WERSJA <number>\n` line.
func emitVersion(fw *flushWriter, version uint32) *Error {
	buf := append([]byte(litWersja+" "), mustSpell(version)...)
	buf = append(buf, '\n')
	if err := fw.write(buf); err != nil {
		return ioError(err)
	}
	return nil
}

// emitDimensions writes the `ROZMIAR szerokość: W, wysokość: H,
// bitów_na_piksel: BPP\n` line for img.
func emitDimensions(fw *flushWriter, img *Image) *Error {
	var buf []byte
	buf = append(buf, litRozmiar+" "+litSzerokosc+" "...)
	buf = append(buf, mustSpell(img.Width)...)
	buf = append(buf, ", "+litWysokosc+" "...)
	buf = append(buf, mustSpell(img.Height)...)
	buf = append(buf, ", "+litBitowNaPx+" "...)
	buf = append(buf, mustSpell(uint32(img.Channels)*8)...)
	buf = append(buf, '\n')
	if err := fw.write(buf); err != nil {
		return ioError(err)
	}
	return nil
}

// emitMetadata writes one `METADANE <key> <value>\n` line per pair,
// rejecting keys containing a space or values containing a line feed.
func emitMetadata(fw *flushWriter, pairs []MetadataPair) *Error {
	for _, p := range pairs {
		for _, b := range p.Key {
			if b == ' ' {
				return domainError(CodeInvalidMetadataKey, 0, 0)
			}
		}
		if len(p.Key) == 0 {
			return domainError(CodeInvalidMetadataKey, 0, 0)
		}
		for _, b := range p.Value {
			if b == '\n' {
				return domainError(CodeInvalidMetadataValue, 0, 0)
			}
		}

		var buf []byte
		buf = append(buf, litMetadane+" "...)
		buf = append(buf, p.Key...)
		buf = append(buf, ' ')
		buf = append(buf, p.Value...)
		buf = append(buf, '\n')
		if err := fw.write(buf); err != nil {
			return ioError(err)
		}
	}
	return nil
}

// mustSpell spells n as a Polish numeral. It panics on n >= 1000000, which
// only a caller passing a malformed width/height/bpp/version could trigger;
// Encode validates those before calling it (see encode.go).
func mustSpell(n uint32) []byte {
	buf, err := numeral.Append(nil, n)
	if err != nil {
		panic(err)
	}
	return buf
}
