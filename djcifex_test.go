package djcifex

import (
	"bytes"
	"strings"
	"testing"
)

// newReader adapts a fixed byte string into the Reader interface Decode
// needs (io.Reader + io.Seeker), the way *bytes.Reader does.
func newReader(s string) Reader { return bytes.NewReader([]byte(s)) }

func TestDecodeScenarioS1(t *testing.T) {
	const stream = "CIF: polish\n" +
		"WERSJA jeden\n" +
		"ROZMIAR szerokość: jeden, wysokość: jeden, bitów_na_piksel: dwadzieścia cztery\n" +
		"METADANE encoder DJ Cifex\n" +
		"zero; zero; zero\n"

	img, info, cerr := Decode(newReader(stream), &DecodeOptions{LoadMetadata: true})
	if cerr != nil {
		t.Fatalf("Decode: %v", cerr)
	}
	if img.Width != 1 || img.Height != 1 || img.Channels != RGB {
		t.Fatalf("dimensions = %d x %d x %d, want 1x1x3", img.Width, img.Height, img.Channels)
	}
	if !bytes.Equal(img.Data, []byte{0, 0, 0}) {
		t.Fatalf("pixel data = %v, want [0 0 0]", img.Data)
	}
	if info.Version != 1 || info.Flags != FlagPolish {
		t.Fatalf("info = %+v, want version 1, FlagPolish", info)
	}
	if len(info.Metadata) != 1 || string(info.Metadata[0].Key) != "encoder" || string(info.Metadata[0].Value) != "DJ Cifex" {
		t.Fatalf("metadata = %+v, want [encoder DJ Cifex]", info.Metadata)
	}
}

func TestEncodeScenarioS1(t *testing.T) {
	img := &Image{}
	if cerr := AllocImage(img, nil, 1, 1, RGB); cerr != nil {
		t.Fatalf("AllocImage: %v", cerr)
	}

	var buf bytes.Buffer
	if cerr := Encode(&buf, img, nil); cerr != nil {
		t.Fatalf("Encode: %v", cerr)
	}

	want := "CIF: polish\n" +
		"WERSJA jeden\n" +
		"ROZMIAR szerokość: jeden, wysokość: jeden, bitów_na_piksel: dwadzieścia cztery\n" +
		"METADANE encoder DJ Cifex\n" +
		"zero; zero; zero\n"
	if buf.String() != want {
		t.Fatalf("Encode output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestRoundTripVariousSizesAndChannels(t *testing.T) {
	cases := []struct {
		width, height uint32
		channels      Channels
	}{
		{0, 0, RGB},
		{1, 1, RGB},
		{3, 2, RGB},
		{2, 3, RGBA},
		{5, 5, RGBA},
	}

	for _, c := range cases {
		img := &Image{}
		if cerr := AllocImage(img, nil, c.width, c.height, c.channels); cerr != nil {
			t.Fatalf("AllocImage(%d,%d,%d): %v", c.width, c.height, c.channels, cerr)
		}
		for i := range img.Data {
			img.Data[i] = byte((i * 37) % 256)
		}

		var buf bytes.Buffer
		if cerr := Encode(&buf, img, nil); cerr != nil {
			t.Fatalf("Encode(%d,%d,%d): %v", c.width, c.height, c.channels, cerr)
		}

		got, _, cerr := Decode(bytes.NewReader(buf.Bytes()), &DecodeOptions{LoadMetadata: true})
		if cerr != nil {
			t.Fatalf("Decode(%d,%d,%d): %v\nstream:\n%s", c.width, c.height, c.channels, cerr, buf.String())
		}
		if got.Width != img.Width || got.Height != img.Height || got.Channels != img.Channels {
			t.Fatalf("round trip dimensions = %d x %d x %d, want %d x %d x %d",
				got.Width, got.Height, got.Channels, img.Width, img.Height, img.Channels)
		}
		if !bytes.Equal(got.Data, img.Data) {
			t.Fatalf("round trip data mismatch for %d x %d x %d", c.width, c.height, c.channels)
		}
	}
}

func TestRoundTripMetadataOrderAndEmptyValue(t *testing.T) {
	img := &Image{}
	if cerr := AllocImage(img, nil, 1, 1, RGB); cerr != nil {
		t.Fatalf("AllocImage: %v", cerr)
	}

	info := &ImageInfo{Version: FormatVersion, Flags: FlagPolish}
	for _, kv := range [][2]string{
		{"author", "ania"},
		{"note", ""},
		{"author", "again"},
	} {
		if cerr := AppendMetadata(info, []byte(kv[0]), []byte(kv[1])); cerr != nil {
			t.Fatalf("AppendMetadata(%q, %q): %v", kv[0], kv[1], cerr)
		}
	}

	var buf bytes.Buffer
	if cerr := Encode(&buf, img, &EncodeOptions{Info: info}); cerr != nil {
		t.Fatalf("Encode: %v", cerr)
	}

	_, got, cerr := Decode(bytes.NewReader(buf.Bytes()), &DecodeOptions{LoadMetadata: true})
	if cerr != nil {
		t.Fatalf("Decode: %v\nstream:\n%s", cerr, buf.String())
	}
	if len(got.Metadata) != 3 {
		t.Fatalf("metadata length = %d, want 3: %+v", len(got.Metadata), got.Metadata)
	}
	for i, kv := range [][2]string{
		{"author", "ania"},
		{"note", ""},
		{"author", "again"},
	} {
		if string(got.Metadata[i].Key) != kv[0] || string(got.Metadata[i].Value) != kv[1] {
			t.Fatalf("metadata[%d] = %+v, want {%q %q}", i, got.Metadata[i], kv[0], kv[1])
		}
	}
}

func TestAppendMetadataRejectsEmptyKey(t *testing.T) {
	info := &ImageInfo{}
	cerr := AppendMetadata(info, nil, []byte("value"))
	if cerr == nil || cerr.Code != CodeEmptyMetadataKey {
		t.Fatalf("AppendMetadata(empty key) = %v, want CodeEmptyMetadataKey", cerr)
	}
}

func TestDecodeRejectsEmptyMetadataKey(t *testing.T) {
	const stream = "CIF: polish\n" +
		"WERSJA jeden\n" +
		"ROZMIAR szerokość: jeden, wysokość: jeden, bitów_na_piksel: dwadzieścia cztery\n" +
		"METADANE  wartość\n" +
		"zero; zero; zero\n"

	_, _, cerr := Decode(newReader(stream), nil)
	if cerr == nil || cerr.Code != CodeEmptyMetadataKey {
		t.Fatalf("Decode = %v, want CodeEmptyMetadataKey", cerr)
	}
}

func TestDecodeEmptyFile(t *testing.T) {
	_, _, cerr := Decode(newReader(""), nil)
	if cerr == nil || cerr.Code != CodeEmptyImageFile {
		t.Fatalf("Decode(\"\") = %v, want CodeEmptyImageFile", cerr)
	}
}

func TestDecodeScenarioS5SyntaxErrorLine(t *testing.T) {
	const stream = "CIF: polish\n" +
		"WERSJA jeden\n" +
		"ROZMIAR szerokość: jeden, wysokość: jeden, bitów_na_piksel: dwadzieścia cztery\n" +
		"jeden; XXX; jeden\n"

	_, _, cerr := Decode(newReader(stream), nil)
	if cerr == nil || cerr.Code != CodeSyntaxError {
		t.Fatalf("Decode = %v, want CodeSyntaxError", cerr)
	}
	if cerr.Line != 4 {
		t.Fatalf("Line = %d, want 4", cerr.Line)
	}
}

func TestDecodeScenarioS6UnsupportedAndInvalidVersion(t *testing.T) {
	unsupported := "CIF: polish\nWERSJA dwa\n"
	_, _, cerr := Decode(newReader(unsupported), nil)
	if cerr == nil || cerr.Code != CodeUnsupportedVersion {
		t.Fatalf("Decode(WERSJA dwa) = %v, want CodeUnsupportedVersion", cerr)
	}

	invalid := "CIF: polish\nWERSJA zero\n"
	_, _, cerr = Decode(newReader(invalid), nil)
	if cerr == nil || cerr.Code != CodeInvalidVersion {
		t.Fatalf("Decode(WERSJA zero) = %v, want CodeInvalidVersion", cerr)
	}
}

func TestDecodeScenarioS7ChannelOutOfRange(t *testing.T) {
	const stream = "CIF: polish\n" +
		"WERSJA jeden\n" +
		"ROZMIAR szerokość: jeden, wysokość: jeden, bitów_na_piksel: dwadzieścia cztery\n" +
		"dwieście pięćdziesiąt sześć; zero; zero\n"

	_, _, cerr := Decode(newReader(stream), nil)
	if cerr == nil || cerr.Code != CodeChannelOutOfRange {
		t.Fatalf("Decode = %v, want CodeChannelOutOfRange", cerr)
	}
	if cerr.Line != 4 {
		t.Fatalf("Line = %d, want 4", cerr.Line)
	}
}

func TestDecodeMissingLanguage(t *testing.T) {
	_, _, cerr := Decode(newReader("CIF: english\n"), nil)
	if cerr == nil || cerr.Code != CodeMissingLanguage {
		t.Fatalf("Decode(CIF: english) = %v, want CodeMissingLanguage", cerr)
	}
}

func TestDecodeWithoutLoadMetadataSkipsSection(t *testing.T) {
	img := &Image{}
	if cerr := AllocImage(img, nil, 1, 1, RGB); cerr != nil {
		t.Fatalf("AllocImage: %v", cerr)
	}
	info := &ImageInfo{Version: FormatVersion, Flags: FlagPolish}
	if cerr := AppendMetadata(info, []byte("author"), []byte("ania")); cerr != nil {
		t.Fatalf("AppendMetadata: %v", cerr)
	}

	var buf bytes.Buffer
	if cerr := Encode(&buf, img, &EncodeOptions{Info: info}); cerr != nil {
		t.Fatalf("Encode: %v", cerr)
	}

	got, gotInfo, cerr := Decode(bytes.NewReader(buf.Bytes()), &DecodeOptions{LoadMetadata: false})
	if cerr != nil {
		t.Fatalf("Decode: %v", cerr)
	}
	if len(gotInfo.Metadata) != 0 {
		t.Fatalf("metadata = %+v, want none loaded", gotInfo.Metadata)
	}
	if !bytes.Equal(got.Data, []byte{0, 0, 0}) {
		t.Fatalf("pixel data = %v, want [0 0 0]", got.Data)
	}
}

func TestEncodeMetadataInvariantsRejected(t *testing.T) {
	img := &Image{}
	if cerr := AllocImage(img, nil, 1, 1, RGB); cerr != nil {
		t.Fatalf("AllocImage: %v", cerr)
	}

	spacedKey := &ImageInfo{
		Version:  FormatVersion,
		Flags:    FlagPolish,
		Metadata: []MetadataPair{{Key: []byte("has space"), Value: []byte("v")}},
	}
	if cerr := Encode(&bytes.Buffer{}, img, &EncodeOptions{Info: spacedKey}); cerr == nil || cerr.Code != CodeInvalidMetadataKey {
		t.Fatalf("Encode(spaced key) = %v, want CodeInvalidMetadataKey", cerr)
	}

	newlineValue := &ImageInfo{
		Version:  FormatVersion,
		Flags:    FlagPolish,
		Metadata: []MetadataPair{{Key: []byte("k"), Value: []byte("line1\nline2")}},
	}
	if cerr := Encode(&bytes.Buffer{}, img, &EncodeOptions{Info: newlineValue}); cerr == nil || cerr.Code != CodeInvalidMetadataValue {
		t.Fatalf("Encode(newline value) = %v, want CodeInvalidMetadataValue", cerr)
	}
}

func TestEncodeOutputHasNoASCIIDigitsAndTerminatesEachLine(t *testing.T) {
	img := &Image{}
	if cerr := AllocImage(img, nil, 4, 3, RGBA); cerr != nil {
		t.Fatalf("AllocImage: %v", cerr)
	}
	for i := range img.Data {
		img.Data[i] = byte((i * 53) % 256)
	}

	var buf bytes.Buffer
	if cerr := Encode(&buf, img, nil); cerr != nil {
		t.Fatalf("Encode: %v", cerr)
	}

	out := buf.String()
	for _, b := range []byte(out) {
		if b >= '0' && b <= '9' {
			t.Fatalf("output contains an ASCII digit: %q", out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("output does not end with a newline")
	}
	if strings.Contains(out, "  ") {
		t.Fatalf("output contains a double space: %q", out)
	}
	if strings.Contains(out, " \n") {
		t.Fatalf("output contains a trailing space before a newline: %q", out)
	}
}
