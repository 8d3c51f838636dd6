package djcifex

import "golang.org/x/text/language"

// Flag is a bitmask of `CIF:` header flags. The format reserves room for
// languages other than Polish, so Flag is a general bitmask rather than a
// boolean, even though FlagPolish is the only bit this port sets or
// recognizes.
type Flag uint32

const (
	// FlagPolish marks the image as using Polish-spelled numerals. It is
	// currently the only flag the format defines.
	FlagPolish Flag = 1 << iota
)

// flagLanguages maps the flags this port understands to a BCP-47 language
// tag, so callers get a real golang.org/x/text/language.Tag instead of a
// bare "polish" string.
var flagLanguages = map[Flag]language.Tag{
	FlagPolish: language.Polish,
}

// Language returns the x/text language tag for f's language flag, and
// false if f does not carry a recognized language flag (or carries none at
// all, which Decode already rejects, via parseFlags in header.go, as
// CodeMissingLanguage before a
// caller would ever observe it).
func (f Flag) Language() (language.Tag, bool) {
	for bit, tag := range flagLanguages {
		if f&bit == bit {
			return tag, true
		}
	}
	return language.Und, false
}
