// Package numeral implements the bidirectional Polish numeral codec at the
// heart of CIF: parsing and emitting spelled-out Polish number words for
// integers in [0, 999999], including the thousands-plural agreement
// ("tysiąc" / "tysiące" / "tysięcy").
//
// The matcher is table-driven, not a chained if/else ladder, but the order
// of each table is significant and must not be reshuffled: within a single
// phase a shorter word can be a byte-for-byte prefix of a longer one in a
// different phase that is tried later ("osiem" is a prefix of "osiemset",
// "dziewięć" of "dziewięćset"), so hundreds must always be attempted before
// ones, teens before tens, and so on.
package numeral

import (
	"errors"

	"github.com/comes-group/djcifex/cursor"
)

// ErrNumberTooLarge is returned by Append when asked to emit a number
// outside the representable range [0, 999999].
var ErrNumberTooLarge = errors.New("numeral: number too large to spell out")

// Max is the largest number the format can represent.
const Max = 999999

const (
	litZero    = "zero"
	litTysiac  = "tysiąc"
	litTysiace = "tysiące"
	litTysiecy = "tysięcy"
)

type entry struct {
	word  string
	value uint32
}

// Ordered hundreds, teens, tens and ones tables. Order within each table
// does not matter for correctness (no word is a prefix of another within
// the same table), but the order *between* tables does: see the package
// doc comment.
var (
	hundredsTable = []entry{
		{"sto", 100},
		{"dwieście", 200},
		{"trzysta", 300},
		{"czterysta", 400},
		{"pięćset", 500},
		{"sześćset", 600},
		{"siedemset", 700},
		{"osiemset", 800},
		{"dziewięćset", 900},
	}
	teensTable = []entry{
		{"dziesięć", 10},
		{"jedenaście", 11},
		{"dwanaście", 12},
		{"trzynaście", 13},
		{"czternaście", 14},
		{"piętnaście", 15},
		{"szesnaście", 16},
		{"siedemnaście", 17},
		{"osiemnaście", 18},
		{"dziewiętnaście", 19},
	}
	tensTable = []entry{
		{"dwadzieścia", 20},
		{"trzydzieści", 30},
		{"czterdzieści", 40},
		{"pięćdziesiąt", 50},
		{"sześćdziesiąt", 60},
		{"siedemdziesiąt", 70},
		{"osiemdziesiąt", 80},
		{"dziewięćdziesiąt", 90},
	}
	onesTable = []entry{
		{"jeden", 1},
		{"dwa", 2},
		{"trzy", 3},
		{"cztery", 4},
		{"pięć", 5},
		{"sześć", 6},
		{"siedem", 7},
		{"osiem", 8},
		{"dziewięć", 9},
	}
)

// Emitter-side word arrays, indexed directly by digit/ten/hundred value.
var (
	hundredsWord = [10]string{"", "sto", "dwieście", "trzysta", "czterysta", "pięćset", "sześćset", "siedemset", "osiemset", "dziewięćset"}
	onesWord     = [10]string{"", "jeden", "dwa", "trzy", "cztery", "pięć", "sześć", "siedem", "osiem", "dziewięć"}
	teensWord    = [10]string{"dziesięć", "jedenaście", "dwanaście", "trzynaście", "czternaście", "piętnaście", "szesnaście", "siedemnaście", "osiemnaście", "dziewiętnaście"}
	tensWord     = [10]string{"", "", "dwadzieścia", "trzydzieści", "czterdzieści", "pięćdziesiąt", "sześćdziesiąt", "siedemdziesiąt", "osiemdziesiąt", "dziewięćdziesiąt"}
)

// matchFirst tries each entry in order and, on the first literal match, adds
// its value to *out and returns true.
func matchFirst(c *cursor.Cursor, table []entry, out *uint32) bool {
	for _, e := range table {
		if c.MatchLiteral(e.word) {
			*out += e.value
			return true
		}
	}
	return false
}

// parseUpToHundreds parses a single 0-999 group, accumulating onto *out
// (which may already hold a nonzero thousands contribution). It returns
// whether the group contributed anything to the final value: hundreds,
// then teens (which terminate the group outright), otherwise tens then
// ones, with any component optional.
//
// Every probe for a separator space ahead of an optional component rewinds
// that space via Mark/Reset if the component turns out not to be there —
// otherwise the space that actually separates this group from a following
// thousands suffix ("sto|_|tysięcy") would be silently consumed here and
// never seen by the caller.
func parseUpToHundreds(c *cursor.Cursor, out *uint32) bool {
	if c.MatchLiteral(litZero) {
		return true
	}

	before := *out

	if matchFirst(c, hundredsTable, out) {
		mark, markLine := c.Mark()
		if !c.MatchWS() {
			return *out != before
		}
		if matchFirst(c, teensTable, out) {
			// Teens terminate the group: no tens/ones may follow.
			return true
		}
		if matchFirst(c, tensTable, out) {
			matchOnesAfterTens(c, out)
			return *out != before
		}
		if !matchFirst(c, onesTable, out) {
			c.Reset(mark, markLine)
		}
		return *out != before
	}

	if matchFirst(c, teensTable, out) {
		return true
	}

	if matchFirst(c, tensTable, out) {
		matchOnesAfterTens(c, out)
	} else {
		matchFirst(c, onesTable, out)
	}

	return *out != before
}

// matchOnesAfterTens probes for a separator space followed by a ones word
// once a tens word has already matched, rewinding the probed space if no
// ones word actually follows it.
func matchOnesAfterTens(c *cursor.Cursor, out *uint32) {
	mark, markLine := c.Mark()
	if !c.MatchWS() {
		return
	}
	if !matchFirst(c, onesTable, out) {
		c.Reset(mark, markLine)
	}
}

// Parse matches the longest valid Polish numeral prefix at the cursor and
// returns its value. ok is false only when no component matched at all (not
// even the bare "tysiąc" literal) — a pure non-match.
func Parse(c *cursor.Cursor) (uint32, bool) {
	var number uint32

	matchedBareThousand := c.MatchLiteral(litTysiac)
	if matchedBareThousand {
		number = 1000
		if !c.MatchWS() {
			return number, true
		}
	}

	groupMatched := parseUpToHundreds(c, &number)
	if !matchedBareThousand && !groupMatched {
		return 0, false
	}

	if groupMatched {
		// Any of the three suffix forms is accepted after a count;
		// "tysiące" is tried before its prefix "tysiąc".
		mark, markLine := c.Mark()
		thousandWord := c.MatchWS() && (c.MatchLiteral(litTysiace) ||
			c.MatchLiteral(litTysiecy) || c.MatchLiteral(litTysiac))
		if !thousandWord {
			c.Reset(mark, markLine)
			return number, true
		}
		number *= 1000

		mark, markLine = c.Mark()
		var rest uint32
		if c.MatchWS() && parseUpToHundreds(c, &rest) {
			number += rest
		} else {
			c.Reset(mark, markLine)
		}
	}

	return number, true
}

// thousandSuffix picks the grammatically correct plural suffix for a
// thousands count h >= 2: the genitive plural ("tysięcy") is the default,
// with "tysiące" only for counts ending in 2-4 that aren't themselves teens
// (12-14).
func thousandSuffix(h uint32) string {
	if mod100 := h % 100; mod100 >= 12 && mod100 <= 14 {
		return litTysiecy
	}
	if mod10 := h % 10; mod10 >= 2 && mod10 <= 4 {
		return litTysiace
	}
	return litTysiecy
}

// appendUpToHundreds appends the canonical spelling of n (1-999) to dst.
func appendUpToHundreds(dst []byte, n uint32) []byte {
	wroteHundreds := false
	if h := n / 100; h > 0 {
		dst = append(dst, hundredsWord[h]...)
		n %= 100
		wroteHundreds = true
	}
	if n == 0 {
		return dst
	}
	if wroteHundreds {
		dst = append(dst, ' ')
	}
	switch {
	case n < 10:
		dst = append(dst, onesWord[n]...)
	case n < 20:
		dst = append(dst, teensWord[n-10]...)
	default:
		dst = append(dst, tensWord[n/10]...)
		if ones := n % 10; ones != 0 {
			dst = append(dst, ' ')
			dst = append(dst, onesWord[ones]...)
		}
	}
	return dst
}

// Append appends the canonical Polish spelling of n to dst and returns the
// extended slice, in the style of the standard library's strconv.Append*
// family. It returns ErrNumberTooLarge for n >= 1000000, and never writes
// two consecutive spaces, a leading space, or a trailing space.
func Append(dst []byte, n uint32) ([]byte, error) {
	if n > Max {
		return dst, ErrNumberTooLarge
	}
	if n == 0 {
		return append(dst, litZero...), nil
	}
	if n < 1000 {
		return appendUpToHundreds(dst, n), nil
	}

	h, rest := n/1000, n%1000
	if h == 1 {
		dst = append(dst, litTysiac...)
	} else {
		dst = appendUpToHundreds(dst, h)
		dst = append(dst, ' ')
		dst = append(dst, thousandSuffix(h)...)
	}
	if rest != 0 {
		dst = append(dst, ' ')
		dst = appendUpToHundreds(dst, rest)
	}
	return dst, nil
}

// String returns the canonical Polish spelling of n as a string, or an
// empty string with ErrNumberTooLarge if n is out of range.
func String(n uint32) (string, error) {
	buf, err := Append(nil, n)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ParseString parses s in its entirety as a single Polish numeral. Unlike
// Parse, it requires the whole string to be consumed.
func ParseString(s string) (uint32, bool) {
	c := cursor.New([]byte(s))
	n, ok := Parse(c)
	if !ok || !c.EOF() {
		return 0, false
	}
	return n, true
}
