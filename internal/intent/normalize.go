package intent

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var decimalComma = regexp.MustCompile(`(\d),(\d)`)

// Normalize folds a message into the form rules match against: lower case,
// accents removed, decimal commas turned into dots, every other punctuation
// mark collapsed into single spaces, and one space of padding on both sides
// so keywords such as " ver " only match whole words. "%" is kept.
func Normalize(s string) string {
	s = strings.ToLower(s)
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = folded
	}
	s = decimalComma.ReplaceAllString(s, "$1.$2")

	src := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')
	space := true
	for i, r := range src {
		keep := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '%' ||
			(r == '.' && i > 0 && i < len(src)-1 && unicode.IsDigit(src[i-1]) && unicode.IsDigit(src[i+1]))
		if !keep {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		b.WriteRune(r)
		space = false
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}
