package domain

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/heartmarshall/userdict/internal/mora"
)

// WidenText converts a spelling to its canonical full-width form:
//   - trims leading/trailing whitespace
//   - ASCII letters, digits and symbols become their full-width forms
//   - half-width katakana become full-width katakana, with voiced and
//     semi-voiced marks composed into a single rune (ｶﾞ -> ガ)
//
// Text already in full-width form is returned unchanged.
func WidenText(text string) string {
	return norm.NFC.String(width.Widen.String(strings.TrimSpace(text)))
}

// smallKana may only follow a regular mora.
const smallKana = "ァィゥェォャュョヮ"

const sokuon = 'ッ'

// MoraCount validates a single pronunciation segment and returns its mora count.
func MoraCount(pronunciation string) (int, error) {
	if pronunciation == "" {
		return 0, fmt.Errorf("empty pronunciation")
	}

	var prev rune
	for _, r := range pronunciation {
		switch {
		case r == sokuon && prev == sokuon:
			return 0, fmt.Errorf("repeated %q", string(sokuon))
		case strings.ContainsRune(smallKana, r) && (strings.ContainsRune(smallKana, prev) || prev == sokuon):
			return 0, fmt.Errorf("small kana %q cannot follow %q", string(r), string(prev))
		}
		prev = r
	}

	n, err := mora.Count(pronunciation)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// checkSpelling rejects spellings the dictionary source cannot carry.
// Surrounding whitespace is trimmed later; inner whitespace, including the
// ideographic space, is rejected because analyzer records split on it.
func checkSpelling(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty spelling")
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return fmt.Errorf("whitespace %q is not allowed", r)
		case unicode.IsControl(r) || r == ',' || r == '"':
			return fmt.Errorf("character %q is not allowed", r)
		}
	}
	return nil
}
