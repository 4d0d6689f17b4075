package bbref

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IDFunc derives a player page id from a given name and surname. The
// default heuristic can collide for real players; swap it for an explicit
// lookup when that matters.
type IDFunc func(first, last string) string

// DefaultIDFunc guesses the first player registered under a name.
var DefaultIDFunc = SeqIDFunc(1)

// SeqIDFunc builds ids with PlayerID and a fixed sequence number.
func SeqIDFunc(seq int) IDFunc {
	return func(first, last string) string {
		return PlayerID(first, last, seq)
	}
}

// PlayerID builds a baseball-reference player id: the first five letters of
// the surname, the first two of the given name, and a two digit sequence
// number. "Shohei", "Ohtani", 1 yields "ohtansh01".
func PlayerID(first, last string, seq int) string {
	return prefix(letters(last), 5) + prefix(letters(first), 2) + fmt.Sprintf("%02d", seq)
}

// letters lowercases s, folds accents and drops everything that is not a letter.
func letters(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
