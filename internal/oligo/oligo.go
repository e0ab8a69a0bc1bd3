// internal/oligo/oligo.go
// Sequence hygiene for primers and guide context. The design alphabet is
// strict A/C/G/T: the nearest-neighbor Tm model has no parameters for
// ambiguity codes, so anything else is rejected up front. Case is preserved
// throughout so tagged primers come back the way the user typed them.
package oligo

import (
	"fmt"
	"unicode"
)

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['a'] = 't'
	complement['c'] = 'g'
	complement['g'] = 'c'
	complement['t'] = 'a'
}

// Clean strips whitespace and stray quote characters without touching case.
func Clean(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, byte(r))
	}
	return string(out)
}

// Validate returns a cleaned sequence or an error if any base is not A/C/G/T.
func Validate(raw string) (string, error) {
	s := Clean(raw)
	if s == "" {
		return "", fmt.Errorf("empty oligo")
	}
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T", s[i], i+1)
		}
	}
	return s, nil
}

// RevComp returns the reverse-complement of seq, preserving case.
// Non-ACGT bytes pass through unchanged; validate first if that matters.
func RevComp(seq string) string {
	n := len(seq)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		if c := complement[b]; c != 0 {
			out[i] = c
		} else {
			out[i] = b
		}
	}
	return string(out)
}
