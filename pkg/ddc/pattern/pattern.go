package pattern

import (
	"fmt"

	"github.com/cognicore/ddc/pkg/ddc/internalerr"
)

// Wildcard stands for any digit in a retrieval pattern
const Wildcard = 'x'

// Length is the number of characters in every retrieval pattern
const Length = 3

// Pattern is a resolved retrieval pattern: a three digit class number whose
// trailing digits may be wildcards.
type Pattern struct {
	raw   string
	depth int
}

// InvalidPatternError reports a pattern that is not one of ddd, ddx, dxx
// or xxx.
type InvalidPatternError struct {
	Pattern string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: want 3 digits with optional trailing %q", e.Pattern, Wildcard)
}

// Unwrap lets errors.Is match internalerr.ErrInvalidPattern.
func (e *InvalidPatternError) Unwrap() error {
	return internalerr.ErrInvalidPattern
}

// Resolve parses s and counts the digits before the first wildcard.
func Resolve(s string) (Pattern, error) {
	if len(s) != Length {
		return Pattern{}, &InvalidPatternError{Pattern: s}
	}

	depth := Length
	for i := 0; i < Length; i++ {
		c := s[i]
		switch {
		case c == Wildcard:
			if depth == Length {
				depth = i
			}
		case c >= '0' && c <= '9':
			// a digit after a wildcard
			if depth != Length {
				return Pattern{}, &InvalidPatternError{Pattern: s}
			}
		default:
			return Pattern{}, &InvalidPatternError{Pattern: s}
		}
	}

	return Pattern{raw: s, depth: depth}, nil
}

// MustResolve is like Resolve but panics on an invalid pattern.
func MustResolve(s string) Pattern {
	p, err := Resolve(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Depth is the number of leading literal digits, 0 to 3. A depth of 3
// means the pattern names a complete class number.
func (p Pattern) Depth() int {
	return p.depth
}

// Digit returns the pattern character at the given level.
func (p Pattern) Digit(level int) byte {
	return p.raw[level]
}

func (p Pattern) String() string {
	return p.raw
}
