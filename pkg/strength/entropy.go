package strength

import (
	"math/bits"
	"unicode/utf8"
)

// Character pool weights per class. The symbol weight approximates the
// count of printable ASCII symbols.
const (
	poolLower  = 26
	poolUpper  = 26
	poolDigit  = 10
	poolSymbol = 32
)

// EntropyBits returns a cheap bit-strength estimate: password length
// (in runes) times the bit length of the combined character pool size.
// An empty password scores 0.
//
// This is a linear proxy, not a true log2 entropy. The grading
// thresholds in Grade are calibrated against this exact formula, so it
// must not be replaced with a mathematically rigorous estimate.
func EntropyBits(password string) float64 {
	c := Classify(password)

	pool := 0
	if c.Lower {
		pool += poolLower
	}
	if c.Upper {
		pool += poolUpper
	}
	if c.Digit {
		pool += poolDigit
	}
	if c.Symbol {
		pool += poolSymbol
	}
	if pool == 0 {
		return 0
	}

	return float64(utf8.RuneCountInString(password)) * float64(bits.Len(uint(pool)))
}
