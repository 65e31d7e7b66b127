// Package strength implements heuristic password strength analysis:
// character class coverage, a cheap entropy estimate, repeated-pattern
// and keyboard-pattern detection, dictionary lookup against a set of
// known common passwords, and a grading engine that combines these
// signals into a single report.
//
// Every function in this package is a pure computation over its inputs.
// Grading never fails: any password string, including the empty string,
// produces a valid Report.
package strength

// Classes reports which character classes appear in a password.
type Classes struct {
	Lower  bool
	Upper  bool
	Digit  bool
	Symbol bool
}

// Classify scans a password and reports the character classes present.
// Lower, Upper and Digit cover the ASCII ranges only; every other rune
// counts as a symbol. An empty password yields the zero value.
func Classify(password string) Classes {
	var c Classes
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case r >= '0' && r <= '9':
			c.Digit = true
		default:
			c.Symbol = true
		}
	}
	return c
}

// Count returns the number of classes present.
func (c Classes) Count() int {
	n := 0
	for _, present := range []bool{c.Lower, c.Upper, c.Digit, c.Symbol} {
		if present {
			n++
		}
	}
	return n
}
