package strength

import "strings"

// keyboardPatterns are short keyboard walks and overused words, matched
// as case-insensitive substrings.
var keyboardPatterns = []string{"qwerty", "asdf", "zxcv", "12345", "password"}

// DetectRepeated returns 1 when the password is a short unit repeated
// to its full length (such as "abcabc") or contains a run of three or
// more identical characters anywhere, and 0 otherwise. The result is an
// int rather than a bool because the grading engine subtracts it from
// the score directly.
func DetectRepeated(password string) int {
	runes := []rune(password)
	n := len(runes)

	for unit := 1; unit <= n/2; unit++ {
		if unitRepeats(runes, unit) {
			return 1
		}
	}

	run := 1
	for i := 1; i < n; i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= 3 {
				return 1
			}
		} else {
			run = 1
		}
	}
	return 0
}

// unitRepeats reports whether repeating the first unit runes exactly
// reconstructs the whole password. A unit that does not evenly divide
// the length can never match.
func unitRepeats(runes []rune, unit int) bool {
	if len(runes)%unit != 0 {
		return false
	}
	for i := unit; i < len(runes); i++ {
		if runes[i] != runes[i%unit] {
			return false
		}
	}
	return true
}

// DetectKeyboard returns 1 when the lowercased password contains any
// known keyboard pattern as a substring, and 0 otherwise.
func DetectKeyboard(password string) int {
	lower := strings.ToLower(password)
	for _, pat := range keyboardPatterns {
		if strings.Contains(lower, pat) {
			return 1
		}
	}
	return 0
}
