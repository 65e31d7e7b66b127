package strength

import "strings"

// CommonSet is a set of known common passwords. For every source line
// it holds both the original form and the lowercased form, so that
// membership checks cover exact and lowercase matches only, never
// arbitrary case variants.
//
// A CommonSet is built once and is safe for concurrent readers.
type CommonSet map[string]struct{}

// LoadCommonPasswords builds a CommonSet from raw lines. Each line is
// trimmed of surrounding whitespace; empty lines are skipped; every
// remaining line is inserted together with its lowercase form.
func LoadCommonPasswords(lines []string) CommonSet {
	set := make(CommonSet, len(lines)*2)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		set[line] = struct{}{}
		set[strings.ToLower(line)] = struct{}{}
	}
	return set
}

// Contains reports whether the password, as typed or lowercased, is in
// the set. A nil or empty set matches nothing, so dictionary checking
// degrades to a no-op when no list was supplied.
func (s CommonSet) Contains(password string) bool {
	if len(s) == 0 {
		return false
	}
	if _, ok := s[password]; ok {
		return true
	}
	_, ok := s[strings.ToLower(password)]
	return ok
}
