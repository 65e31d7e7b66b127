package strength

import (
	"encoding/json"
	"math"
	"unicode/utf8"
)

// Strength is the qualitative verdict for a password.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
	VeryStrong
)

// String returns the human-readable label for the strength level.
func (s Strength) String() string {
	switch s {
	case VeryStrong:
		return "Very strong"
	case Strong:
		return "Strong"
	case Medium:
		return "Medium"
	default:
		return "Weak"
	}
}

// MarshalJSON encodes the strength as its label.
func (s Strength) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Issue messages, in detection order.
const (
	IssueShortLength = "Password length is short (< 8)."
	IssueNoLower     = "Add lowercase letters (a-z)."
	IssueNoUpper     = "Add uppercase letters (A-Z)."
	IssueNoDigit     = "Add digits (0-9)."
	IssueNoSymbol    = "Add symbols or punctuation (e.g. !@#)."
	IssueRepeated    = "Repeated characters or patterns in password."
	IssueKeyboard    = "Contains a known keyboard pattern (e.g. qwerty or 12345)."
	IssueCommon      = "Password is found in the common passwords list — change it immediately!"
)

// Suggestion messages, in presentation order.
const (
	SuggestLonger     = "Make the password 12 characters or longer for better security."
	SuggestPassphrase = "Use a long passphrase instead of a short password."
	SuggestMixClasses = "Combine uppercase, lowercase, digits, and symbols."
	SuggestAvoidWords = "Avoid known words or keyboard patterns."
	SuggestManager    = "Use a password manager to generate and store strong, unique passwords for each site."
)

// Report is the result of grading a single password. It is a pure
// function of the password and the common-password set: grading the
// same inputs always yields an identical Report.
type Report struct {
	// Password echoes the graded password.
	Password string `json:"password"`
	// Length is the password length in characters.
	Length int `json:"length"`
	// EntropyBits is the estimate from EntropyBits, rounded to 2 decimals.
	EntropyBits float64 `json:"entropy_bits"`
	// Score is the internal metric combining class coverage and penalties.
	// It supports the strength label and is not a grade on its own.
	Score int `json:"score_metric"`
	// Strength is the primary verdict.
	Strength Strength `json:"strength"`
	// Issues lists detected problems in detection order.
	Issues []string `json:"issues"`
	// Suggestions lists generic improvement advice in fixed order.
	Suggestions []string `json:"suggestions"`
}

// classChecks is the fixed order in which absent character classes
// record their issues. The points for present classes come from
// Classes.Count.
var classChecks = []struct {
	present func(Classes) bool
	issue   string
}{
	{func(c Classes) bool { return c.Lower }, IssueNoLower},
	{func(c Classes) bool { return c.Upper }, IssueNoUpper},
	{func(c Classes) bool { return c.Digit }, IssueNoDigit},
	{func(c Classes) bool { return c.Symbol }, IssueNoSymbol},
}

// strengthLadder is the ordered label chain: the first row whose
// entropy and score gates both pass wins, and Weak is the fallback.
// Only the Weak fallback ignores entropy.
var strengthLadder = []struct {
	minEntropy float64
	minScore   int
	label      Strength
}{
	{60, 3, VeryStrong},
	{45, 1, Strong},
	{28, math.MinInt, Medium},
}

// baseSuggestions are always present, after the optional length
// suggestion.
var baseSuggestions = []string{
	SuggestPassphrase,
	SuggestMixClasses,
	SuggestAvoidWords,
	SuggestManager,
}

// Grade analyzes a password and produces a Report. The common set is
// optional: nil or empty silently skips the dictionary check.
//
// The score starts at 0 and the issue list is built in a fixed order:
// length, the four character classes, repetition, keyboard pattern, and
// finally dictionary membership.
func Grade(password string, common CommonSet) Report {
	length := utf8.RuneCountInString(password)
	entropy := EntropyBits(password)
	classes := Classify(password)

	issues := make([]string, 0, 8)
	score := 0

	if length < 8 {
		issues = append(issues, IssueShortLength)
	} else {
		score++
	}

	score += classes.Count()
	for _, check := range classChecks {
		if !check.present(classes) {
			issues = append(issues, check.issue)
		}
	}

	repeated := DetectRepeated(password)
	keyboard := DetectKeyboard(password)
	score -= repeated + keyboard
	if repeated == 1 {
		issues = append(issues, IssueRepeated)
	}
	if keyboard == 1 {
		issues = append(issues, IssueKeyboard)
	}

	if common.Contains(password) {
		issues = append(issues, IssueCommon)
		score -= 5
	}

	label := Weak
	for _, row := range strengthLadder {
		if entropy >= row.minEntropy && score >= row.minScore {
			label = row.label
			break
		}
	}

	suggestions := make([]string, 0, len(baseSuggestions)+1)
	if length < 12 {
		suggestions = append(suggestions, SuggestLonger)
	}
	suggestions = append(suggestions, baseSuggestions...)

	return Report{
		Password:    password,
		Length:      length,
		EntropyBits: math.Round(entropy*100) / 100,
		Score:       score,
		Strength:    label,
		Issues:      issues,
		Suggestions: suggestions,
	}
}
