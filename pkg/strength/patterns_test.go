package strength

import "testing"

func TestDetectRepeated(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"empty", "", 0},
		{"no_repetition", "abcdef", 0},
		{"unit_of_two", "ababab", 1},
		{"unit_of_three", "abcabc", 1},
		{"run_of_three", "aaa", 1},
		{"run_inside", "xk9aaab2", 1},
		{"run_of_two_only", "aabbcc", 0},
		{"single_char", "a", 0},
		{"two_chars", "aa", 1}, // "a" repeated twice reconstructs the whole string
		{"almost_repeats", "abcab", 0},
		{"mixed_case_no_match", "abAB", 0}, // unit comparison is case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectRepeated(tt.password); got != tt.want {
				t.Errorf("DetectRepeated(%q) = %d, want %d", tt.password, got, tt.want)
			}
		})
	}
}

func TestDetectKeyboard(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"empty", "", 0},
		{"random", "Xk9#mZ2!qL", 0},
		{"qwerty_substring", "MyQwertyPass1!", 1},
		{"digits_walk", "x12345x", 1},
		{"asdf", "ASDFjkl", 1},
		{"zxcv", "zxcvbn", 1},
		{"password_word", "MyPassWord", 1},
		{"near_miss", "qwert", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectKeyboard(tt.password); got != tt.want {
				t.Errorf("DetectKeyboard(%q) = %d, want %d", tt.password, got, tt.want)
			}
		})
	}
}
