package mcp

import (
	"context"
	"testing"

	"github.com/xmzio1/passcheck/pkg/strength"
)

func TestMaskPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		expected string
	}{
		{
			name:     "empty",
			password: "",
			expected: "",
		},
		{
			name:     "1 character",
			password: "a",
			expected: "*",
		},
		{
			name:     "4 characters",
			password: "abcd",
			expected: "****",
		},
		{
			name:     "5 characters shows last 2",
			password: "abcde",
			expected: "***de",
		},
		{
			name:     "8 characters shows last 2",
			password: "abcdefgh",
			expected: "******gh",
		},
		{
			name:     "9 characters shows last 4",
			password: "abcdefghi",
			expected: "*****fghi",
		},
		{
			name:     "multibyte runes",
			password: "pässwörter",
			expected: "******rter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskPassword(tt.password); got != tt.expected {
				t.Errorf("maskPassword(%q) = %q, want %q", tt.password, got, tt.expected)
			}
		})
	}
}

func testServer(common strength.CommonSet) *Server {
	return &Server{common: common}
}

func TestHandlePasswordCheck(t *testing.T) {
	s := testServer(strength.LoadCommonPasswords([]string{"password1"}))

	_, out, err := s.handlePasswordCheck(context.Background(), nil, PasswordCheckInput{Password: "qwerty123"})
	if err != nil {
		t.Fatalf("handlePasswordCheck() error = %v", err)
	}

	if out.MaskedPassword != "*****y123" {
		t.Errorf("MaskedPassword = %q, want %q", out.MaskedPassword, "*****y123")
	}
	if out.Length != 9 {
		t.Errorf("Length = %d, want 9", out.Length)
	}
	if out.Strength != "Strong" {
		t.Errorf("Strength = %q, want %q", out.Strength, "Strong")
	}
	if len(out.Issues) == 0 {
		t.Error("expected issues for keyboard pattern password")
	}
}

func TestHandlePasswordCheckCommon(t *testing.T) {
	s := testServer(strength.LoadCommonPasswords([]string{"password1"}))

	_, out, err := s.handlePasswordCheck(context.Background(), nil, PasswordCheckInput{Password: "Password1"})
	if err != nil {
		t.Fatalf("handlePasswordCheck() error = %v", err)
	}
	if !out.Common {
		t.Error("Common = false, want true")
	}
}

func TestHandlePasswordCheckSkipWordlist(t *testing.T) {
	s := testServer(strength.LoadCommonPasswords([]string{"password1"}))

	off := false
	_, out, err := s.handlePasswordCheck(context.Background(), nil, PasswordCheckInput{Password: "password1", UseWordlist: &off})
	if err != nil {
		t.Fatalf("handlePasswordCheck() error = %v", err)
	}
	if out.Common {
		t.Error("Common = true, want false when wordlist is disabled")
	}
}

func TestHandlePasswordCheckEmpty(t *testing.T) {
	s := testServer(nil)

	_, _, err := s.handlePasswordCheck(context.Background(), nil, PasswordCheckInput{})
	if err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestHandleWordlistStats(t *testing.T) {
	s := testServer(strength.LoadCommonPasswords([]string{"a", "b", "c"}))

	_, out, err := s.handleWordlistStats(context.Background(), nil, WordlistStatsInput{})
	if err != nil {
		t.Fatalf("handleWordlistStats() error = %v", err)
	}
	if !out.Loaded {
		t.Error("Loaded = false, want true")
	}
	if out.Entries != len(s.common) {
		t.Errorf("Entries = %d, want %d", out.Entries, len(s.common))
	}
}
