package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xmzio1/passcheck/pkg/strength"
)

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	r := strength.Grade("qwerty123", nil)

	WriteText(&buf, r, Options{NoColor: true})
	out := buf.String()

	for _, want := range []string{
		"=== Password Check Report ===",
		"Entered password: qwerty123",
		"Length: 9  |  Entropy estimate: 54.00 bits",
		"Overall assessment: Strong  |  Internal metric: 2",
		"Detected issues:",
		strength.IssueKeyboard,
		"Suggestions to improve your password:",
		strength.SuggestManager,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextNoIssues(t *testing.T) {
	var buf bytes.Buffer
	r := strength.Grade("Str0ng!Xy#Qz", nil)

	WriteText(&buf, r, Options{NoColor: true})
	out := buf.String()

	if !strings.Contains(out, "No major issues detected.") {
		t.Errorf("output missing no-issues line:\n%s", out)
	}
	if strings.Contains(out, "Detected issues:") {
		t.Errorf("unexpected issues section:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	r := strength.Grade("qwerty123", nil)

	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if decoded["password"] != "qwerty123" {
		t.Errorf("password = %v, want qwerty123", decoded["password"])
	}
	if decoded["strength"] != "Strong" {
		t.Errorf("strength = %v, want Strong", decoded["strength"])
	}
}
