package artifact

import (
	"encoding/base64"
	"regexp"
	"strings"
	"testing"
)

func TestGenerator_PairingCodeShape(t *testing.T) {
	g := New()
	pattern := regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}$`)

	for i := 0; i < 1000; i++ {
		code := g.PairingCode()
		if !pattern.MatchString(code) {
			t.Fatalf("PairingCode() = %q, want XXXX-XXXX over [A-Z0-9]", code)
		}
	}
}

func TestGenerator_PairingCodeUniformity(t *testing.T) {
	g := New()
	counts := make(map[rune]int)

	const samples = 5000
	for i := 0; i < samples; i++ {
		for _, c := range strings.ReplaceAll(g.PairingCode(), GroupSeparator, "") {
			counts[c]++
		}
	}

	// Every alphabet character should appear, and none should dominate.
	// With 40000 draws over 36 characters the expected count is ~1111;
	// a 3x band is far beyond any statistical wobble.
	total := samples * DefaultCodeLength
	expected := total / len(DefaultCodeAlphabet)
	for _, c := range DefaultCodeAlphabet {
		n := counts[c]
		if n == 0 {
			t.Errorf("character %q never drawn", c)
		}
		if n > 3*expected {
			t.Errorf("character %q drawn %d times, expected ~%d", c, n, expected)
		}
	}

	// No character outside the alphabet.
	for c := range counts {
		if !strings.ContainsRune(DefaultCodeAlphabet, c) {
			t.Errorf("character %q outside alphabet", c)
		}
	}
}

func TestGenerator_PairingCodeCustomShape(t *testing.T) {
	g := New(WithCodeLength(6), WithAlphabet("ABC123"), WithGroupSize(3))

	code := g.PairingCode()
	pattern := regexp.MustCompile(`^[ABC123]{3}-[ABC123]{3}$`)
	if !pattern.MatchString(code) {
		t.Errorf("PairingCode() = %q, want XXX-XXX over [ABC123]", code)
	}
}

func TestGenerator_ScannablePayload(t *testing.T) {
	g := New()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		payload := g.ScannablePayload()

		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			t.Fatalf("payload is not valid base64: %v", err)
		}

		parts := strings.Split(string(decoded), ",")
		if len(parts) != 3 {
			t.Fatalf("decoded payload has %d components, want 3", len(parts))
		}
		for _, part := range parts {
			if part == "" {
				t.Fatal("payload component is empty")
			}
		}

		if seen[payload] {
			t.Fatalf("duplicate payload generated: %q", payload)
		}
		seen[payload] = true
	}
}

func TestFormatGroups(t *testing.T) {
	tests := []struct {
		code string
		size int
		want string
	}{
		{"ABCD1234", 4, "ABCD-1234"},
		{"ABCDE", 2, "AB-CD-E"},
		{"ABC", 4, "ABC"},
		{"ABC", 0, "ABC"},
		{"", 4, ""},
	}

	for _, tt := range tests {
		if got := formatGroups(tt.code, tt.size); got != tt.want {
			t.Errorf("formatGroups(%q, %d) = %q, want %q", tt.code, tt.size, got, tt.want)
		}
	}
}
