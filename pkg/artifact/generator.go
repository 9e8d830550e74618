package artifact

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"strconv"
	"strings"
	"time"
)

// Generation defaults.
const (
	// DefaultCodeLength is the default pairing code length in characters.
	DefaultCodeLength = 8

	// DefaultCodeAlphabet is the default pairing code alphabet.
	DefaultCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultGroupSize is the number of characters per display group.
	DefaultGroupSize = 4

	// GroupSeparator joins pairing code display groups.
	GroupSeparator = "-"

	// scanRefLength and scanKeyLength are the byte lengths of the two
	// random components embedded in a scannable payload.
	scanRefLength = 16
	scanKeyLength = 32
)

// Generator produces session artifacts from a randomness source.
//
// The zero configuration (via New) uses crypto/rand and the default
// code shape. Generators are safe for concurrent use as long as the
// configured entropy source is.
type Generator struct {
	codeLength int
	alphabet   string
	groupSize  int
	entropy    io.Reader
}

// Option configures the Generator.
type Option func(*Generator)

// WithCodeLength sets the pairing code length in characters.
func WithCodeLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.codeLength = n
		}
	}
}

// WithAlphabet sets the pairing code alphabet.
func WithAlphabet(alphabet string) Option {
	return func(g *Generator) {
		if len(alphabet) >= 2 {
			g.alphabet = alphabet
		}
	}
}

// WithGroupSize sets the number of characters per display group.
func WithGroupSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.groupSize = n
		}
	}
}

// WithEntropy sets the randomness source (used in tests).
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.entropy = r
		}
	}
}

// New creates a Generator with the given options.
func New(opts ...Option) *Generator {
	g := &Generator{
		codeLength: DefaultCodeLength,
		alphabet:   DefaultCodeAlphabet,
		groupSize:  DefaultGroupSize,
		entropy:    rand.Reader,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// ScannablePayload produces an opaque scan payload: three comma-joined
// components (a random reference, random key material, and a
// millisecond timestamp), base64-encoded as a whole.
//
// The payload is never interpreted elsewhere; it is display data that
// a companion device would capture visually.
func (g *Generator) ScannablePayload() string {
	ref := base64.RawStdEncoding.EncodeToString(g.randBytes(scanRefLength))
	key := base64.RawStdEncoding.EncodeToString(g.randBytes(scanKeyLength))
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)

	payload := strings.Join([]string{ref, key, ts}, ",")
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// PairingCode produces a pairing code with characters drawn uniformly
// from the configured alphabet, formatted in display groups
// (e.g. "XXXX-XXXX" for the default length 8, group size 4).
func (g *Generator) PairingCode() string {
	raw := g.randCode()
	return formatGroups(raw, g.groupSize)
}

// randCode draws codeLength characters uniformly from the alphabet
// using rejection sampling, so no character is favored when the
// alphabet size does not divide 256.
func (g *Generator) randCode() string {
	n := len(g.alphabet)
	limit := 256 - 256%n

	var b strings.Builder
	b.Grow(g.codeLength)

	buf := make([]byte, g.codeLength*2)
	for b.Len() < g.codeLength {
		if _, err := io.ReadFull(g.entropy, buf); err != nil {
			// crypto/rand never fails; a broken injected source is a
			// programmer error.
			panic("artifact: entropy source failed: " + err.Error())
		}
		for _, c := range buf {
			if int(c) >= limit {
				continue
			}
			b.WriteByte(g.alphabet[int(c)%n])
			if b.Len() == g.codeLength {
				break
			}
		}
	}

	return b.String()
}

func (g *Generator) randBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(g.entropy, b); err != nil {
		panic("artifact: entropy source failed: " + err.Error())
	}
	return b
}

// formatGroups splits a code into groups joined by GroupSeparator.
func formatGroups(code string, size int) string {
	if size <= 0 || len(code) <= size {
		return code
	}

	groups := make([]string, 0, (len(code)+size-1)/size)
	for start := 0; start < len(code); start += size {
		end := start + size
		if end > len(code) {
			end = len(code)
		}
		groups = append(groups, code[start:end])
	}

	return strings.Join(groups, GroupSeparator)
}
