package domain

// ArtifactKind discriminates the two authentication artifact variants.
type ArtifactKind string

const (
	// ArtifactScan is a scannable (QR-style) code artifact.
	ArtifactScan ArtifactKind = "scan"

	// ArtifactPairing is a short human-typed pairing code artifact.
	ArtifactPairing ArtifactKind = "pairing"
)

// Artifact is the authentication artifact attached to a session.
//
// Exactly one variant exists per session, fixed at creation: either a
// ScannableCode or a PairingCode. The interface is sealed so the
// exactly-one-of constraint is enforced at the type level rather than
// by convention over two optional fields.
type Artifact interface {
	// Kind returns the variant discriminator.
	Kind() ArtifactKind

	sealed()
}

// ScannableCode is an opaque encoded payload meant for visual capture
// by a companion device. The payload content is never interpreted by
// the system; it only has to look like a real scan payload.
type ScannableCode struct {
	Payload string `json:"payload"`
}

// Kind implements Artifact.
func (ScannableCode) Kind() ArtifactKind { return ArtifactScan }

func (ScannableCode) sealed() {}

// PairingCode is a short alphanumeric code used as an alternative to
// scanning, bound to the phone number it was requested for.
type PairingCode struct {
	Code        string `json:"code"`
	PhoneNumber string `json:"phone_number"`
}

// Kind implements Artifact.
func (PairingCode) Kind() ArtifactKind { return ArtifactPairing }

func (PairingCode) sealed() {}
