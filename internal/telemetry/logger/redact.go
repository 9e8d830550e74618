package logger

import (
	"log/slog"
	"strings"
)

// Key patterns whose string values identify a subscriber or grant
// pairing access, and therefore never appear in logs verbatim.
var sensitiveKeyPatterns = []string{
	"phone",
	"pairing_code",
	"msisdn",
}

// redactSensitive checks if an attribute contains subscriber data and
// masks it if necessary.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		keyLower := strings.ToLower(a.Key)
		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) {
				if v := a.Value.String(); v != "" {
					return slog.String(a.Key, MaskPhoneNumber(v))
				}
				break
			}
		}
	}

	// Handle nested groups recursively.
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// MaskPhoneNumber masks all but the last two characters of a phone
// number or pairing code, preserving a leading "+".
// "+15551234567" becomes "+*********67".
func MaskPhoneNumber(value string) string {
	if value == "" {
		return value
	}

	prefix := ""
	body := value
	if strings.HasPrefix(value, "+") {
		prefix = "+"
		body = value[1:]
	}

	if len(body) <= 2 {
		return prefix + strings.Repeat("*", len(body))
	}
	return prefix + strings.Repeat("*", len(body)-2) + body[len(body)-2:]
}

// IsSensitiveKey checks if a key name suggests subscriber data.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
