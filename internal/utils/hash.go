package utils

import (
	"crypto/sha1" //nolint:gosec // identifier derivation, not a security boundary
	"encoding/hex"
	"strings"
)

// SyntheticIDSeparator joins the parts hashed by [SyntheticID].
const SyntheticIDSeparator = "|"

// SyntheticID derives a stable identifier for a record that has no native
// one (for example an answer from a remote modality query). The parts are
// joined with "|", hashed with SHA-1, hex encoded and split into
// hyphen-separated groups of eight characters:
//
//	SyntheticID("P1", "1.2.3") == "xxxxxxxx-xxxxxxxx-xxxxxxxx-xxxxxxxx-xxxxxxxx"
func SyntheticID(parts ...string) string {
	sum := sha1.Sum([]byte(strings.Join(parts, SyntheticIDSeparator))) //nolint:gosec
	return GroupHex(hex.EncodeToString(sum[:]), 8)
}

// GroupHex splits s into hyphen-separated groups of size characters. The
// last group may be shorter.
func GroupHex(s string, size int) string {
	if size <= 0 || len(s) <= size {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/size)
	for i := 0; i < len(s); i += size {
		if i > 0 {
			b.WriteByte('-')
		}
		end := min(i+size, len(s))
		b.WriteString(s[i:end])
	}
	return b.String()
}
