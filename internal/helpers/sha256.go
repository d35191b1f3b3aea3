package helpers

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Sha256String calculates the SHA256 hash of a given string and returns its string representation.
func Sha256String(input string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}

// Sha256Key hashes the parts joined with "|". It is used to derive stable
// keys from a combination of values, e.g. a rule ID and a period.
func Sha256Key(parts ...fmt.Stringer) string {
	s := make([]string, 0, len(parts))
	for _, p := range parts {
		s = append(s, p.String())
	}

	return Sha256String(strings.Join(s, "|"))
}
