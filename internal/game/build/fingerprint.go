package build

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Fingerprint returns a stable digest of the build description. Two builds
// with the same fingerprint produce the same report against the same tables.
func Fingerprint(b Build) (string, error) {
	raw, err := yaml.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encoding build %q: %w", b.Name, err)
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:16]), nil
}
