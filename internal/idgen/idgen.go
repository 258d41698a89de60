package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// RandomSuffix returns a random alphanumeric string of the given length,
// used for OAuth state tokens. The output never contains underscores or
// dashes, so tokens built as underscore-joined parts stay parseable.
func RandomSuffix(length int) (string, error) {
	var builder strings.Builder
	for builder.Len() < length {
		randomBytes := make([]byte, length)
		if _, err := rand.Read(randomBytes); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}

		encoded := base64.RawURLEncoding.EncodeToString(randomBytes)
		for _, c := range encoded {
			if c == '-' || c == '_' {
				continue
			}
			builder.WriteRune(c)
			if builder.Len() == length {
				break
			}
		}
	}

	return builder.String(), nil
}
