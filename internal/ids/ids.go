package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Session returns a short random id tagging the trace records of one run.
func Session() (string, error) {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
