package flowstate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// DefaultTTL bounds the window during which a pending record stays
// consumable. Expiry is enforced server-side, independent of any
// client-visible cookie.
const DefaultTTL = 10 * time.Minute

// Record is one pending login attempt.
type Record struct {
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token"`
	ReturnTo  string    `json:"return_to"`
}

// NewToken returns a fresh random state token: 8 bytes of entropy,
// hex-encoded.
func NewToken() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("flowstate: generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
