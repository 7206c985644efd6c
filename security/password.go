package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// passwordChars deliberately omits ambiguous characters (I, l, O, 0, 1) so
// a credential read off a screen can be typed back correctly.
const passwordChars = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// GeneratePassword returns a random one-time credential for a newly
// provisioned team member.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid password length: %d", length)
	}

	password := make([]byte, length)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		password[i] = passwordChars[n.Int64()]
	}
	return string(password), nil
}
