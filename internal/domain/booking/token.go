package booking

import (
	"crypto/rand"
	"encoding/base64"
)

// AccessTokenLength is the length of the URL-safe token guarding guest
// access to a booking. 36 random bytes encode to exactly 48 characters.
const AccessTokenLength = 48

const accessTokenBytes = 36

// NewAccessToken returns a fresh access token. Tokens are generated once,
// at first insert, and never regenerated.
func NewAccessToken() (string, error) {
	b := make([]byte, accessTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
