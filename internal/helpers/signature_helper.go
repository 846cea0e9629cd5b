package helpers

import "crypto/subtle"

// CallbackTokenMatches compares a webhook callback token with the configured
// one byte for byte. An empty configured token matches nothing.
func CallbackTokenMatches(received, expected string) bool {
	if expected == "" || received == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(received), []byte(expected)) == 1
}
