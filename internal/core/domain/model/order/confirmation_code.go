package order

import (
	"crypto/rand"
	"fmt"
)

// confirmationCodeLength is the length of the handoff verification codes
// generated at order creation.
const confirmationCodeLength = 6

// codeAlphabet excludes visually ambiguous characters (0/O, 1/I/L) so the
// codes can be read out loud during a physical handoff.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// newConfirmationCode generates a short random handoff code. Codes are not
// re-derivable from order data and are compared verbatim.
func newConfirmationCode() (string, error) {
	buf := make([]byte, confirmationCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating confirmation code: %w", err)
	}

	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
