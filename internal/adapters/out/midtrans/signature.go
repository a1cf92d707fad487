package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SignatureVerifier checks the signature_key of a payment notification:
// sha512(order_id + status_code + gross_amount + server_key), hex encoded.
type SignatureVerifier struct {
	serverKey string
	enabled   bool
}

func NewSignatureVerifier(serverKey string, enabled bool) SignatureVerifier {
	return SignatureVerifier{serverKey: serverKey, enabled: enabled}
}

func (v SignatureVerifier) Sign(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + v.serverKey))
	return hex.EncodeToString(sum[:])
}

// Verify always succeeds when verification is disabled.
func (v SignatureVerifier) Verify(orderID, statusCode, grossAmount, signature string) bool {
	if !v.enabled {
		return true
	}
	expected := v.Sign(orderID, statusCode, grossAmount)
	got := strings.ToLower(strings.TrimSpace(signature))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
