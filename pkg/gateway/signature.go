package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrSignatureInvalid means the callback signature did not match the HMAC
// recomputed from the server-held secret. Security-critical: callers must
// treat it as terminal and never fall back to assuming the payment is valid.
var ErrSignatureInvalid = errors.New("payment signature invalid")

// Sign computes the hex HMAC-SHA256 over "orderID|transactionID", the
// canonical string the gateway signs on payment completion.
func Sign(secret, orderID, transactionID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + transactionID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a gateway callback signature. hmac.Equal compares in
// constant time, so timing does not correlate with how many bytes matched.
func VerifySignature(secret, orderID, transactionID, signature string) error {
	expected := Sign(secret, orderID, transactionID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureInvalid
	}
	return nil
}
