package gateway_test

import (
	"testing"

	"show-booking/pkg/gateway"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestVerifySignature_Valid(t *testing.T) {
	sig := gateway.Sign(testSecret, "order_123", "pay_456")

	err := gateway.VerifySignature(testSecret, "order_123", "pay_456", sig)

	assert.NoError(t, err)
}

func TestVerifySignature_Tampered(t *testing.T) {
	sig := gateway.Sign(testSecret, "order_123", "pay_456")

	// flip one hex character
	tampered := []byte(sig)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	err := gateway.VerifySignature(testSecret, "order_123", "pay_456", string(tampered))

	assert.ErrorIs(t, err, gateway.ErrSignatureInvalid)
}

func TestVerifySignature_MismatchedPair(t *testing.T) {
	// signature for one order/payment pair must not verify another
	sig := gateway.Sign(testSecret, "order_123", "pay_456")

	assert.ErrorIs(t, gateway.VerifySignature(testSecret, "order_999", "pay_456", sig), gateway.ErrSignatureInvalid)
	assert.ErrorIs(t, gateway.VerifySignature(testSecret, "order_123", "pay_999", sig), gateway.ErrSignatureInvalid)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	sig := gateway.Sign("other-secret", "order_123", "pay_456")

	err := gateway.VerifySignature(testSecret, "order_123", "pay_456", sig)

	assert.ErrorIs(t, err, gateway.ErrSignatureInvalid)
}

func TestSign_Deterministic(t *testing.T) {
	assert.Equal(t,
		gateway.Sign(testSecret, "order_123", "pay_456"),
		gateway.Sign(testSecret, "order_123", "pay_456"),
	)
}
