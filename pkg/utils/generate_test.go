package utils_test

import (
	"testing"

	"show-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingCode(t *testing.T) {
	code := utils.GenerateBookingCode()

	// BK-YYYYMMDD-XXXXXX, random part drawn from the unambiguous alphabet
	assert.Regexp(t, `^BK-\d{8}-[A-HJ-NP-Z2-9]{6}$`, code)
	assert.NotContains(t, code[12:], "0")
	assert.NotContains(t, code[12:], "O")
	assert.NotContains(t, code[12:], "I")
	assert.NotContains(t, code[12:], "1")
}

func TestGenerateBookingCode_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := utils.GenerateBookingCode()
		_, dup := seen[code]
		assert.False(t, dup, "duplicate booking code %s", code)
		seen[code] = struct{}{}
	}
}

func TestGenerateReceiptRef(t *testing.T) {
	ref := utils.GenerateReceiptRef()

	assert.Regexp(t, `^RCPT-\d{8}-\d{6}-[A-HJ-NP-Z2-9]{4}$`, ref)
}
