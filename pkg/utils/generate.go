package utils

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== BOOKING CODE ====================

// alphabet without 0/O and 1/I so codes survive being read over the phone
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateBookingCode creates a human-shareable booking code.
// Format: BK-YYYYMMDD-XXXXXX
func GenerateBookingCode() string {
	buf := make([]byte, 6)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return fmt.Sprintf("BK-%s-%s", time.Now().Format("20060102"), string(buf))
}

// ==================== RECEIPT REF ====================

// GenerateReceiptRef creates the receipt reference passed to the gateway
// when an order is opened. Format: RCPT-YYYYMMDD-HHMMSS-XXXX
func GenerateReceiptRef() string {
	buf := make([]byte, 4)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	now := time.Now()
	return fmt.Sprintf("RCPT-%s-%s-%s", now.Format("20060102"), now.Format("150405"), string(buf))
}
