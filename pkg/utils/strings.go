package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const ticketNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TicketNumberLength is the count of random characters after the prefix.
const TicketNumberLength = 8

// OptionalString trims s and returns nil when nothing is left.
func OptionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringOr returns the trimmed value of s, or fallback when it is blank.
func StringOr(s, fallback string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}

// GenerateTicketNumber returns "TKT-" followed by eight random uppercase alphanumerics.
func GenerateTicketNumber() (string, error) {
	buf := make([]byte, TicketNumberLength)
	limit := big.NewInt(int64(len(ticketNumberAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = ticketNumberAlphabet[n.Int64()]
	}
	return "TKT-" + string(buf), nil
}
