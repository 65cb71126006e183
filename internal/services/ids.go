package services

import (
	"strings"

	"github.com/google/uuid"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// shortID returns prefix followed by n lowercase alphanumerics drawn from a random uuid.
func shortID(prefix string, n int) string {
	u := uuid.New()
	var b strings.Builder
	b.WriteString(prefix)
	for i := 0; i < n; i++ {
		b.WriteByte(idAlphabet[int(u[i])%len(idAlphabet)])
	}
	return b.String()
}

func newProductID() string { return shortID("prod", 6) }

func newOrderID() string {
	id := shortID("", 6)
	return "ORD" + strings.ToUpper(id)
}
