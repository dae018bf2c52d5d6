package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateOrderNumber builds a human-readable order number such as
// INV-20250131-7G4KQ2. The date part keeps invoices sortable, the random
// suffix avoids collisions between orders created in the same second.
func GenerateOrderNumber(now time.Time) string {
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand should not fail; fall back to a time-derived index
			suffix[i] = orderNumberAlphabet[int(now.UnixNano()>>uint(i*5))%len(orderNumberAlphabet)]
			continue
		}
		suffix[i] = orderNumberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), string(suffix))
}
