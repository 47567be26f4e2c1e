package orders

import (
	"crypto/rand"
	"fmt"
	"time"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID returns an id of the form ORD-YYYYMMDD-XXXXXX, dated by
// the current UTC day with a 6-character base36 suffix. Not guaranteed
// collision-free; nothing persists these so there is no dedup layer.
func NewOrderID(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to the clock rather than refuse the order.
		nanos := now.UnixNano()
		for i := range buf {
			buf[i] = byte(nanos >> (i * 8))
		}
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), string(buf))
}
