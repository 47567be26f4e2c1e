package orders

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var orderIDRE = regexp.MustCompile(`^ORD-\d{8}-[A-Z0-9]{6}$`)

func TestNewOrderIDFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		id := NewOrderID(now)
		assert.Regexp(t, orderIDRE, id)
		assert.Equal(t, "ORD-20260315-", id[:13])
	}
}

func TestNewOrderIDUsesUTCDate(t *testing.T) {
	// 11pm eastern on the 15th is already the 16th in UTC.
	eastern := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, eastern)
	assert.Equal(t, "ORD-20260316-", NewOrderID(now)[:13])
}

func TestNewOrderIDSuffixVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[NewOrderID(now)] = true
	}
	assert.Greater(t, len(seen), 1)
}
