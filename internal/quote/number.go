package quote

import (
	"fmt"
	"time"
)

// NewQuoteNumber builds a quote number from the last six digits of the millisecond clock,
// e.g. QU482913.
func NewQuoteNumber(now time.Time) string {
	return fmt.Sprintf("QU%06d", now.UnixMilli()%1_000_000)
}
