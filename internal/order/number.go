package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrDuplicateNumber    = errors.New("duplicate order number")
	ErrSequenceExhausted  = errors.New("daily order number sequence exhausted")
	errMalformedLastOrder = errors.New("malformed last order number")
)

// maxDailySequence caps the 4-digit daily suffix. The YYMMDD#### format
// is an external contract, so past 9999 we fail closed rather than widen.
const maxDailySequence = 9999

// NumberPrefix returns the YYMMDD date prefix for t.
func NumberPrefix(t time.Time) string {
	return t.Format("060102")
}

// NextNumber derives the next order number for the day from the greatest
// existing number with today's prefix. last is empty when no order exists
// for the date yet.
func NextNumber(last string, t time.Time) (string, error) {
	prefix := NumberPrefix(t)
	seq := 1
	if last != "" {
		if len(last) != 10 || !strings.HasPrefix(last, prefix) {
			return "", errMalformedLastOrder
		}
		n, err := strconv.Atoi(last[6:])
		if err != nil {
			return "", errMalformedLastOrder
		}
		seq = n + 1
	}
	if seq > maxDailySequence {
		return "", ErrSequenceExhausted
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}
