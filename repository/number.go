package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InspectionNumberPrefix builds the sequential-number prefix for the
// given moment, e.g. "PP-2025-06-".
func InspectionNumberPrefix(now time.Time) string {
	return fmt.Sprintf("PP-%d-%02d-", now.Year(), int(now.Month()))
}

// NextSequenceNumber derives the successor of the lexicographically
// last number sharing the prefix. An empty last number seeds the
// sequence at 0001. The suffix is whatever follows the final dash;
// uniqueness is by convention, not by constraint.
func NextSequenceNumber(prefix, last string) string {
	sequence := 1
	if last != "" {
		parts := strings.Split(last, "-")
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err == nil {
			sequence = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, sequence)
}
