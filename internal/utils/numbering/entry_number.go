// Package numbering formats and parses journal entry numbers (JE-<year>-<sequence>).
package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

const prefix = "JE"

// FormatEntryNumber renders the entry number for a tenant/year sequence value.
func FormatEntryNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%04d-%06d", prefix, year, seq)
}

// ParseEntryNumber extracts year and sequence from an entry number.
func ParseEntryNumber(number string) (int, int64, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != prefix {
		return 0, 0, fmt.Errorf("malformed entry number %q", number)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed entry number year %q: %w", number, err)
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || seq <= 0 {
		return 0, 0, fmt.Errorf("malformed entry number sequence %q", number)
	}
	return year, seq, nil
}
