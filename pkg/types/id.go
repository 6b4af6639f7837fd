package types

import (
	"fmt"
	"strconv"
)

// ID is the numeric identifier a registry allocates. It is formatted as a
// decimal string only where entities store or expose it.
type ID uint64

// String returns the decimal form of the identifier.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Next returns the identifier allocated after id.
func (id ID) Next() ID {
	return id + 1
}

// ParseID parses a decimal identifier. Only ASCII digits are accepted: no
// sign, whitespace, or empty string.
func ParseID(s string) (ID, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidID, s)
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidID, s, err)
	}
	return ID(n), nil
}
