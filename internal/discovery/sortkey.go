package discovery

import (
	"math"
	"strconv"
	"strings"
)

// SortKey is the numeric ordering key of a file name. A key either holds
// the value of the last digit run in the name, or is the "no number"
// sentinel which orders after every numbered key.
//
// Values are kept as digit strings so that runs longer than any integer
// type still compare by magnitude.
type SortKey struct {
	digits string
	ok     bool
}

// NumericKey extracts the sort key from a file name with its extension
// already stripped. The key is the value of the last maximal run of ASCII
// digits; leading zeros are ignored, so "img010" and "img10" share the key
// 10. A name without digits yields the sentinel.
func NumericKey(name string) SortKey {
	end := strings.LastIndexFunc(name, isDigit)
	if end < 0 {
		return SortKey{}
	}
	start := end
	for start > 0 && isDigit(rune(name[start-1])) {
		start--
	}

	digits := strings.TrimLeft(name[start:end+1], "0")
	if digits == "" {
		digits = "0"
	}
	return SortKey{digits: digits, ok: true}
}

// HasNumber reports whether the name contained a digit run.
func (k SortKey) HasNumber() bool {
	return k.ok
}

// Uint64 returns the key value. The sentinel and values that overflow
// uint64 both return math.MaxUint64; use HasNumber to tell them apart.
func (k SortKey) Uint64() uint64 {
	if !k.ok {
		return math.MaxUint64
	}
	v, err := strconv.ParseUint(k.digits, 10, 64)
	if err != nil {
		return math.MaxUint64
	}
	return v
}

// Compare returns -1, 0 or +1 depending on whether k orders before, equal
// to, or after other. Numbered keys order by value; the sentinel orders
// last and equals only itself.
func (k SortKey) Compare(other SortKey) int {
	switch {
	case k.ok && !other.ok:
		return -1
	case !k.ok && other.ok:
		return 1
	case !k.ok && !other.ok:
		return 0
	}

	// Both digit strings carry no leading zeros, so a longer string is a
	// larger number.
	if len(k.digits) != len(other.digits) {
		if len(k.digits) < len(other.digits) {
			return -1
		}
		return 1
	}
	return strings.Compare(k.digits, other.digits)
}

// String returns the decimal value, or "none" for the sentinel.
func (k SortKey) String() string {
	if !k.ok {
		return "none"
	}
	return k.digits
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
