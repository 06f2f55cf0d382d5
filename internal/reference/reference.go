// Package reference advances payment-reference strings to the next billing
// period without requiring the caller to declare which format is in use.
package reference

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparsableReference is returned when no known reference format matches.
var ErrUnparsableReference = errors.New("payment reference does not match any known format")

type pattern struct {
	name string
	re   *regexp.Regexp
}

// Patterns are tried in order and the first full match wins. Several patterns
// can match the same string, so the more specific shapes must come first: a
// two-letter prefix with a year, a bare year, a free-form prefix without a
// year, and finally plain digits.
var patterns = []pattern{
	{"prefixed-year", regexp.MustCompile(`^(?P<prefix>\D{2})(?P<year>\d{4})(?P<number>\d+)$`)},
	{"year", regexp.MustCompile(`^(?P<prefix>)(?P<year>\d{4})(?P<number>\d+)$`)},
	{"prefixed", regexp.MustCompile(`^(?P<prefix>.*\D)(?P<year>)(?P<number>\d+)$`)},
	{"plain", regexp.MustCompile(`^(?P<prefix>)(?P<year>)(?P<number>\d+)$`)},
}

// Increment produces the next period's payment reference. A 4-digit year
// embedded in the reference is replaced with nextYear only when it equals
// prevYear, which is how annual counters roll over. The trailing number is
// incremented preserving its zero-padded width; overflow grows the width.
func Increment(ref string, prevYear, nextYear int) (string, error) {
	for _, p := range patterns {
		match := p.re.FindStringSubmatch(ref)
		if match == nil {
			continue
		}

		var prefix, year, number string
		for i, group := range p.re.SubexpNames() {
			switch group {
			case "prefix":
				prefix = match[i]
			case "year":
				year = match[i]
			case "number":
				number = match[i]
			}
		}

		if year == strconv.Itoa(prevYear) {
			year = strconv.Itoa(nextYear)
		}

		// Counters have no fixed size, so increment in arbitrary precision.
		n, ok := new(big.Int).SetString(number, 10)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnparsableReference, ref)
		}
		next := n.Add(n, big.NewInt(1)).String()
		if pad := len(number) - len(next); pad > 0 {
			next = strings.Repeat("0", pad) + next
		}

		return prefix + year + next, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnparsableReference, ref)
}
