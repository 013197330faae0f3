// Package pagerange parses human-friendly page selection expressions such as
// "1,3,5-9" into ordered page number sequences.
package pagerange

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeOrderError reports a descending range token such as "5-3".
type RangeOrderError struct {
	Start int
	End   int
}

func (e *RangeOrderError) Error() string {
	return fmt.Sprintf("pagerange: range start %d is greater than end %d", e.Start, e.End)
}

// SyntaxError reports a token that is not a positive integer or a range of
// positive integers.
type SyntaxError struct {
	Token string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pagerange: invalid page token %q", e.Token)
}

// IsAll reports whether spec is the "all pages" sentinel. The sentinel is only
// recognized as the entire selection; it cannot be mixed with other tokens.
func IsAll(spec string) bool {
	return strings.EqualFold(strip(spec), "all")
}

// Parse converts a comma-separated page specification into the ordered
// sequence of page numbers it denotes. Tokens are either single pages ("7") or
// inclusive ascending ranges ("5-9"); whitespace is insignificant. Token order
// and duplicates are preserved, so "12-14,1-2,1" yields [12 13 14 1 2 1].
//
// Parse does not expand the "all" sentinel: selecting every page requires the
// source's page count, which only the caller has. Use IsAll first.
func Parse(spec string) ([]int, error) {
	spec = strip(spec)

	var pages []int
	for _, token := range strings.Split(spec, ",") {
		start, end, found := strings.Cut(token, "-")
		if !found {
			n, err := parsePage(token)
			if err != nil {
				return nil, err
			}
			pages = append(pages, n)
			continue
		}

		from, err := parsePage(start)
		if err != nil {
			return nil, &SyntaxError{Token: token}
		}
		to, err := parsePage(end)
		if err != nil {
			return nil, &SyntaxError{Token: token}
		}
		if from > to {
			return nil, &RangeOrderError{Start: from, End: to}
		}
		for n := from; n <= to; n++ {
			pages = append(pages, n)
		}
	}
	return pages, nil
}

// parsePage accepts positive integers only. Page numbers are 1-based; zero,
// negative, and non-numeric tokens are rejected rather than coerced.
func parsePage(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, &SyntaxError{Token: token}
	}
	return n, nil
}

func strip(s string) string {
	return strings.Join(strings.Fields(s), "")
}
