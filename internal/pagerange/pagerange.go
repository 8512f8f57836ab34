// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagerange parses page-range strings such as "1-3,5" into an
// ordered list of page numbers.
package pagerange

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// InvalidRangeSpecError reports a token that is not a page number or a
// valid start-end range.
type InvalidRangeSpecError struct {
	Token string
}

func (e *InvalidRangeSpecError) Error() string {
	return fmt.Sprintf("invalid page range: %q", e.Token)
}

// Resolve parses spec into ascending, distinct page numbers.
//
// Tokens are separated by commas. Each token is a non-negative integer or
// two integers joined by a hyphen (inclusive). Whitespace around tokens and
// around the hyphen is ignored. A range whose start exceeds its end is
// rejected rather than reversed. Resolve does not check pages against a
// document's length.
func Resolve(spec string) ([]int, error) {
	seen := make(map[int]struct{})
	var pages []int

	for _, part := range strings.Split(spec, ",") {
		token := strings.TrimSpace(part)

		start, end, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		for p := start; p <= end; p++ {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			pages = append(pages, p)
		}
	}

	slices.Sort(pages)
	return pages, nil
}

func parseToken(token string) (start, end int, err error) {
	lo, hi, isRange := strings.Cut(token, "-")
	if !isRange {
		n, err := parsePage(token)
		if err != nil {
			return 0, 0, &InvalidRangeSpecError{Token: token}
		}
		return n, n, nil
	}

	start, errStart := parsePage(strings.TrimSpace(lo))
	end, errEnd := parsePage(strings.TrimSpace(hi))
	if errStart != nil || errEnd != nil || start > end {
		return 0, 0, &InvalidRangeSpecError{Token: token}
	}
	return start, end, nil
}

// parsePage accepts only unsigned base-10 digits.
func parsePage(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
