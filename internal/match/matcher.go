// Package match decides whether a dataset row names the company a caller
// asked about, tolerating formatting noise in either string.
package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// Policy controls identity comparison. It is built once from configuration
// and shared read-only by every query.
type Policy struct {
	CaseSensitive bool
	PartialMatch  bool
}

// Matches reports whether candidate (a name column value) identifies query.
//
// Both the raw and the normalized forms are compared: normalization absorbs
// suffix and spacing noise, the raw comparison keeps exact callers exact.
// Case folding happens before normalization, so in case-insensitive mode the
// English "Co., Ltd." suffix is no longer recognized.
func Matches(candidate, query string, p Policy) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}

	if !p.CaseSensitive {
		fold := cases.Fold()
		candidate = fold.String(candidate)
		query = fold.String(query)
	}

	candidateNorm := Normalize(candidate)
	queryNorm := Normalize(query)

	if p.PartialMatch {
		if strings.Contains(candidate, query) {
			return true
		}
		return queryNorm != "" && strings.Contains(candidateNorm, queryNorm)
	}
	if candidate == query {
		return true
	}
	return queryNorm != "" && candidateNorm == queryNorm
}
