package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Full-width and half-width pairs; non-greedy so "A(x)B(y)" keeps B.
	parenPattern = regexp.MustCompile(`（.*?）|\(.*?\)`)

	// Trailing corporate suffixes: 股份有限公司, 股份限公司, 有限公司, 限公司,
	// 公司, and "Co., Ltd." once whitespace has been removed.
	suffixPattern = regexp.MustCompile(`(股份有?限公司|有限?公司|公司|Co\.?,?Ltd\.?)$`)
)

// Normalize canonicalizes a company name into an identity key: NFKC, trim,
// drop parentheticals, drop whitespace, strip a trailing corporate suffix.
// The steps repeat until the result is stable, so Normalize is idempotent.
// After the first pass the input is already NFKC, so a pass that changes the
// string only deletes text and the loop terminates.
func Normalize(name string) string {
	s := name
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(name string) string {
	if name == "" {
		return ""
	}
	s := norm.NFKC.String(name)
	s = strings.TrimSpace(s)
	s = parenPattern.ReplaceAllString(s, "")
	s = removeSpace(s)
	s = suffixPattern.ReplaceAllString(s, "")
	return s
}

func removeSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
