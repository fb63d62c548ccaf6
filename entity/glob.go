package entity

import (
	"regexp"
	"strings"

	"github.com/plaraje/pineutils/errors"
)

// compileGlob translates a glob pattern into a regular expression matcher.
// '*' becomes any-length wildcard, '?' a single-character wildcard, and
// every other character is matched literally. The pattern is anchored to
// the end of the candidate name.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")

	matcher, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidInput, "invalid pattern %q", pattern)
	}
	return matcher, nil
}
