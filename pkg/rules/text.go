package rules

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Trim removes leading and trailing white space.
func Trim(_ context.Context, current string, _ ...any) (string, error) {
	return strings.TrimSpace(current), nil
}

// Upper maps letters to upper case.
func Upper(_ context.Context, current string, _ ...any) (string, error) {
	return strings.ToUpper(current), nil
}

// Prefix prepends its first argument.
func Prefix(_ context.Context, current string, args ...any) (string, error) {
	prefix, err := stringArg("prefix", args, 0)
	if err != nil {
		return "", err
	}

	return prefix + current, nil
}

// Suffix appends its first argument.
func Suffix(_ context.Context, current string, args ...any) (string, error) {
	suffix, err := stringArg("suffix", args, 0)
	if err != nil {
		return "", err
	}

	return current + suffix, nil
}

// NormalizeNewlines converts \r\n and \r to \n.
func NormalizeNewlines(_ context.Context, current string, _ ...any) (string, error) {
	return crlfOrCR.ReplaceAllString(current, "\n"), nil
}

// CompressBlankLines keeps at most one blank line between paragraphs.
func CompressBlankLines(_ context.Context, current string, _ ...any) (string, error) {
	return multipleBlankLines.ReplaceAllString(current, "\n\n"), nil
}

var patterns sync.Map // pattern -> *regexp.Regexp

// Replace replaces every match of the pattern given as first argument
// with the replacement given as second argument. $1 style references are expanded.
func Replace(_ context.Context, current string, args ...any) (string, error) {
	pattern, err := stringArg("replace", args, 0)
	if err != nil {
		return "", err
	}

	repl, err := stringArg("replace", args, 1)
	if err != nil {
		return "", err
	}

	re, err := compile(pattern)
	if err != nil {
		return "", err
	}

	return re.ReplaceAllString(current, repl), nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil //nolint:forcetypeassert // only *regexp.Regexp are stored
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "replace: pattern %q: %v", pattern, err)
	}

	patterns.Store(pattern, re)

	return re, nil
}
