package rules

import (
	"context"
	"regexp"

	"golang.org/x/text/width"
)

// FoldWidth maps full-width letters, digits and symbols to their half-width form and
// half-width katakana to full width, which is how Japanese documents are usually normalized.
func FoldWidth(_ context.Context, current string, _ ...any) (string, error) {
	return width.Fold.String(current), nil
}

// FullWidth maps every character with a full-width form to it.
func FullWidth(_ context.Context, current string, _ ...any) (string, error) {
	return width.Widen.String(current), nil
}

// HalfWidth maps every character with a half-width form to it, katakana included.
func HalfWidth(_ context.Context, current string, _ ...any) (string, error) {
	return width.Narrow.String(current), nil
}

var paragraphNumber = regexp.MustCompile(`[\[【［]([0-9０-９]{4,5})[\]】］]`)

// ParagraphNumbers writes paragraph numbers such as [0001] the way patent documents do: 【０００１】.
func ParagraphNumbers(_ context.Context, current string, _ ...any) (string, error) {
	return paragraphNumber.ReplaceAllStringFunc(current, func(match string) string {
		digits := paragraphNumber.FindStringSubmatch(match)[1]

		return "【" + width.Widen.String(digits) + "】"
	}), nil
}
