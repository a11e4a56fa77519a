package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
	"github.com/askiada/go-textpipeline/pkg/rules"
)

func TestWidthRules(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rule  model.StepFunc
		input string
		want  string
	}{
		"fold full width latin": {
			rule:  rules.FoldWidth,
			input: "ＡＢＣ１２３",
			want:  "ABC123",
		},
		"fold half width katakana": {
			rule:  rules.FoldWidth,
			input: "ｶﾀｶﾅ",
			want:  "カタカナ",
		},
		"full width": {
			rule:  rules.FullWidth,
			input: "abc123",
			want:  "ａｂｃ１２３",
		},
		"half width": {
			rule:  rules.HalfWidth,
			input: "ａｂｃ１２３",
			want:  "abc123",
		},
		"paragraph number": {
			rule:  rules.ParagraphNumbers,
			input: "[0001] first\n[0002] second",
			want:  "【０００１】 first\n【０００２】 second",
		},
		"paragraph number full width brackets": {
			rule:  rules.ParagraphNumbers,
			input: "［00010］text",
			want:  "【０００１０】text",
		},
		"paragraph number already formatted": {
			rule:  rules.ParagraphNumbers,
			input: "【０００３】",
			want:  "【０００３】",
		},
		"too short to be a paragraph number": {
			rule:  rules.ParagraphNumbers,
			input: "see [123]",
			want:  "see [123]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.rule(context.Background(), tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
