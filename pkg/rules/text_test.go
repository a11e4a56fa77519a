package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
	"github.com/askiada/go-textpipeline/pkg/rules"
)

func TestTextRules(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rule  model.StepFunc
		input string
		args  []any
		want  string
	}{
		"trim": {
			rule:  rules.Trim,
			input: " \t hello \n",
			want:  "hello",
		},
		"upper": {
			rule:  rules.Upper,
			input: "abc",
			want:  "ABC",
		},
		"prefix": {
			rule:  rules.Prefix,
			input: "text",
			args:  []any{"[OA] "},
			want:  "[OA] text",
		},
		"suffix": {
			rule:  rules.Suffix,
			input: "hello",
			args:  []any{" END"},
			want:  "hello END",
		},
		"newlines": {
			rule:  rules.NormalizeNewlines,
			input: "a\r\nb\rc\nd",
			want:  "a\nb\nc\nd",
		},
		"blank lines": {
			rule:  rules.CompressBlankLines,
			input: "a\n\n\n\nb\n\nc",
			want:  "a\n\nb\n\nc",
		},
		"replace": {
			rule:  rules.Replace,
			input: "2024-01-31",
			args:  []any{`(\d+)-(\d+)-(\d+)`, "$3/$2/$1"},
			want:  "31/01/2024",
		},
		"replace without match": {
			rule:  rules.Replace,
			input: "abc",
			args:  []any{`x+`, "y"},
			want:  "abc",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.rule(context.Background(), tc.input, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTextRulesArguments(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rule    model.StepFunc
		args    []any
		wantErr error
	}{
		"prefix missing":       {rule: rules.Prefix, wantErr: rules.ErrMissingArgument},
		"prefix not a string":  {rule: rules.Prefix, args: []any{1}, wantErr: rules.ErrInvalidArgument},
		"suffix missing":       {rule: rules.Suffix, wantErr: rules.ErrMissingArgument},
		"replace no pattern":   {rule: rules.Replace, wantErr: rules.ErrMissingArgument},
		"replace no repl":      {rule: rules.Replace, args: []any{"a"}, wantErr: rules.ErrMissingArgument},
		"replace bad pattern":  {rule: rules.Replace, args: []any{"(", "a"}, wantErr: rules.ErrInvalidArgument},
		"replace bad repl arg": {rule: rules.Replace, args: []any{"a", true}, wantErr: rules.ErrInvalidArgument},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.rule(context.Background(), "text", tc.args...)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
