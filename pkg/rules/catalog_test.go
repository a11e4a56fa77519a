package rules_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textpipeline/pkg/pipeline"
	"github.com/askiada/go-textpipeline/pkg/rules"
)

func TestCatalogStep(t *testing.T) {
	t.Parallel()

	catalog := rules.DefaultCatalog()

	for _, name := range catalog.Names() {
		step, err := catalog.Step(name)
		require.NoError(t, err, name)

		_, err = pipeline.Normalize(step)
		require.NoError(t, err, "rule %s must be a valid step", name)
	}

	_, err := catalog.Step("nope")
	require.ErrorIs(t, err, rules.ErrUnknownRule)
}

func TestCatalogNames(t *testing.T) {
	t.Parallel()

	names := rules.DefaultCatalog().Names()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "trim")
	assert.Contains(t, names, "paragraph-numbers")
	assert.Contains(t, names, "delay")
}

func TestCatalogPipeline(t *testing.T) {
	t.Parallel()

	catalog := rules.DefaultCatalog()

	reg, err := pipeline.New(pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	steps := []pipeline.Spec{}
	for _, rule := range []struct {
		name string
		args []any
	}{
		{name: "newlines"},
		{name: "trim"},
		{name: "fold-width"},
		{name: "paragraph-numbers"},
		{name: "delay", args: []any{"1ms"}},
		{name: "prefix", args: []any{"> "}},
	} {
		fn, err := catalog.Step(rule.name)
		require.NoError(t, err)

		steps = append(steps, pipeline.Spec{Name: rule.name, Fn: fn, Args: rule.args})
	}

	require.NoError(t, reg.Register("patent", steps))

	got, err := reg.Apply(context.Background(), "patent", "  [0001]ＡＢＣ\r\n")
	require.NoError(t, err)
	assert.Equal(t, "> 【０００１】ABC", got)
}
