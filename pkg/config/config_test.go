package config_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textpipeline/pkg/config"
	"github.com/askiada/go-textpipeline/pkg/pipeline"
	"github.com/askiada/go-textpipeline/pkg/rules"
)

const sample = `
defaults:
  stopOnError: false
pipelines:
  - name: clean
    steps:
      - rule: newlines
      - rule: trim
      - rule: prefix
        name: office-action
        args: ["[OA] "]
  - name: shout
    stopOnError: true
    steps:
      - rule: upper
      - rule: suffix
        args: ["!"]
        enabled: false
`

func newRegistry(t *testing.T, cfg *config.Config) *pipeline.Registry {
	t.Helper()

	opts := append([]pipeline.Option{pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, cfg.RegistryOptions()...)

	reg, err := pipeline.New(opts...)
	require.NoError(t, err)

	return reg
}

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults)
	require.NotNil(t, cfg.Defaults.StopOnError)
	assert.False(t, *cfg.Defaults.StopOnError)
	assert.Nil(t, cfg.Defaults.Parallel)

	require.Len(t, cfg.Pipelines, 2)
	assert.Equal(t, "clean", cfg.Pipelines[0].Name)
	require.Len(t, cfg.Pipelines[0].Steps, 3)
	assert.Equal(t, "office-action", cfg.Pipelines[0].Steps[2].Name)
	assert.Equal(t, []any{"[OA] "}, cfg.Pipelines[0].Steps[2].Args)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   []byte
		wantErr error
	}{
		"empty": {
			input:   nil,
			wantErr: config.ErrEmptyConfig,
		},
		"too large": {
			input:   bytes.Repeat([]byte("#"), config.MaxInputSize+1),
			wantErr: config.ErrInputTooLarge,
		},
		"missing name": {
			input:   []byte("pipelines:\n  - steps:\n      - rule: trim\n"),
			wantErr: config.ErrInvalidConfig,
		},
		"duplicate name": {
			input:   []byte("pipelines:\n  - name: a\n    steps: [{rule: trim}]\n  - name: a\n    steps: [{rule: trim}]\n"),
			wantErr: config.ErrInvalidConfig,
		},
		"no steps": {
			input:   []byte("pipelines:\n  - name: a\n"),
			wantErr: config.ErrInvalidConfig,
		},
		"step without rule": {
			input:   []byte("pipelines:\n  - name: a\n    steps: [{name: x}]\n"),
			wantErr: config.ErrInvalidConfig,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse(tc.input)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := config.Parse([]byte("pipelines:\n  - name: a\n    stop_on_error: false\n    steps: [{rule: trim}]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop_on_error")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Pipelines, 2)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlugin(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	reg := newRegistry(t, cfg)
	require.NoError(t, reg.Use(cfg.Plugin(rules.DefaultCatalog())))

	assert.Equal(t, []string{"clean", "shout"}, reg.Names())

	got, err := reg.Apply(context.Background(), "clean", "  text\r\n")
	require.NoError(t, err)
	assert.Equal(t, "[OA] text", got)

	got, err = reg.Apply(context.Background(), "shout", "abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", got, "the disabled suffix step is skipped")

	steps, ok := reg.Get("clean")
	require.True(t, ok)
	assert.Equal(t, []string{"newlines", "trim", "office-action"}, []string{steps[0].Name, steps[1].Name, steps[2].Name})

	opts, ok := reg.Options("clean")
	require.True(t, ok)
	assert.False(t, opts.StopOnError, "pipelines inherit the configured defaults")

	opts, ok = reg.Options("shout")
	require.True(t, ok)
	assert.True(t, opts.StopOnError)
}

func TestPluginUnknownRule(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("pipelines:\n  - name: a\n    steps: [{rule: nope}]\n"))
	require.NoError(t, err)

	reg := newRegistry(t, cfg)

	err = reg.Use(cfg.Plugin(rules.DefaultCatalog()))
	require.ErrorIs(t, err, rules.ErrUnknownRule)
	assert.Empty(t, reg.Names())
}

func TestPluginNilRegistry(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	require.ErrorIs(t, cfg.Plugin(rules.DefaultCatalog())(nil), pipeline.ErrRegistryMustBeSet)
}

func TestRegistryOptions(t *testing.T) {
	t.Parallel()

	assert.Nil(t, (&config.Config{}).RegistryOptions())

	parallel := true
	cfg := &config.Config{Defaults: &config.Defaults{Parallel: &parallel}}
	reg := newRegistry(t, cfg)
	require.NoError(t, reg.Register("p", rules.Trim))

	opts, ok := reg.Options("p")
	require.True(t, ok)
	assert.True(t, opts.StopOnError, "unset defaults keep their usual value")
	assert.True(t, opts.Parallel)
}

func TestString(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	again, err := config.Parse([]byte(cfg.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasSuffix(config.DefaultPath(), filepath.Join(config.AppName, "config.yaml")))
}
