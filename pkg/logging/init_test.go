package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		logType   string
		level     string
		wantError bool
		wantIs    error
	}{
		"json/info":     {logType: JSON, level: "info"},
		"text/debug":    {logType: Text, level: "debug"},
		"tint/warn":     {logType: Tint, level: "warn"},
		"json/error":    {logType: JSON, level: "error"},
		"invalid level": {logType: JSON, level: "bogus", wantError: true},
		"unknown type":  {logType: "unknown", level: "info", wantError: true, wantIs: ErrUnknownType},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			logger, err := New(buf, tc.logType, tc.level)

			if tc.wantError {
				require.Error(t, err)

				if tc.wantIs != nil {
					assert.ErrorIs(t, err, tc.wantIs)
				}

				return
			}

			require.NoError(t, err)
			logger.Error("hello")
			assert.Contains(t, buf.String(), "hello")
		})
	}
}

func TestNewLevelFilters(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := New(buf, Text, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
