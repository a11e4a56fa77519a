package pipeline_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textpipeline/pkg/pipeline"
)

func toUpper(s string) string {
	return strings.ToUpper(s)
}

func addBang(s string) string {
	return s + "!"
}

func concatPrefix(_ context.Context, current string, args ...any) (string, error) {
	return args[0].(string) + current, nil
}

func failing(context.Context, string, ...any) (string, error) {
	return "", assert.AnError
}

// spy records every value it is called with and returns it unchanged.
type spy struct {
	mu    sync.Mutex
	calls [][]any
}

func (s *spy) step(_ context.Context, current string, args ...any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, append([]any{current}, args...))

	return current, nil
}

func (s *spy) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.calls)
}

func newRegistry(t *testing.T, opts ...pipeline.Option) *pipeline.Registry {
	t.Helper()

	opts = append([]pipeline.Option{pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)

	reg, err := pipeline.New(opts...)
	require.NoError(t, err)

	return reg
}

// syncBuffer is a bytes.Buffer safe for concurrent writes by slog handlers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
