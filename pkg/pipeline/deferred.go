package pipeline

import (
	"context"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

// Future is a Deferred filled once by its producer.
type Future struct {
	done  chan struct{}
	value string
	err   error
}

// Resolved returns a Future already holding value and err.
// It is how synchronous results are turned into deferred ones.
func Resolved(value string, err error) *Future {
	f := &Future{done: make(chan struct{})}
	f.value, f.err = value, err
	close(f.done)

	return f
}

// Go runs fn in its own goroutine and returns the Future of its result.
// A panic in fn becomes the Future's error.
func Go(fn func() (string, error)) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.value, f.err = "", panicError(r)
			}
		}()

		f.value, f.err = fn()
	}()

	return f
}

// Await blocks until the Future is filled or ctx is done.
// A nil or zero Future is already filled with the empty string.
func (f *Future) Await(ctx context.Context) (string, error) {
	if f == nil || f.done == nil {
		return "", nil
	}

	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

var closed = func() chan struct{} {
	c := make(chan struct{})
	close(c)

	return c
}()

// Done is closed once the Future is filled.
func (f *Future) Done() <-chan struct{} {
	if f == nil || f.done == nil {
		return closed
	}

	return f.done
}

// await resolves d, a nil Deferred being the empty string.
func await(ctx context.Context, d model.Deferred) (string, error) {
	if d == nil {
		return "", nil
	}

	return d.Await(ctx)
}

var _ model.Deferred = (*Future)(nil)
