package rules

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-textpipeline/pkg/pipeline"
	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

// Delay resolves to the current value after the duration given as first argument,
// a time.Duration or a string such as "10ms". It stops early when ctx is done.
func Delay(ctx context.Context, current string, args ...any) model.Deferred {
	var (
		delay time.Duration
		err   error
	)

	switch arg := firstArg(args).(type) {
	case time.Duration:
		delay = arg
	case string:
		delay, err = time.ParseDuration(arg)
		if err != nil {
			return pipeline.Resolved("", errors.Wrapf(ErrInvalidArgument, "delay: %v", err))
		}
	case nil:
		return pipeline.Resolved("", errors.Wrap(ErrMissingArgument, "delay: argument 0"))
	default:
		return pipeline.Resolved("", errors.Wrapf(ErrInvalidArgument, "delay: argument 0 must be a duration, got %T", arg))
	}

	return pipeline.Go(func() (string, error) {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
			return current, nil
		}
	})
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}

	return args[0]
}
