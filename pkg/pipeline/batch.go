package pipeline

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ApplyBatch runs the pipeline registered under name over every input and returns the
// outputs in input order. Inputs are processed concurrently, up to the registry batch limit,
// but the steps of each input still run one after the other. Steps used in a batch must be
// safe to call from several goroutines.
//
// The first failing input cancels the context handed to the others and its error is returned.
func (r *Registry) ApplyBatch(ctx context.Context, name string, inputs []string, args ...any) ([]string, error) {
	steps, opts, err := r.snapshot(name)
	if err != nil {
		return nil, err
	}

	outputs := make([]string, len(inputs))

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(r.batchLimit)

	for idx, input := range inputs {
		errGrp.Go(func() error {
			out, err := r.run(dCtx, name, steps, opts, input, args)
			if err != nil {
				return errors.Wrapf(err, "input %d", idx)
			}

			outputs[idx] = out

			return nil
		})
	}

	err = errGrp.Wait()
	if err != nil {
		return nil, err
	}

	return outputs, nil
}
