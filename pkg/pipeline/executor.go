package pipeline

import (
	"context"
	"time"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

// Apply runs the pipeline registered under name over input.
// args are passed to every step after the step's own arguments.
//
// Steps run one after the other, each one receiving the output of the previous enabled step.
// The pipeline is read once when the call starts: steps inserted, removed or toggled while it
// runs do not affect this run.
func (r *Registry) Apply(ctx context.Context, name, input string, args ...any) (string, error) {
	steps, opts, err := r.snapshot(name)
	if err != nil {
		return "", err
	}

	return r.run(ctx, name, steps, opts, input, args)
}

// ApplyList runs stepsLike over input without registering it, with the registry default options.
func (r *Registry) ApplyList(ctx context.Context, stepsLike any, input string, args ...any) (string, error) {
	steps, err := Normalize(stepsLike)
	if err != nil {
		return "", err
	}

	return r.run(ctx, AdhocName, steps, r.defaults, input, args)
}

// ApplyAsync is Apply returning at once with the Future of the result.
func (r *Registry) ApplyAsync(ctx context.Context, name, input string, args ...any) *Future {
	return Go(func() (string, error) {
		return r.Apply(ctx, name, input, args...)
	})
}

// ApplyListAsync is ApplyList returning at once with the Future of the result.
func (r *Registry) ApplyListAsync(ctx context.Context, stepsLike any, input string, args ...any) *Future {
	return Go(func() (string, error) {
		return r.ApplyList(ctx, stepsLike, input, args...)
	})
}

func (r *Registry) run(ctx context.Context, name string, steps []model.Step, opts model.Options, input string, invokeArgs []any) (output string, err error) {
	start := time.Now()

	r.beforeRun(name, steps)

	defer func() {
		r.afterRun(name, time.Since(start), err)
	}()

	current := input

	if r.hooks.BeforeApply != nil {
		hookErr := callHook(func() error {
			return r.hooks.BeforeApply(ctx, name, current)
		})
		if hookErr != nil {
			err = r.fail(ctx, newHookError(name, model.HookBeforeApply, hookErr), opts)
			if err != nil {
				return "", err
			}
		}
	}

	for idx, step := range steps {
		if !step.Enabled {
			r.logger.Debug("skipping disabled step", "pipeline", name, "step", step.Name, "index", idx)

			continue
		}

		r.logger.Debug("executing step", "pipeline", name, "step", step.Name, "index", idx)

		startFn := time.Now()

		out, stepErr := callStep(ctx, step, current, invokeArgs)
		if stepErr != nil {
			err = r.fail(ctx, newStepError(name, idx, step, stepErr), opts)
			if err != nil {
				return "", err
			}

			continue
		}

		current = out

		r.stepOutput(step.Info(name, idx), time.Since(startFn))
	}

	if r.hooks.AfterApply != nil {
		hookErr := callHook(func() error {
			return r.hooks.AfterApply(ctx, name, current)
		})
		if hookErr != nil {
			err = r.fail(ctx, newHookError(name, model.HookAfterApply, hookErr), opts)
			if err != nil {
				return "", err
			}
		}
	}

	return current, nil
}

// callStep calls the step with its own arguments first and the call arguments after them.
func callStep(ctx context.Context, step model.Step, current string, invokeArgs []any) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = "", panicError(rec)
		}
	}()

	args := make([]any, 0, len(step.Args)+len(invokeArgs))
	args = append(args, step.Args...)
	args = append(args, invokeArgs...)

	return await(ctx, step.Fn(ctx, current, args...))
}

func callHook(hook func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError(rec)
		}
	}()

	return hook()
}

// fail reports failure to OnError and returns it when the pipeline stops on errors.
func (r *Registry) fail(ctx context.Context, failure *StepExecutionError, opts model.Options) error {
	r.notifyError(ctx, failure)

	if opts.StopOnError {
		r.logger.Debug("pipeline stopped", "pipeline", failure.Pipeline, "stage", failure.Stage, "index", failure.Index, "error", failure.Err)

		return failure
	}

	r.logger.Warn("pipeline failure skipped",
		"pipeline", failure.Pipeline,
		"stage", failure.Stage,
		"hook", failure.Hook,
		"step", failure.StepName,
		"index", failure.Index,
		"error", failure.Err,
	)

	return nil
}

func (r *Registry) notifyError(ctx context.Context, failure *StepExecutionError) {
	if r.hooks.OnError == nil {
		return
	}

	err := callHook(func() error {
		return r.hooks.OnError(ctx, failure.Pipeline, failure.Err, failure.Stage, failure.Index)
	})
	if err != nil {
		r.logger.Warn("onError hook failed", "pipeline", failure.Pipeline, "error", err, "original", failure.Err)
	}
}

func (r *Registry) beforeRun(name string, steps []model.Step) {
	if len(r.observers) == 0 {
		return
	}

	infos := make([]*model.StepInfo, len(steps))
	for i, step := range steps {
		infos[i] = step.Info(name, i)
	}

	for _, observer := range r.observers {
		err := observer.BeforeRun(name, infos)
		if err != nil {
			r.logger.Warn("observer failed before run", "pipeline", name, "error", err)
		}
	}
}

func (r *Registry) stepOutput(info *model.StepInfo, elapsed time.Duration) {
	for _, observer := range r.observers {
		err := observer.OnStepOutput(info, elapsed)
		if err != nil {
			r.logger.Warn("observer failed on step output", "pipeline", info.Pipeline, "index", info.Index, "error", err)
		}
	}
}

func (r *Registry) afterRun(name string, total time.Duration, runErr error) {
	for _, observer := range r.observers {
		err := observer.AfterRun(name, total, runErr)
		if err != nil {
			r.logger.Warn("observer failed after run", "pipeline", name, "error", err)
		}
	}
}
