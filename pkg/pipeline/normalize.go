package pipeline

import (
	"context"
	"reflect"

	"github.com/pkg/errors"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

// Spec is a step function with its metadata.
//
// Fn accepts the same function shapes as a bare step:
//   - model.StepFunc and model.AsyncStepFunc, or their unnamed func types
//   - func(context.Context, string) (string, error)
//   - func(string) (string, error)
//   - func(string) string
//
// Args are passed to Fn after the current value and before the call-time arguments.
// A Disabled step stays in its pipeline but is skipped when the pipeline runs.
type Spec struct {
	Fn       any
	Name     string
	Args     []any
	Disabled bool
}

// Normalize turns a step-like value, or a slice of them, into canonical step records.
// Accepted values are the bare function shapes listed on Spec, Spec and *Spec,
// and slices of any of them, []any included.
func Normalize(stepsLike any) ([]model.Step, error) {
	var items []any

	switch list := stepsLike.(type) {
	case []any:
		items = list
	default:
		value := reflect.ValueOf(stepsLike)
		if value.Kind() != reflect.Slice {
			items = []any{stepsLike}

			break
		}

		items = make([]any, value.Len())
		for i := range items {
			items[i] = value.Index(i).Interface()
		}
	}

	steps := make([]model.Step, 0, len(items))

	for i, item := range items {
		step, err := normalizeOne(item)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}

		steps = append(steps, step)
	}

	if len(steps) == 0 {
		return nil, ErrEmptyPipeline
	}

	return steps, nil
}

func normalizeOne(stepLike any) (model.Step, error) {
	switch spec := stepLike.(type) {
	case Spec:
		return normalizeSpec(&spec)
	case *Spec:
		if spec == nil {
			return model.Step{}, errors.Wrap(ErrInvalidStep, "nil spec")
		}

		return normalizeSpec(spec)
	}

	fn, err := toAsync(stepLike)
	if err != nil {
		return model.Step{}, err
	}

	return model.Step{Fn: fn, Enabled: true}, nil
}

func normalizeSpec(spec *Spec) (model.Step, error) {
	fn, err := toAsync(spec.Fn)
	if err != nil {
		return model.Step{}, errors.Wrapf(err, "spec %q", spec.Name)
	}

	step := model.Step{
		Name:    spec.Name,
		Fn:      fn,
		Args:    spec.Args,
		Enabled: !spec.Disabled,
	}

	return step.Clone(), nil
}

// toAsync adapts every accepted function shape to the asynchronous contract.
// Synchronous results are wrapped in an already resolved Future.
//
//nolint:cyclop // one case per accepted shape
func toAsync(fnLike any) (model.AsyncStepFunc, error) {
	switch fn := fnLike.(type) {
	case model.AsyncStepFunc:
		if fn != nil {
			return fn, nil
		}
	case func(context.Context, string, ...any) model.Deferred:
		if fn != nil {
			return fn, nil
		}
	case model.StepFunc:
		if fn != nil {
			return fromSync(fn), nil
		}
	case func(context.Context, string, ...any) (string, error):
		if fn != nil {
			return fromSync(fn), nil
		}
	case func(context.Context, string) (string, error):
		if fn != nil {
			return fromSync(func(ctx context.Context, current string, _ ...any) (string, error) {
				return fn(ctx, current)
			}), nil
		}
	case func(string) (string, error):
		if fn != nil {
			return fromSync(func(_ context.Context, current string, _ ...any) (string, error) {
				return fn(current)
			}), nil
		}
	case func(string) string:
		if fn != nil {
			return fromSync(func(_ context.Context, current string, _ ...any) (string, error) {
				return fn(current), nil
			}), nil
		}
	}

	return nil, errors.Wrapf(ErrInvalidStep, "unsupported step type %T", fnLike)
}

func fromSync(fn model.StepFunc) model.AsyncStepFunc {
	return func(ctx context.Context, current string, args ...any) model.Deferred {
		return Resolved(fn(ctx, current, args...))
	}
}
