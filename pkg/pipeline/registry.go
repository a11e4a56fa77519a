package pipeline

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/pkg/errors"

	"github.com/askiada/go-textpipeline/internal/store"
	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

// AdhocName is the pipeline name reported for runs of unregistered step lists.
const AdhocName = "<adhoc>"

// Hooks are called around every run of a registry. Any of them can be nil.
type Hooks struct {
	// BeforeApply runs before the first step with the input of the run.
	BeforeApply func(ctx context.Context, pipeline, input string) error
	// AfterApply runs after the last step with the output of the run.
	AfterApply func(ctx context.Context, pipeline, output string) error
	// OnError is told about every step or hook failure, whatever the error policy.
	// index is the step index for model.StageStep and -1 for model.StageHook.
	// Its own failures are logged and ignored.
	OnError func(ctx context.Context, pipeline string, err error, stage model.Stage, index int) error
}

// Plugin installs pipelines or steps on a registry.
type Plugin func(r *Registry) error

type entry struct {
	steps []model.Step
	opts  model.Options
}

// Registry owns a set of named pipelines and runs them.
// Registries are independent from each other, there is no package-level registry.
type Registry struct {
	store      *store.MemoryStore[string, *entry]
	logger     *slog.Logger
	hooks      Hooks
	observers  []model.Observer
	defaults   model.Options
	batchLimit int
}

// New creates a registry.
func New(opts ...Option) (*Registry, error) {
	reg := &Registry{
		store:      store.NewMemoryStore[string, *entry](),
		logger:     slog.Default(),
		defaults:   model.DefaultOptions(),
		batchLimit: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(reg)
	}

	for _, observer := range reg.observers {
		err := observer.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to initialise observer")
		}
	}

	return reg, nil
}

// Register normalizes stepsLike and stores it under name with the registry defaults
// overridden by opts. An existing pipeline with the same name is replaced, options included.
func (r *Registry) Register(name string, stepsLike any, opts ...RegisterOption) error {
	if name == "" {
		return ErrInvalidName
	}

	steps, err := Normalize(stepsLike)
	if err != nil {
		return errors.Wrapf(err, "unable to register pipeline %q", name)
	}

	resolved := r.defaults
	for _, opt := range opts {
		opt(&resolved)
	}

	r.store.Set(name, &entry{steps: steps, opts: resolved})
	r.logger.Debug("pipeline registered", "pipeline", name, "steps", len(steps))

	return nil
}

// Unregister removes the pipeline. Removing an unknown pipeline is not an error.
func (r *Registry) Unregister(name string) {
	if r.store.Delete(name) {
		r.logger.Debug("pipeline unregistered", "pipeline", name)
	}
}

// Get returns a copy of the steps of the pipeline.
// Changing the copy does not change the registered pipeline.
func (r *Registry) Get(name string) ([]model.Step, bool) {
	steps, _, err := r.snapshot(name)
	if err != nil {
		return nil, false
	}

	return steps, true
}

// Options returns the resolved options of the pipeline.
func (r *Registry) Options(name string) (model.Options, bool) {
	e, ok := r.store.Get(name)
	if !ok {
		return model.Options{}, false
	}

	return e.opts, true
}

// Names returns the registered pipeline names in the order they were first registered.
func (r *Registry) Names() []string {
	return r.store.Keys()
}

// Insert adds one step at index. index is clamped to the bounds of the pipeline.
// An unknown pipeline is reported before an invalid step.
func (r *Registry) Insert(name string, index int, stepLike any) error {
	if _, ok := r.store.Get(name); !ok {
		return errors.Wrapf(ErrPipelineNotFound, "%q", name)
	}

	steps, err := Normalize(stepLike)
	if err != nil {
		return errors.Wrapf(err, "unable to insert into pipeline %q", name)
	}

	if len(steps) != 1 {
		return errors.Wrapf(ErrInvalidStep, "insert into pipeline %q expects one step, got %d", name, len(steps))
	}

	return r.update(name, func(e *entry) error {
		index = max(0, min(index, len(e.steps)))
		e.steps = append(e.steps[:index], append([]model.Step{steps[0]}, e.steps[index:]...)...)

		return nil
	})
}

// RemoveAt removes the step at index.
func (r *Registry) RemoveAt(name string, index int) error {
	return r.update(name, func(e *entry) error {
		if index < 0 || index >= len(e.steps) {
			return errors.Wrapf(ErrIndexOutOfRange, "pipeline %q has %d steps, got index %d", name, len(e.steps), index)
		}

		e.steps = append(e.steps[:index], e.steps[index+1:]...)

		return nil
	})
}

// Enable enables or disables the step at index. A disabled step is skipped when the pipeline runs.
func (r *Registry) Enable(name string, index int, enabled bool) error {
	return r.update(name, func(e *entry) error {
		if index < 0 || index >= len(e.steps) {
			return errors.Wrapf(ErrIndexOutOfRange, "pipeline %q has %d steps, got index %d", name, len(e.steps), index)
		}

		e.steps[index].Enabled = enabled

		return nil
	})
}

// Use calls plugin with the registry. The plugin error is returned as is.
func (r *Registry) Use(plugin Plugin) error {
	if plugin == nil {
		return ErrPluginMustBeSet
	}

	return plugin(r)
}

// update changes the entry of name in place.
// Entries are replaced by copies so runs holding a snapshot never see the change.
func (r *Registry) update(name string, fn func(e *entry) error) error {
	err := r.store.Update(name, func(e *entry) (*entry, error) {
		updated := &entry{
			steps: make([]model.Step, len(e.steps)),
			opts:  e.opts,
		}
		copy(updated.steps, e.steps)

		err := fn(updated)
		if err != nil {
			return nil, err
		}

		return updated, nil
	})
	if errors.Is(err, store.ErrKeyNotFound) {
		return errors.Wrapf(ErrPipelineNotFound, "%q", name)
	}

	return err
}

// snapshot returns a copy of the steps and the options of name.
func (r *Registry) snapshot(name string) ([]model.Step, model.Options, error) {
	var (
		steps []model.Step
		opts  model.Options
	)

	err := r.store.View(name, func(e *entry) {
		steps = make([]model.Step, len(e.steps))
		for i, step := range e.steps {
			steps[i] = step.Clone()
		}

		opts = e.opts
	})
	if err != nil {
		return nil, model.Options{}, errors.Wrapf(ErrPipelineNotFound, "%q", name)
	}

	return steps, opts, nil
}
