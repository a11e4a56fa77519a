package pipeline

import (
	"log/slog"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

// Option configures a Registry.
type Option func(r *Registry)

// WithHooks sets the lifecycle hooks called around every run.
func WithHooks(hooks Hooks) Option {
	return func(r *Registry) {
		r.hooks = hooks
	}
}

// WithDefaults sets the options every pipeline starts from.
func WithDefaults(opts model.Options) Option {
	return func(r *Registry) {
		r.defaults = opts
	}
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver adds an observer notified of every run.
func WithObserver(observer model.Observer) Option {
	return func(r *Registry) {
		if observer != nil {
			r.observers = append(r.observers, observer)
		}
	}
}

// WithBatchLimit sets how many inputs ApplyBatch processes at once.
func WithBatchLimit(limit int) Option {
	return func(r *Registry) {
		if limit > 0 {
			r.batchLimit = limit
		}
	}
}

// RegisterOption overrides a registry default for one pipeline.
type RegisterOption func(o *model.Options)

// StopOnError sets whether a failing step aborts the pipeline.
func StopOnError(stop bool) RegisterOption {
	return func(o *model.Options) {
		o.StopOnError = stop
	}
}

// Parallel sets the reserved parallel flag. It does not change how steps run.
func Parallel(parallel bool) RegisterOption {
	return func(o *model.Options) {
		o.Parallel = parallel
	}
}
