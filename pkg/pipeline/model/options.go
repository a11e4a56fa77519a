package model

import "time"

// Stage tells where an execution failure happened.
type Stage string

const (
	StageStep Stage = "step"
	StageHook Stage = "hook"
)

// Hook names reported alongside StageHook failures.
const (
	HookBeforeApply = "beforeApply"
	HookAfterApply  = "afterApply"
)

// Options are the resolved execution options of a pipeline.
type Options struct {
	// StopOnError aborts the run on the first failing step or hook.
	// When false the failing step is skipped and the run continues with the previous value.
	StopOnError bool
	// Parallel is reserved. It has no effect: steps always run one after the other.
	Parallel bool
}

// DefaultOptions returns the registry-wide defaults used when none are configured.
func DefaultOptions() Options {
	return Options{StopOnError: true}
}

// Observer follows every pipeline run of a registry.
type Observer interface {
	// New initialises the observer when the registry is created.
	New() error
	// BeforeRun runs before the first step of a run.
	BeforeRun(pipeline string, steps []*StepInfo) error
	// OnStepOutput runs every time a step produced its output.
	OnStepOutput(step *StepInfo, elapsed time.Duration) error
	// AfterRun runs once the run is over, err is the run result.
	AfterRun(pipeline string, total time.Duration, err error) error
}
