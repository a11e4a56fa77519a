package pipeline

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

var (
	ErrInvalidName       = errors.New("pipeline name must be a non-empty string")
	ErrInvalidStep       = errors.New("step must be a function or a spec with a function")
	ErrEmptyPipeline     = errors.New("pipeline must have at least one step")
	ErrPipelineNotFound  = errors.New("pipeline not found")
	ErrIndexOutOfRange   = errors.New("step index out of range")
	ErrRegistryMustBeSet = errors.New("registry must be set")
	ErrPluginMustBeSet   = errors.New("plugin must be set")
)

// StepExecutionError wraps what a step or a hook returned while a pipeline was running.
// The original error is kept as is and can be inspected with errors.Is and errors.As.
type StepExecutionError struct {
	Err      error
	Pipeline string
	Stage    model.Stage
	// Hook is set for StageHook failures.
	Hook string
	// StepName and Index are set for StageStep failures, Index is -1 otherwise.
	StepName string
	Index    int
}

func newStepError(pipeline string, index int, step model.Step, err error) *StepExecutionError {
	return &StepExecutionError{
		Err:      err,
		Pipeline: pipeline,
		Stage:    model.StageStep,
		StepName: step.Name,
		Index:    index,
	}
}

func newHookError(pipeline, hook string, err error) *StepExecutionError {
	return &StepExecutionError{
		Err:      err,
		Pipeline: pipeline,
		Stage:    model.StageHook,
		Hook:     hook,
		Index:    -1,
	}
}

func (e *StepExecutionError) Error() string {
	if e.Stage == model.StageHook {
		return fmt.Sprintf("pipeline %q: hook %s: %v", e.Pipeline, e.Hook, e.Err)
	}

	if e.StepName != "" {
		return fmt.Sprintf("pipeline %q: step %d (%s): %v", e.Pipeline, e.Index, e.StepName, e.Err)
	}

	return fmt.Sprintf("pipeline %q: step %d: %v", e.Pipeline, e.Index, e.Err)
}

func (e *StepExecutionError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause reach the original error.
func (e *StepExecutionError) Cause() error {
	return e.Err
}

// panicError turns a recovered panic into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "panic")
	}

	return errors.Errorf("panic: %v", r)
}
