// Package pipeline provides a registry of named text pipelines.
//
// A pipeline is an ordered list of steps, each step being a function turning the current
// string into a new one. Steps are registered under a name, can be inserted, removed or
// disabled afterwards, and run in order by Apply: the output of a step is the input of the
// next one. A list of steps can also be run without registering it with ApplyList.
//
// Synchronous and asynchronous steps are handled the same way. A synchronous step returns its
// string right away, an asynchronous one returns a model.Deferred the registry waits for
// before calling the next step. Normalize turns every accepted step shape into a model.Step
// so the executor only deals with one kind of step.
//
// Errors are handled per pipeline. With StopOnError, the default, the first failing step stops
// the pipeline and Apply returns a *StepExecutionError wrapping what the step returned. Without
// it, the failing step is skipped and the next one receives the value from before the failure.
// Either way the OnError hook is told about the failure first.
//
// Steps never run in parallel within a pipeline. The Parallel option is reserved and has no
// effect. ApplyBatch runs the same pipeline over several inputs at once.
package pipeline
