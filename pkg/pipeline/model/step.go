package model

import (
	"context"
	"strconv"
)

// Deferred is a string result available now or later.
type Deferred interface {
	// Await blocks until the value is available or ctx is done.
	Await(ctx context.Context) (string, error)
}

// StepFunc is the synchronous step contract.
type StepFunc func(ctx context.Context, current string, args ...any) (string, error)

// AsyncStepFunc is the asynchronous step contract. A nil Deferred resolves to the empty string.
type AsyncStepFunc func(ctx context.Context, current string, args ...any) Deferred

// Step is the canonical step record every accepted step shape is normalized into.
type Step struct {
	Name    string
	Fn      AsyncStepFunc
	Args    []any
	Enabled bool
}

// Clone returns a copy of s that shares nothing mutable with it.
func (s Step) Clone() Step {
	if s.Args != nil {
		args := make([]any, len(s.Args))
		copy(args, s.Args)
		s.Args = args
	}

	return s
}

// Info describes the step at index of pipeline for observers.
func (s Step) Info(pipeline string, index int) *StepInfo {
	return &StepInfo{
		Pipeline: pipeline,
		Name:     s.Name,
		Index:    index,
		Enabled:  s.Enabled,
	}
}

// StepInfo is the read-only view of a step handed to observers.
type StepInfo struct {
	Pipeline string
	Name     string
	Index    int
	Enabled  bool
}

// Label identifies the step within its pipeline: its position, followed by its name when it has one.
func (si *StepInfo) Label() string {
	label := "#" + strconv.Itoa(si.Index)
	if si.Name != "" {
		label += " " + si.Name
	}

	return label
}
