// Package model provides the data structures shared by the pipeline package and its observers.
// It defines the step contract, the canonical step record, the per-pipeline options
// and the lifecycle interface observers implement to follow every run.
package model
