// Package rules provides text steps for the pipeline registry: whitespace and line-ending
// clean-up, full-width and half-width conversion, paragraph-number formatting, regular
// expression replacement and templating.
//
// Every rule follows the model.StepFunc contract, or model.AsyncStepFunc for Delay, so it
// can be registered as is. Rules taking parameters read them from the step arguments.
package rules
