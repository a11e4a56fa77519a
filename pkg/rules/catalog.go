package rules

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

// Catalog maps rule names to step functions, for pipelines described by name.
type Catalog map[string]any

// DefaultCatalog returns every rule of the package.
func DefaultCatalog() Catalog {
	return Catalog{
		"trim":              model.StepFunc(Trim),
		"upper":             model.StepFunc(Upper),
		"prefix":            model.StepFunc(Prefix),
		"suffix":            model.StepFunc(Suffix),
		"newlines":          model.StepFunc(NormalizeNewlines),
		"blank-lines":       model.StepFunc(CompressBlankLines),
		"replace":           model.StepFunc(Replace),
		"fold-width":        model.StepFunc(FoldWidth),
		"full-width":        model.StepFunc(FullWidth),
		"half-width":        model.StepFunc(HalfWidth),
		"paragraph-numbers": model.StepFunc(ParagraphNumbers),
		"template":          model.StepFunc(Template),
		"delay":             model.AsyncStepFunc(Delay),
	}
}

// Step returns the step function of rule.
func (c Catalog) Step(rule string) (any, error) {
	fn, ok := c[rule]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRule, "%q", rule)
	}

	return fn, nil
}

// Names returns the rule names in alphabetical order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
