package rules

import (
	"context"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

// TemplateData is what templates are executed with.
type TemplateData struct {
	Text string
	Args []any
}

// Template executes the template given as first argument with the current value as .Text
// and the remaining arguments as .Args. Sprig functions are available.
func Template(_ context.Context, current string, args ...any) (string, error) {
	text, err := stringArg("template", args, 0)
	if err != nil {
		return "", err
	}

	tpl, err := template.New("step").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidArgument, "template: %v", err)
	}

	var out strings.Builder

	err = tpl.Execute(&out, TemplateData{Text: current, Args: args[1:]})
	if err != nil {
		return "", errors.Wrap(err, "template: unable to execute")
	}

	return out.String(), nil
}
