package rules

import (
	"github.com/pkg/errors"
)

var (
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownRule     = errors.New("unknown rule")
)

func stringArg(rule string, args []any, idx int) (string, error) {
	if idx >= len(args) {
		return "", errors.Wrapf(ErrMissingArgument, "%s: argument %d", rule, idx)
	}

	s, ok := args[idx].(string)
	if !ok {
		return "", errors.Wrapf(ErrInvalidArgument, "%s: argument %d must be a string, got %T", rule, idx, args[idx])
	}

	return s, nil
}
