package shared

import (
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"composer-reconcile/internal/types"
)

// ParseError reports malformed JSON or a version string the comparator
// cannot interpret.
func ParseError(msg string, cause error) error {
	err := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
	if cause != nil {
		return err.WithCause(cause)
	}
	return err
}

// ValidationError reports a request the reconciler refuses to apply.
func ValidationError(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg)
}

// ReadError reports an input file that could not be read.
func ReadError(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg).
		WithCause(cause)
}

// WriteError reports a backup or manifest write that failed.
func WriteError(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(cause)
}

// KindOf classifies err into the reconciler's error taxonomy.
func KindOf(err error) types.ErrorKind {
	if err == nil {
		return types.ErrorKindNone
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return types.ErrorKindParse
	case errbuilder.CodeFailedPrecondition:
		return types.ErrorKindValidation
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return types.ErrorKindIO
	default:
		return types.ErrorKindNone
	}
}

// Message returns the builder message of err without its cause chain.
func Message(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
