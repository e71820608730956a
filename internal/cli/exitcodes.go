package cli

import (
	"errors"

	"github.com/yaklabco/cppdoc/internal/configloader"
	"github.com/yaklabco/cppdoc/pkg/runner"
)

// Exit codes for cppdoc.
const (
	// ExitSuccess indicates every page was built.
	ExitSuccess = 0

	// ExitBuildFailed indicates the build completed but some pages failed.
	ExitBuildFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ErrBuildFailed is returned when one or more pages failed to build.
var ErrBuildFailed = errors.New("build failed")

// ExitCodeFromResult determines the exit code of a finished build.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitBuildFailed
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError
	var usageErr *UsageError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrBuildFailed):
		return ExitBuildFailed
	case errors.As(err, &validationErr), errors.Is(err, configloader.ErrInvalidConfig):
		return ExitConfigError
	case errors.As(err, &usageErr):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// UsageError reports a bad flag value or argument.
type UsageError struct {
	Msg string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Msg
}
