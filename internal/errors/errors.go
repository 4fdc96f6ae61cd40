package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/codelit/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// InitFailureMessage is the text shown when startup wiring fails.
func InitFailureMessage(err error) string {
	return Formatf("codelit failed to start: %v\nPlease restart codelit. If the problem persists, run 'codelit doctor'.", err)
}

// InitFailure reports a startup failure and exits. Nothing runs after a
// failed initialization.
func InitFailure(err error) {
	if err == nil {
		return
	}
	logger.Error("Initialization failed", "error", err)
	fmt.Fprintln(os.Stderr, InitFailureMessage(err))
	os.Exit(1)
}
