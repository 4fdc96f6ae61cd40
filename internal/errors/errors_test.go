package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      errors.New("failed to read storage: permission denied"),
			expected: "Error: failed to read storage: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	result := Formatf("no meditation for %s", "2024-03-05")
	if result != "Error: no meditation for 2024-03-05" {
		t.Errorf("Formatf() = %q", result)
	}
}

func TestInitFailureMessage(t *testing.T) {
	msg := InitFailureMessage(errors.New("storage not initialized"))
	if !strings.Contains(msg, "storage not initialized") {
		t.Errorf("message does not include cause: %q", msg)
	}
	if !strings.HasPrefix(msg, "Error: ") {
		t.Errorf("message should carry the error prefix: %q", msg)
	}
	if !strings.Contains(msg, "restart") {
		t.Errorf("message does not instruct a restart: %q", msg)
	}
}

// TestFatal runs Fatal in a helper process since it exits.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestInitFailure(t *testing.T) {
	if os.Getenv("GO_TEST_INIT_FAILURE") == "1" {
		InitFailure(errors.New("cannot open database"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestInitFailure$")
	cmd.Env = append(os.Environ(), "GO_TEST_INIT_FAILURE=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("InitFailure() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "cannot open database") {
			t.Errorf("InitFailure() stderr = %q", stderr.String())
		}
	} else {
		t.Errorf("InitFailure() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		InitFailure(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
