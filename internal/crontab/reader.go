package crontab

import (
	"bytes"
	"errors"
	"os/exec"
)

// ReadError reports a failure to obtain the crontab text itself. It
// carries the upstream exit code and stderr so the CLI can surface the
// system's own message and re-exit with the same code.
type ReadError struct {
	// Reason is a plain English explanation of the failure.
	Reason string
	// ExitCode is the crontab command's exit code, nil if the process
	// was killed early or never ran.
	ExitCode *int
	// Stderr is the captured standard error, empty if there was none.
	Stderr string
	// CouldNotRun is true when the crontab executable could not be
	// spawned at all.
	CouldNotRun bool
}

func (e *ReadError) Error() string {
	return e.Reason
}

// readCrontab invokes `crontab -l` and returns stdout and stderr
// separately. Swappable in tests.
var readCrontab = func() (stdout, stderr []byte, err error) {
	var outBuf, errBuf bytes.Buffer
	cmd := exec.Command("crontab", "-l")
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Read returns the current user's crontab as text, the output of
// `crontab -l`. A non-zero exit or a missing executable comes back as a
// *ReadError.
func Read() (string, error) {
	stdout, stderr, err := readCrontab()
	if err == nil {
		return string(stdout), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		readErr := &ReadError{
			Reason: "Cannot read crontab of current user.",
			Stderr: string(stderr),
		}
		if code := exitErr.ExitCode(); code >= 0 {
			readErr.ExitCode = &code
		}
		return "", readErr
	}

	return "", &ReadError{
		Reason:      "Unable to locate the crontab executable on the system.",
		CouldNotRun: true,
	}
}

// MakeInstance reads the current user's crontab, parses it, and wraps
// the result in a Crontab, ready for queries and runs.
func MakeInstance() (*Crontab, error) {
	text, err := Read()
	if err != nil {
		return nil, err
	}
	return New(Parse(text)), nil
}
