package crontab

import (
	"errors"
	"os/exec"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swapReadCrontab(t *testing.T, fn func() ([]byte, []byte, error)) {
	t.Helper()
	original := readCrontab
	readCrontab = fn
	t.Cleanup(func() { readCrontab = original })
}

// exitError produces a real *exec.ExitError with the given code.
func exitError(t *testing.T, code int) error {
	t.Helper()
	err := exec.Command("sh", "-c", "exit "+strconv.Itoa(code)).Run()
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, code, exitErr.ExitCode())
	return err
}

func TestReadSuccess(t *testing.T) {
	swapReadCrontab(t, func() ([]byte, []byte, error) {
		return []byte("@hourly echo hello\n"), nil, nil
	})

	text, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "@hourly echo hello\n", text)
}

func TestReadNonZeroExit(t *testing.T) {
	swapReadCrontab(t, func() ([]byte, []byte, error) {
		return nil, []byte("crontab: no crontab for nobody\n"), exitError(t, 2)
	})

	_, err := Read()
	require.Error(t, err)

	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, "Cannot read crontab of current user.", readErr.Reason)
	assert.Equal(t, "crontab: no crontab for nobody\n", readErr.Stderr)
	require.NotNil(t, readErr.ExitCode)
	assert.Equal(t, 2, *readErr.ExitCode)
	assert.False(t, readErr.CouldNotRun)
}

func TestReadExecutableMissing(t *testing.T) {
	swapReadCrontab(t, func() ([]byte, []byte, error) {
		return nil, nil, exec.ErrNotFound
	})

	_, err := Read()
	require.Error(t, err)

	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, "Unable to locate the crontab executable on the system.", readErr.Reason)
	assert.True(t, readErr.CouldNotRun)
	assert.Nil(t, readErr.ExitCode)
	assert.Empty(t, readErr.Stderr)
}

func TestReadErrorMessage(t *testing.T) {
	err := &ReadError{Reason: "Cannot read crontab of current user."}
	assert.Equal(t, "Cannot read crontab of current user.", err.Error())
}

func TestMakeInstance(t *testing.T) {
	swapReadCrontab(t, func() ([]byte, []byte, error) {
		return []byte("FOO=bar\n@daily echo hello\n"), nil, nil
	})

	tab, err := MakeInstance()
	require.NoError(t, err)

	jobs := tab.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "echo hello", jobs[0].Command)
	assert.Equal(t, map[string]string{"FOO": "bar"}, tab.extractVariables(jobs[0]))
}

func TestMakeInstancePropagatesReadError(t *testing.T) {
	swapReadCrontab(t, func() ([]byte, []byte, error) {
		return nil, nil, exec.ErrNotFound
	})

	_, err := MakeInstance()
	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
}
