package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetInfo(t *testing.T) {
	t.Helper()
	v, bt, gc, gv := Version, BuildTime, GitCommit, GoVersion
	t.Cleanup(func() {
		Version, BuildTime, GitCommit, GoVersion = v, bt, gc, gv
	})
}

func TestSetInfo(t *testing.T) {
	resetInfo(t)

	SetInfo("1.2.3", "2026-08-29", "deadbeef", "go1.26")

	assert.Equal(t, "1.2.3", Version)
	assert.Equal(t, "2026-08-29", BuildTime)
	assert.Equal(t, "deadbeef", GitCommit)
	assert.Equal(t, "go1.26", GoVersion)
}

func TestSetInfoKeepsCurrentOnEmpty(t *testing.T) {
	resetInfo(t)

	SetInfo("1.2.3", "", "", "")

	assert.Equal(t, "1.2.3", Version)
	assert.Equal(t, "unknown", BuildTime)
}

func TestShort(t *testing.T) {
	resetInfo(t)

	SetInfo("1.2.3", "", "", "")

	assert.Equal(t, "crn 1.2.3", Short())
}
