package constants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvVarNames(t *testing.T) {
	assert.Equal(t, "CRONRUNNER_SAFE", EnvSafe)
	assert.Equal(t, "CRONRUNNER_ENV", EnvEnvFile)
	assert.Equal(t, "NO_COLOR", EnvNoColor)
}

func TestSelectPromptHasNoTrailingNewline(t *testing.T) {
	assert.False(t, strings.HasSuffix(MsgSelectPrompt, "\n"))
	assert.True(t, strings.HasSuffix(MsgSelectPrompt, " "))
}

func TestMessagesAreSentences(t *testing.T) {
	for _, msg := range []string{MsgNoJobs, MsgInvalidSelection, MsgUltimateAnswer} {
		assert.NotEmpty(t, msg)
		assert.False(t, strings.HasSuffix(msg, "\n"))
	}
}
