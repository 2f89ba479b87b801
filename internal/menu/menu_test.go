package menu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crnr/cronrunner/internal/crontab"
)

func TestFormatEntriesPlainJobs(t *testing.T) {
	jobs := crontab.New(crontab.Parse(`
@hourly echo one
@daily echo two
`)).Jobs()

	entries := FormatEntries(jobs, PlainStyles())

	assert.Equal(t, []string{
		"1. @hourly echo one",
		"2. @daily echo two",
	}, entries)
}

func TestFormatEntriesDescriptionsComeFirst(t *testing.T) {
	jobs := crontab.New(crontab.Parse(`
## Say hello.
@hourly echo hello
`)).Jobs()

	entries := FormatEntries(jobs, PlainStyles())

	require.Len(t, entries, 1)
	assert.Equal(t, "1. Say hello. @hourly echo hello", entries[0])
}

func TestFormatEntriesRightAlignsUIDs(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "@hourly echo hello")
	}
	jobs := crontab.New(crontab.Parse(strings.Join(lines, "\n"))).Jobs()

	entries := FormatEntries(jobs, PlainStyles())

	require.Len(t, entries, 10)
	assert.Equal(t, " 1. @hourly echo hello", entries[0])
	assert.Equal(t, "10. @hourly echo hello", entries[9])
}

func TestFormatEntriesGroupsBySection(t *testing.T) {
	jobs := crontab.New(crontab.Parse(`
### Housekeeping
@daily docker image prune --force
@weekly apt autoremove

### Backups
@daily /usr/local/bin/backup.sh
`)).Jobs()

	entries := FormatEntries(jobs, PlainStyles())

	assert.Equal(t, []string{
		"\nHousekeeping\n",
		"1. @daily docker image prune --force",
		"2. @weekly apt autoremove",
		"\nBackups\n",
		"3. @daily /usr/local/bin/backup.sh",
		"",
	}, entries)
}

func TestFormatEntriesRepeatedTitleIsANewSection(t *testing.T) {
	jobs := crontab.New(crontab.Parse(`
### Twice
@daily echo one

### Twice
@daily echo two
`)).Jobs()

	entries := FormatEntries(jobs, PlainStyles())

	assert.Equal(t, []string{
		"\nTwice\n",
		"1. @daily echo one",
		"\nTwice\n",
		"2. @daily echo two",
		"",
	}, entries)
}

func TestFormatEntriesNoJobs(t *testing.T) {
	assert.Empty(t, FormatEntries(nil, PlainStyles()))
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *int
		wantErr bool
	}{
		{name: "number", input: "3\n", want: intPtr(3)},
		{name: "number with whitespace", input: "  3  \n", want: intPtr(3)},
		{name: "empty input backs out", input: "\n", want: nil},
		{name: "eof backs out", input: "", want: nil},
		{name: "whitespace only backs out", input: "   \n", want: nil},
		{name: "not a number", input: "three\n", wantErr: true},
		{name: "negative number", input: "-1\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			selection, err := Select(strings.NewReader(tt.input), &out)

			assert.Equal(t, ">>> Select a job to run: ", out.String())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, selection)
		})
	}
}

func TestPlainStylesAddNoEscapeCodes(t *testing.T) {
	st := PlainStyles()
	assert.Equal(t, "hello", st.Highlight.Render("hello"))
	assert.Equal(t, "hello", st.Title.Render("hello"))
}

func TestStylesForNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, NoColorRequested())

	st := StylesFor(false)
	assert.Equal(t, "hello", st.Error.Render("hello"))
}

func intPtr(n int) *int {
	return &n
}
