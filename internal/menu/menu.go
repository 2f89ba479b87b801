// Package menu renders the interactive job selection menu and reads the
// user's answer.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crnr/cronrunner/internal/constants"
	"github.com/crnr/cronrunner/internal/crontab"
)

// ErrInvalidSelection is returned by Select when the input is not a job
// number.
var ErrInvalidSelection = errors.New(constants.MsgInvalidSelection)

// FormatEntries renders jobs as menu lines: numbers right-aligned, jobs
// grouped under their section titles, described jobs showing the
// description first with schedule and command attenuated behind it.
func FormatEntries(jobs []crontab.CronJob, st Styles) []string {
	var entries []string

	var lastSection *crontab.JobSection
	width := maxUIDWidth(jobs)

	for _, job := range jobs {
		if job.Section != nil && !sameSection(job.Section, lastSection) {
			lastSection = job.Section
			entries = append(entries, "\n"+st.Title.Render(job.Section.Title)+"\n")
		}

		number := st.Highlight.Render(fmt.Sprintf("%*d.", width, job.UID))

		description := ""
		if job.Description != "" {
			description = job.Description + " "
		}

		schedule := st.Attenuate.Render(job.Schedule)

		command := job.Command
		if description != "" {
			command = st.Attenuate.Render(job.Command)
		}

		entries = append(entries, fmt.Sprintf("%s %s%s %s", number, description, schedule, command))
	}

	// Spacing around section titles looks unbalanced without spacing
	// after the last job line.
	if lastSection != nil {
		entries = append(entries, "")
	}

	return entries
}

// Render joins the menu entries for printing.
func Render(jobs []crontab.CronJob, st Styles) string {
	return strings.Join(FormatEntries(jobs, st), "\n")
}

// Select prompts on out and reads one line from in. Empty input means
// the user backed out: the selection is nil and so is the error.
func Select(in io.Reader, out io.Writer) (*int, error) {
	fmt.Fprint(out, constants.MsgSelectPrompt)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return nil, nil
	}

	answer := strings.TrimSpace(scanner.Text())
	if answer == "" {
		return nil, nil
	}

	selection, err := strconv.Atoi(answer)
	if err != nil || selection < 0 {
		return nil, ErrInvalidSelection
	}
	return &selection, nil
}

func maxUIDWidth(jobs []crontab.CronJob) int {
	maxUID := 0
	for _, job := range jobs {
		if job.UID > maxUID {
			maxUID = job.UID
		}
	}
	return len(strconv.Itoa(maxUID))
}

func sameSection(a, b *crontab.JobSection) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
