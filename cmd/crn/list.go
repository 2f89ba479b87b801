package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crnr/cronrunner/internal/crontab"
	"github.com/crnr/cronrunner/internal/menu"
)

type sectionEntry struct {
	UID   int    `json:"uid" yaml:"uid"`
	Title string `json:"title" yaml:"title"`
}

type jobEntry struct {
	UID         int           `json:"uid" yaml:"uid"`
	Fingerprint string        `json:"fingerprint" yaml:"fingerprint"`
	Tag         string        `json:"tag,omitempty" yaml:"tag,omitempty"`
	Schedule    string        `json:"schedule" yaml:"schedule"`
	Command     string        `json:"command" yaml:"command"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Section     *sectionEntry `json:"section,omitempty" yaml:"section,omitempty"`
}

func runList(cmd *cobra.Command, tab *crontab.Crontab, st menu.Styles) error {
	jobs := tab.Jobs()
	out := cmd.OutOrStdout()

	format := opts.output
	if opts.asJSON {
		format = "json"
	}

	switch format {
	case "":
		for _, line := range listLines(jobs, st, time.Now()) {
			fmt.Fprintln(out, line)
		}
		return nil
	case "json":
		data, err := json.MarshalIndent(listEntries(jobs), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(listEntries(jobs))
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
		return nil
	default:
		printError(cmd, st, fmt.Sprintf("Unknown output format '%s' (expected: json, yaml).", format))
		return &exitError{code: 2}
	}
}

// listLines is the menu rendering plus a next-run annotation on every
// job whose schedule the standard 5-field parser understands. Schedules
// it does not understand are listed without annotation, never rejected.
func listLines(jobs []crontab.CronJob, st menu.Styles, now time.Time) []string {
	entries := menu.FormatEntries(jobs, st)

	jobIndex := 0
	for i, entry := range entries {
		if entry == "" || entry[0] == '\n' {
			continue
		}
		if jobIndex >= len(jobs) {
			break
		}
		if next := nextRun(jobs[jobIndex].Schedule, now); next != nil {
			entries[i] = entry + " " + st.Attenuate.Render("(next: "+next.Format("2006-01-02 15:04")+")")
		}
		jobIndex++
	}

	return entries
}

// nextRun computes the next execution time, or nil if the schedule is
// not standard cron syntax.
func nextRun(schedule string, now time.Time) *time.Time {
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return nil
	}
	next := sched.Next(now)
	if next.IsZero() {
		return nil
	}
	return &next
}

func listEntries(jobs []crontab.CronJob) []jobEntry {
	entries := make([]jobEntry, 0, len(jobs))
	for _, job := range jobs {
		entry := jobEntry{
			UID:         job.UID,
			Fingerprint: strconv.FormatUint(job.Fingerprint, 16),
			Tag:         job.Tag,
			Schedule:    job.Schedule,
			Command:     job.Command,
			Description: job.Description,
		}
		if job.Section != nil {
			entry.Section = &sectionEntry{UID: job.Section.UID, Title: job.Section.Title}
		}
		entries = append(entries, entry)
	}
	return entries
}
