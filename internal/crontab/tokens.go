// Package crontab parses a user's crontab into tokens and runs the jobs
// found in it. Parsing is hand-written and line oriented: it recognizes
// cronrunner's comment conventions (descriptions, sections, tags) on top
// of regular cron syntax, and never rejects input: lines it does not
// understand become Unknown tokens.
package crontab

import "fmt"

// TagIgnore is the reserved tag that hides a job from listings without
// removing it from the token sequence.
const TagIgnore = "ignore"

// CommentKind classifies a comment by the number of leading hashes.
type CommentKind int

const (
	// CommentKindRegular is a plain `#` comment.
	CommentKindRegular CommentKind = iota
	// CommentKindDescription is a `##` comment. When it immediately
	// precedes a job, it becomes the job's description.
	CommentKindDescription
	// CommentKindSection is a `###` comment. It titles every job
	// beneath it, until a new section starts.
	CommentKindSection
)

// Token is one parsed line of a crontab. The concrete types are CronJob,
// IgnoredJob, Variable, Comment and Unknown. Tokens are kept in parse
// order; the order encodes which variables and comments apply to which
// job, so it must never be re-sorted.
type Token interface {
	token()
}

// JobSection is the `###` section a job belongs to. UID counts section
// comment occurrences, not distinct titles: two identical titles are two
// different sections.
type JobSection struct {
	UID   int
	Title string
}

// CronJob is a runnable crontab entry.
type CronJob struct {
	// UID is the 1-based position of the job among non-ignored jobs.
	UID int
	// Fingerprint is Djb2("uid(<uid>),command(<command>)"). It survives
	// schedule and comment edits, but not reordering or command edits.
	Fingerprint uint64
	// Tag is the optional `%{...}` identifier from the description
	// comment. Empty if the job is untagged.
	Tag         string
	Schedule    string
	Command     string
	Description string
	Section     *JobSection
}

func (CronJob) token() {}

// Equal reports whether two jobs are the same entry, field for field.
// Jobs with identical schedule and command but different UIDs are NOT
// equal; this is what lets duplicate-looking jobs scope their variables
// independently.
func (j CronJob) Equal(other CronJob) bool {
	if j.UID != other.UID ||
		j.Fingerprint != other.Fingerprint ||
		j.Tag != other.Tag ||
		j.Schedule != other.Schedule ||
		j.Command != other.Command ||
		j.Description != other.Description {
		return false
	}
	return sectionsEqual(j.Section, other.Section)
}

// String renders the job the way menus display it: the description if
// there is one, the raw schedule and command otherwise.
func (j CronJob) String() string {
	if j.Description != "" {
		return j.Description
	}
	return fmt.Sprintf("%s %s", j.Schedule, j.Command)
}

func sectionsEqual(a, b *JobSection) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// IgnoredJob is a job tagged `%{ignore}`. It consumes no UID and has no
// fingerprint, but keeps its slot in the token sequence so that variable
// scoping still sees the lines around it.
type IgnoredJob struct {
	Tag         string
	Schedule    string
	Command     string
	Description string
	Section     *JobSection
}

func (IgnoredJob) token() {}

// Variable is a `KEY=value` line. Identifier and value are trimmed and
// stripped of one symmetric layer of quotes.
type Variable struct {
	Identifier string
	Value      string
}

func (Variable) token() {}

// Comment is a `#` line with the marker and leading whitespace removed.
// An empty Value is a present-but-empty comment, which is distinct from
// no comment at all.
type Comment struct {
	Value string
	Kind  CommentKind
}

func (Comment) token() {}

// Unknown is a line that matched no pattern, or a job line whose
// schedule or command came out empty.
type Unknown struct {
	Value string
}

func (Unknown) token() {}
