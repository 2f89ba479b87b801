package crontab

import "strings"

// Parse turns raw crontab text into an ordered token sequence. It never
// fails: empty input yields an empty slice, and unrecognized lines come
// back as Unknown tokens. Blank lines are dropped and do not reset any
// state, so a description comment still applies to a job even with
// blank lines between them.
func Parse(text string) []Token {
	p := parser{jobUID: 1}
	for _, line := range strings.Split(text, "\n") {
		p.parseLine(strings.TrimSpace(line))
	}
	return p.tokens
}

// parser carries the per-pass state: the next job UID, the section
// counter, and the currently active section. None of it survives the
// pass; tokens are immutable once emitted.
type parser struct {
	tokens     []Token
	jobUID     int
	sectionUID int
	section    *JobSection
}

func (p *parser) parseLine(line string) {
	switch {
	case line == "":
		// Dropped entirely.
	case isJobLine(line):
		p.parseJob(line)
	case isVariableLine(line):
		p.tokens = append(p.tokens, parseVariable(line))
	case isCommentLine(line):
		p.parseComment(line)
	default:
		p.tokens = append(p.tokens, Unknown{Value: line})
	}
}

// isJobLine detects lines that look like a job: ^([0-9]|\*|@).
func isJobLine(line string) bool {
	return strings.ContainsRune("0123456789*@", rune(line[0]))
}

func (p *parser) parseJob(line string) {
	schedule, command := splitScheduleAndCommand(line)
	if schedule == "" || command == "" {
		// Looked like a job but is not one, e.g. "* * *".
		p.tokens = append(p.tokens, Unknown{Value: line})
		return
	}

	tag, description := p.precedingDescription()

	var section *JobSection
	if p.section != nil {
		s := *p.section
		section = &s
	}

	if tag == TagIgnore {
		// Ignored jobs keep their slot but consume no UID, so the
		// numbering of the jobs after them is unaffected.
		p.tokens = append(p.tokens, IgnoredJob{
			Tag:         tag,
			Schedule:    schedule,
			Command:     command,
			Description: description,
			Section:     section,
		})
		return
	}

	uid := p.jobUID
	p.jobUID++

	p.tokens = append(p.tokens, CronJob{
		UID:         uid,
		Fingerprint: fingerprint(uid, command),
		Tag:         tag,
		Schedule:    schedule,
		Command:     command,
		Description: description,
		Section:     section,
	})
}

// splitScheduleAndCommand splits a job line positionally, not with a
// grammar: a schedule is one whitespace-delimited element if it starts
// with '@' (a shorthand like @daily), five otherwise. Whatever follows
// the schedule is the command, trimmed but otherwise verbatim.
func splitScheduleAndCommand(line string) (schedule, command string) {
	schedule, rest := extractSchedule(line)
	return schedule, strings.TrimSpace(rest)
}

// extractSchedule consumes schedule elements from the front of the line,
// normalizing the whitespace between them to single spaces. Counting
// happens on something-to-whitespace transitions. If the line ends
// before the expected element count is reached, whatever was collected
// is returned and the caller sees an empty command.
func extractSchedule(line string) (schedule, rest string) {
	target := 5
	if line[0] == '@' {
		target = 1
	}

	var b strings.Builder
	b.WriteByte(line[0])

	elements := 0
	previousWasSpace := false
	for i := 1; i < len(line); i++ {
		c := line[i]
		if isASCIISpace(c) {
			if !previousWasSpace {
				elements++
				if elements == target {
					return b.String(), line[i+1:]
				}
				b.WriteByte(' ')
			}
			previousWasSpace = true
		} else {
			b.WriteByte(c)
			previousWasSpace = false
		}
	}
	return b.String(), ""
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}

// precedingDescription pulls the description (and its optional tag) off
// the immediately preceding token. Only a non-empty Description comment
// counts; anything else in between, even an empty `##`, breaks the link.
func (p *parser) precedingDescription() (tag, description string) {
	if len(p.tokens) == 0 {
		return "", ""
	}
	comment, ok := p.tokens[len(p.tokens)-1].(Comment)
	if !ok || comment.Kind != CommentKindDescription || comment.Value == "" {
		return "", ""
	}
	return splitTagAndDescription(comment.Value)
}

// splitTagAndDescription extracts the `%{tag}` prefix from a description
// comment. Text after the closing brace, trimmed, is the description;
// without tag syntax the whole text is the description.
func splitTagAndDescription(text string) (tag, description string) {
	if !strings.HasPrefix(text, "%{") {
		return "", text
	}
	end := strings.Index(text, "}")
	if end < 0 {
		return "", text
	}
	return text[2:end], strings.TrimSpace(text[end+1:])
}

// isVariableLine detects variable lines: must contain '=' and start with
// ^[a-zA-Z_"'].
func isVariableLine(line string) bool {
	if !strings.Contains(line, "=") {
		return false
	}
	c := line[0]
	return c == '_' || c == '"' || c == '\'' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// parseVariable splits on the first '=' only, since values may contain
// further '=' signs (e.g. DBUS_SESSION_BUS_ADDRESS=unix:path=/run/...).
func parseVariable(line string) Variable {
	identifier, value, _ := strings.Cut(line, "=")
	return Variable{
		Identifier: trimQuotes(strings.TrimSpace(identifier)),
		Value:      trimQuotes(strings.TrimSpace(value)),
	}
}

// trimQuotes strips one layer of surrounding quotes, single or double,
// and only when they match. Unbalanced or mixed quotes stay untouched.
func trimQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func isCommentLine(line string) bool {
	return line[0] == '#'
}

func (p *parser) parseComment(line string) {
	comment := classifyComment(line)

	if comment.Kind == CommentKindSection && comment.Value != "" {
		// An empty `###` neither starts a section nor clears the
		// previous one. Every non-empty one is a new section, even
		// with a title seen before.
		p.sectionUID++
		p.section = &JobSection{UID: p.sectionUID, Title: comment.Value}
	}

	p.tokens = append(p.tokens, comment)
}

// classifyComment is purely syntactic: three or more hashes make a
// section, exactly two a description, one a regular comment.
func classifyComment(line string) Comment {
	switch {
	case strings.HasPrefix(line, "###"):
		return Comment{Value: strings.TrimLeft(line[3:], " \t"), Kind: CommentKindSection}
	case strings.HasPrefix(line, "##"):
		return Comment{Value: strings.TrimLeft(line[2:], " \t"), Kind: CommentKindDescription}
	default:
		return Comment{Value: strings.TrimLeft(line[1:], " \t"), Kind: CommentKindRegular}
	}
}
