// Package repl provides the interactive shell: line accumulation, dot-command
// dispatch and the read-feed-dispatch-render loop.
package repl

import "strings"

// StatementKind classifies a completed statement.
type StatementKind int

// Statement kinds.
const (
	KindSQL        StatementKind = iota // opaque SQL text, sent to the connection
	KindDotCommand                      // shell-local directive starting with '.'
)

// Statement is one completed, dispatch-ready piece of input. The trailing
// terminator has been stripped from Text.
type Statement struct {
	Text string
	Kind StatementKind
}

// Accumulator assembles raw input lines into statements. A statement is
// complete when the accumulated text ends with a semicolon outside any quoted
// literal, or when an empty line follows at least one buffered line. A line
// whose first non-blank character is '.' completes immediately as a
// dot-command, but only as the first line of a new statement; once SQL text
// is buffered, dot-lines are ordinary continuation text.
//
// The zero value is ready to use.
type Accumulator struct {
	lines []string
}

// Feed appends one line (trailing newline already stripped) and reports
// whether a statement completed. On completion the buffer is reset and the
// returned Statement is valid; otherwise the line is carried into the next
// call.
func (a *Accumulator) Feed(line string) (Statement, bool) {
	if len(a.lines) == 0 {
		if line == "" {
			// Blank input with nothing buffered: ignore.
			return Statement{}, false
		}
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, ".") {
			return Statement{Text: trimmed, Kind: KindDotCommand}, true
		}
	}

	if line == "" {
		// Blank line terminates the buffered statement as-is.
		return a.emit(strings.Join(a.lines, "\n")), true
	}

	a.lines = append(a.lines, line)

	text := strings.TrimSpace(strings.Join(a.lines, "\n"))
	if terminated(text) {
		text = strings.TrimRight(strings.TrimSuffix(text, ";"), " \t")
		return a.emit(text), true
	}
	return Statement{}, false
}

// Pending reports whether a partial statement is buffered, so the caller can
// switch to a continuation prompt.
func (a *Accumulator) Pending() bool {
	return len(a.lines) > 0
}

// Reset discards any partially accumulated statement.
func (a *Accumulator) Reset() {
	a.lines = nil
}

func (a *Accumulator) emit(text string) Statement {
	a.lines = nil
	return Statement{Text: strings.TrimSpace(text), Kind: KindSQL}
}

// scanState tracks quoting while scanning for the terminator.
type scanState int

const (
	stateNormal scanState = iota
	stateSingleQuote
	stateDoubleQuote
)

// terminated reports whether text ends with a semicolon that sits outside
// any single- or double-quoted literal. Unbalanced quotes leave the trailing
// semicolon (if any) inside the literal, so the statement stays open; that
// is deliberate, the user may close the quote on a later line.
func terminated(text string) bool {
	if !strings.HasSuffix(text, ";") {
		return false
	}
	state := stateNormal
	for _, r := range text {
		switch state {
		case stateNormal:
			switch r {
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			if r == '\'' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if r == '"' {
				state = stateNormal
			}
		}
	}
	return state == stateNormal
}
