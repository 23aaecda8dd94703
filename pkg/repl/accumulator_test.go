package repl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAccumulator_SingleLineStatements(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantText string
	}{
		{name: "simple select", line: "select 1;", wantText: "select 1"},
		{name: "leading whitespace", line: "  select 1;", wantText: "select 1"},
		{name: "trailing whitespace after terminator", line: "select 1;  ", wantText: "select 1"},
		{name: "semicolon inside closed single quotes", line: "select ';';", wantText: "select ';'"},
		{name: "semicolon inside closed double quotes", line: `select ";";`, wantText: `select ";"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc Accumulator
			stmt, done := acc.Feed(tt.line)
			if !done {
				t.Fatal("expected completion on first feed")
			}
			if stmt.Kind != KindSQL {
				t.Errorf("expected KindSQL, got %v", stmt.Kind)
			}
			if diff := cmp.Diff(tt.wantText, stmt.Text); diff != "" {
				t.Errorf("statement text mismatch (-want +got):\n%s", diff)
			}
			if acc.Pending() {
				t.Error("expected empty buffer after completion")
			}
		})
	}
}

func TestAccumulator_MultiLine(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantDone []bool
		wantText string
	}{
		{
			name:     "terminator on second line",
			lines:    []string{"select *", "from users;"},
			wantDone: []bool{false, true},
			wantText: "select *\nfrom users",
		},
		{
			name:     "open quote carries terminator into next line",
			lines:    []string{"select 'a;", "b';"},
			wantDone: []bool{false, true},
			wantText: "select 'a;\nb'",
		},
		{
			name:     "empty line completes buffered statement without terminator",
			lines:    []string{"select 1", ""},
			wantDone: []bool{false, true},
			wantText: "select 1",
		},
		{
			name:     "dot on continuation line is literal text",
			lines:    []string{"select *", ".quit", "from t;"},
			wantDone: []bool{false, false, true},
			wantText: "select *\n.quit\nfrom t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc Accumulator
			var stmt Statement
			for i, line := range tt.lines {
				var done bool
				stmt, done = acc.Feed(line)
				if done != tt.wantDone[i] {
					t.Fatalf("feed %d (%q): done = %v, want %v", i, line, done, tt.wantDone[i])
				}
			}
			if diff := cmp.Diff(tt.wantText, stmt.Text); diff != "" {
				t.Errorf("statement text mismatch (-want +got):\n%s", diff)
			}
			if stmt.Kind != KindSQL {
				t.Errorf("expected KindSQL, got %v", stmt.Kind)
			}
		})
	}
}

func TestAccumulator_EmptyLineOnEmptyBuffer(t *testing.T) {
	var acc Accumulator

	_, done := acc.Feed("")
	if done {
		t.Error("empty line on empty buffer must not complete")
	}
	if acc.Pending() {
		t.Error("empty line on empty buffer must not buffer anything")
	}
}

func TestAccumulator_DotCommands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantText string
	}{
		{name: "bare command", line: ".quit", wantText: ".quit"},
		{name: "command with argument", line: ".config /tmp/config.yaml", wantText: ".config /tmp/config.yaml"},
		{name: "leading whitespace", line: "   .help", wantText: ".help"},
		{name: "unbalanced quote does not matter", line: `.profile it's`, wantText: ".profile it's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc Accumulator
			stmt, done := acc.Feed(tt.line)
			if !done {
				t.Fatal("dot-command must complete immediately")
			}
			if stmt.Kind != KindDotCommand {
				t.Errorf("expected KindDotCommand, got %v", stmt.Kind)
			}
			if diff := cmp.Diff(tt.wantText, stmt.Text); diff != "" {
				t.Errorf("statement text mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAccumulator_ReplayAfterCompletion(t *testing.T) {
	lines := []string{"select *", "from users;"}

	var acc Accumulator
	run := func() Statement {
		var stmt Statement
		for _, line := range lines {
			stmt, _ = acc.Feed(line)
		}
		return stmt
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replay produced a different statement (-first +second):\n%s", diff)
	}
}

func TestAccumulator_Reset(t *testing.T) {
	var acc Accumulator
	acc.Feed("select *")
	if !acc.Pending() {
		t.Fatal("expected pending buffer")
	}
	acc.Reset()
	if acc.Pending() {
		t.Error("expected empty buffer after reset")
	}
}

func TestTerminated(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "plain terminator", text: "select 1;", want: true},
		{name: "no terminator", text: "select 1", want: false},
		{name: "terminator inside open single quote", text: "select 'a;", want: false},
		{name: "terminator inside open double quote", text: `select "a;`, want: false},
		{name: "closed quotes then terminator", text: "select 'a';", want: true},
		{name: "adjacent quotes", text: "select '';", want: true},
		{name: "only terminator", text: ";", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := terminated(tt.text); got != tt.want {
				t.Errorf("terminated(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
