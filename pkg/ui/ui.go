// Package ui handles terminal input and output for the shell.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var errorColor = color.New(color.FgRed, color.Bold)

// UI reads lines from the user and prints output. Interactive sessions get
// a readline-backed prompt with history; piped input falls back to a plain
// scanner and suppresses prompts.
type UI struct {
	Interactive bool

	out     io.Writer
	errOut  io.Writer
	rl      *readline.Instance
	scanner *bufio.Scanner
}

// New creates a UI for the process's standard streams. Interactive mode is
// chosen from whether stdin is a terminal.
func New() (*UI, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return NewReader(os.Stdin, os.Stdout, os.Stderr), nil
	}

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     historyPath(),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	return &UI{
		Interactive: true,
		out:         os.Stdout,
		errOut:      os.Stderr,
		rl:          rl,
	}, nil
}

// NewReader creates a non-interactive UI over arbitrary streams. Used for
// piped input and by tests.
func NewReader(in io.Reader, out, errOut io.Writer) *UI {
	return &UI{
		out:     out,
		errOut:  errOut,
		scanner: bufio.NewScanner(in),
	}
}

// ReadLine reads the next input line, prompting when interactive. The
// trailing newline is stripped. io.EOF is returned at end of input;
// readline.ErrInterrupt when the user presses Ctrl+C on an empty line.
func (u *UI) ReadLine(prompt string) (string, error) {
	if u.rl != nil {
		u.rl.SetPrompt(prompt)
		return u.rl.Readline()
	}
	if !u.scanner.Scan() {
		if err := u.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return u.scanner.Text(), nil
}

// Print writes a message followed by a newline.
func (u *UI) Print(message string) {
	fmt.Fprintln(u.out, message)
}

// Printf writes a formatted message followed by a newline.
func (u *UI) Printf(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}

// Write writes preformatted text as-is, for table output that manages its
// own newlines.
func (u *UI) Write(text string) {
	fmt.Fprint(u.out, text)
}

// Error writes an error message to the error stream.
func (u *UI) Error(message string) {
	if u.Interactive {
		errorColor.Fprintf(u.errOut, "Error: %s\n", message)
		return
	}
	fmt.Fprintf(u.errOut, "Error: %s\n", message)
}

// Close releases the readline handle, flushing history.
func (u *UI) Close() error {
	if u.rl != nil {
		return u.rl.Close()
	}
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.rdsline_history"
}
