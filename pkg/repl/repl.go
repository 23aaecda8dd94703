package repl

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"github.com/hpolloni/rdsline/pkg/render"
	"github.com/hpolloni/rdsline/pkg/results"
	"github.com/hpolloni/rdsline/pkg/settings"
	"github.com/hpolloni/rdsline/pkg/ui"
)

// errQuit stops the loop from inside a command handler.
var errQuit = errors.New("quit")

// REPL owns the per-process shell state: the accumulator buffer, the loaded
// settings, the resolved render mode and the command table. All of it is
// confined to the single goroutine running Run.
type REPL struct {
	ui         *ui.UI
	settings   *settings.Settings
	mode       render.Mode
	acc        Accumulator
	configPath string
	debug      bool

	commands map[string]func(ctx context.Context, args []string) error
}

// New creates a REPL. configPath is where .addprofile persists new profiles;
// an empty value falls back to the default config location.
func New(u *ui.UI, s *settings.Settings, mode render.Mode, configPath string, debug bool) *REPL {
	if configPath == "" {
		configPath = settings.DefaultConfigPath()
	}
	r := &REPL{
		ui:         u,
		settings:   s,
		mode:       mode,
		configPath: configPath,
		debug:      debug,
	}
	r.commands = map[string]func(ctx context.Context, args []string) error{
		".quit":       r.cmdQuit,
		".help":       r.cmdHelp,
		".debug":      r.cmdDebug,
		".config":     r.cmdConfig,
		".show":       r.cmdShow,
		".profile":    r.cmdProfile,
		".profiles":   r.cmdProfiles,
		".addprofile": r.cmdAddProfile,
	}
	return r
}

// Run processes input until end of input, .quit or an interrupt. A statement
// left unterminated at end of input is silently discarded.
func (r *REPL) Run(ctx context.Context) error {
	for {
		line, err := r.ui.ReadLine(r.prompt())
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, readline.ErrInterrupt):
			r.ui.Print("")
			return nil
		case err != nil:
			return err
		}

		stmt, done := r.acc.Feed(line)
		if !done {
			continue
		}

		if stmt.Kind == KindDotCommand {
			if err := r.dispatch(ctx, stmt.Text); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				r.ui.Error(err.Error())
			}
			continue
		}

		if stmt.Text == "" {
			continue
		}
		r.execute(ctx, stmt.Text)
	}
}

func (r *REPL) prompt() string {
	if r.acc.Pending() {
		return "| "
	}
	return r.settings.CurrentProfile() + "> "
}

func (r *REPL) dispatch(ctx context.Context, text string) error {
	args := strings.Fields(text)
	cmd, ok := r.commands[args[0]]
	if !ok {
		return errors.New("unknown command: " + args[0])
	}
	return cmd(ctx, args)
}

func (r *REPL) execute(ctx context.Context, sql string) {
	result, err := r.settings.Connection().Execute(ctx, sql)
	if err != nil {
		r.ui.Error(err.Error())
		return
	}

	if query, ok := result.(*results.QueryResult); ok {
		r.ui.Write(render.Render(query, r.mode))
	} else {
		r.ui.Print(result.Summary())
	}
	if r.mode == render.ModeInteractive {
		r.ui.Print("")
	}
}

func (r *REPL) cmdQuit(_ context.Context, _ []string) error {
	return errQuit
}

func (r *REPL) cmdHelp(_ context.Context, _ []string) error {
	r.ui.Print(strings.Join([]string{
		".quit - quits the REPL",
		".help - shows this message",
		".debug - toggle debugging information",
		".config <path> - load a different config file",
		".show - show current connection settings",
		".profile [name] - show current connection or switch to a different profile",
		".profiles - list available profiles",
		".addprofile - add a new profile interactively",
	}, "\n"))
	return nil
}

func (r *REPL) cmdDebug(_ context.Context, _ []string) error {
	r.debug = !r.debug
	if r.debug {
		logrus.SetLevel(logrus.DebugLevel)
		r.ui.Print("Debugging is ON")
	} else {
		logrus.SetLevel(logrus.WarnLevel)
		r.ui.Print("Debugging is OFF")
	}
	return nil
}

func (r *REPL) cmdConfig(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("expecting config file path")
	}
	if err := r.settings.LoadFromFile(ctx, args[1]); err != nil {
		return err
	}
	r.configPath = args[1]
	return nil
}

func (r *REPL) cmdShow(_ context.Context, _ []string) error {
	r.ui.Print(r.settings.Connection().Describe())
	return nil
}

func (r *REPL) cmdProfile(ctx context.Context, args []string) error {
	switch len(args) {
	case 1:
		r.ui.Print(r.settings.Connection().Describe())
		return nil
	case 2:
		if err := r.settings.SwitchProfile(ctx, args[1]); err != nil {
			return err
		}
		r.ui.Printf("Switched to profile: %s", args[1])
		return nil
	default:
		return errors.New("expecting profile name")
	}
}

func (r *REPL) cmdProfiles(_ context.Context, _ []string) error {
	names := r.settings.ProfileNames()
	if len(names) == 0 {
		r.ui.Print("No profiles configured")
		return nil
	}
	r.ui.Print("Available profiles:")
	for _, name := range names {
		marker := " "
		if name == r.settings.CurrentProfile() {
			marker = "*"
		}
		r.ui.Printf(" %s %s", marker, name)
	}
	return nil
}
