// Package main provides the entry point for the rdsline REPL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/hpolloni/rdsline/pkg/render"
	"github.com/hpolloni/rdsline/pkg/repl"
	"github.com/hpolloni/rdsline/pkg/settings"
	"github.com/hpolloni/rdsline/pkg/ui"
)

const version = "0.2"

func main() {
	configPath := flag.String("config", "", "config file to read settings from")
	profile := flag.String("profile", "", "initial profile to use")
	debug := flag.Bool("debug", false, "turn debugging information on")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "The RDS REPL v%s\n\nUsage of %s:\n", version, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if err := run(context.Background(), *configPath, *profile, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, profile string, debug bool) error {
	cfg := settings.New(nil)

	switch {
	case configPath != "":
		if err := cfg.LoadFromFile(ctx, configPath); err != nil {
			return err
		}
	default:
		if path := settings.DefaultConfigPath(); fileExists(path) {
			if err := cfg.LoadFromFile(ctx, path); err != nil {
				return err
			}
		} else {
			logrus.Debug("no config file, starting with a no-op connection")
		}
	}

	if profile != "" {
		if err := cfg.SwitchProfile(ctx, profile); err != nil {
			return err
		}
	}

	u, err := ui.New()
	if err != nil {
		return err
	}
	defer func() {
		if err := u.Close(); err != nil {
			logrus.Debugf("closing ui: %v", err)
		}
	}()

	mode := render.DetectMode(os.Stdout)
	return repl.New(u, cfg, mode, configPath, debug).Run(ctx)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
