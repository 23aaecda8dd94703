package repl

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/hpolloni/rdsline/pkg/settings"
)

// errCancelled aborts the wizard without surfacing an error to the user.
var errCancelled = errors.New("cancelled")

// cmdAddProfile interactively collects a new profile, confirms it with the
// user and persists the whole config file.
func (r *REPL) cmdAddProfile(_ context.Context, _ []string) error {
	name, profile, err := r.collectProfile()
	if errors.Is(err, errCancelled) {
		r.ui.Print("Profile creation cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	if !r.confirmProfile(name, profile) {
		r.ui.Print("Profile creation cancelled")
		return nil
	}

	if err := r.settings.AddProfile(name, profile); err != nil {
		return err
	}
	if err := r.settings.SaveToFile(r.configPath); err != nil {
		return err
	}
	r.ui.Printf("\nProfile %q added successfully", name)
	return nil
}

func (r *REPL) collectProfile() (string, settings.Profile, error) {
	var profile settings.Profile

	r.ui.Print("\nAdding a new profile. Press Ctrl+C at any time to cancel.\n")

	name, err := r.ask("Profile name: ")
	if err != nil {
		return "", profile, err
	}
	if name == "" {
		return "", profile, errors.New("profile name cannot be empty")
	}
	if r.settings.HasProfile(name) {
		return "", profile, errors.New("profile " + name + " already exists")
	}

	r.ui.Print("\nConnection type (currently only rds-secretsmanager is supported)")
	profile.Type, err = r.ask("Connection type [rds-secretsmanager]: ")
	if err != nil {
		return "", profile, err
	}
	if profile.Type == "" {
		profile.Type = settings.ProfileTypeDataAPI
	}

	r.ui.Print("\nCluster ARN")
	r.ui.Print("Format: arn:aws:rds:<region>:<account>:cluster:<cluster-name>")
	if profile.ClusterARN, err = r.ask("Cluster ARN: "); err != nil {
		return "", profile, err
	}

	r.ui.Print("\nSecret ARN")
	r.ui.Print("Format: arn:aws:secretsmanager:<region>:<account>:secret:<secret-name>")
	if profile.SecretARN, err = r.ask("Secret ARN: "); err != nil {
		return "", profile, err
	}

	r.ui.Print("\nDatabase name")
	if profile.Database, err = r.ask("Database: "); err != nil {
		return "", profile, err
	}

	r.ui.Print("\nAWS credentials profile (optional)")
	awsProfile, err := r.ask("AWS Profile [default]: ")
	if err != nil {
		return "", profile, err
	}
	if awsProfile == "" {
		awsProfile = settings.DefaultProfile
	}
	profile.Credentials = settings.Credentials{Profile: awsProfile}

	return name, profile, nil
}

func (r *REPL) confirmProfile(name string, profile settings.Profile) bool {
	r.ui.Print("\nProfile Summary:")
	r.ui.Printf("  Name: %s", name)
	r.ui.Printf("  Type: %s", profile.Type)
	r.ui.Printf("  Cluster ARN: %s", profile.ClusterARN)
	r.ui.Printf("  Secret ARN: %s", profile.SecretARN)
	r.ui.Printf("  Database: %s", profile.Database)
	r.ui.Printf("  AWS Profile: %s", profile.Credentials.Profile)

	answer, err := r.ask("\nSave this profile? [y/N]: ")
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "y")
}

// ask reads one trimmed answer; EOF and Ctrl+C cancel the wizard.
func (r *REPL) ask(prompt string) (string, error) {
	line, err := r.ui.ReadLine(prompt)
	if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
		return "", errCancelled
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
