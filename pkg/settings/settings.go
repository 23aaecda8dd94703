// Package settings manages connection profiles loaded from the YAML config
// file (~/.rdsline by default).
package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hpolloni/rdsline/pkg/connection"
)

// ProfileTypeDataAPI is the only supported connection type.
const ProfileTypeDataAPI = "rds-secretsmanager"

// DefaultProfile is the profile selected when a config file is loaded.
const DefaultProfile = "default"

// DefaultConfigPath returns the default config file location (~/.rdsline).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rdsline"
	}
	return filepath.Join(home, ".rdsline")
}

// Credentials names the AWS shared-config profile used to sign requests.
type Credentials struct {
	Profile string `yaml:"profile"`
}

// Profile is one named connection configuration.
type Profile struct {
	Type        string      `yaml:"type"`
	ClusterARN  string      `yaml:"cluster_arn"`
	SecretARN   string      `yaml:"secret_arn"`
	Database    string      `yaml:"database"`
	Credentials Credentials `yaml:"credentials,omitempty"`
}

// configFile is the on-disk format. Legacy files hold a single profile at
// the top level; current files hold a profiles map.
type configFile struct {
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
	Profile  `yaml:",inline"`
}

// ClientProvider builds a Data API client for an AWS credentials profile and
// region. Injected so tests never touch real AWS config resolution.
type ClientProvider func(ctx context.Context, awsProfile, region string) (connection.DataAPIClient, error)

// DefaultClientProvider resolves AWS shared config and returns a real RDS
// Data API client.
func DefaultClientProvider(ctx context.Context, awsProfile, region string) (connection.DataAPIClient, error) {
	logrus.Debugf("loading aws config for profile %s in region %s", awsProfile, region)
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithSharedConfigProfile(awsProfile),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return rdsdata.NewFromConfig(cfg), nil
}

// Settings holds the loaded profiles and the active connection.
type Settings struct {
	profiles map[string]Profile
	current  string
	conn     connection.Connection
	provider ClientProvider
}

// New creates Settings with no profiles and a no-op connection. A nil
// provider falls back to DefaultClientProvider.
func New(provider ClientProvider) *Settings {
	if provider == nil {
		provider = DefaultClientProvider
	}
	return &Settings{
		profiles: make(map[string]Profile),
		current:  DefaultProfile,
		conn:     connection.Noop{},
		provider: provider,
	}
}

// Connection returns the active connection.
func (s *Settings) Connection() connection.Connection {
	return s.conn
}

// CurrentProfile returns the name of the active profile.
func (s *Settings) CurrentProfile() string {
	return s.current
}

// ProfileNames returns the configured profile names, sorted.
func (s *Settings) ProfileNames() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasProfile reports whether a profile with the given name exists.
func (s *Settings) HasProfile(name string) bool {
	_, ok := s.profiles[name]
	return ok
}

// LoadFromFile reads a config file and switches to the default profile.
// Both the multi-profile format and the legacy single-profile format are
// accepted.
func (s *Settings) LoadFromFile(ctx context.Context, path string) error {
	logrus.Debugf("reading configuration file from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Profiles) > 0 {
		s.profiles = cfg.Profiles
	} else {
		s.profiles = map[string]Profile{DefaultProfile: cfg.Profile}
	}

	return s.SwitchProfile(ctx, DefaultProfile)
}

// SwitchProfile makes the named profile active and opens its connection.
func (s *Settings) SwitchProfile(ctx context.Context, name string) error {
	profile, ok := s.profiles[name]
	if !ok {
		return fmt.Errorf("profile %q not found in config", name)
	}

	conn, err := s.connect(ctx, profile)
	if err != nil {
		return err
	}

	s.current = name
	s.conn = conn
	return nil
}

// AddProfile registers a new profile without making it active.
func (s *Settings) AddProfile(name string, profile Profile) error {
	if _, exists := s.profiles[name]; exists {
		return fmt.Errorf("profile %q already exists", name)
	}
	if err := validateProfile(profile); err != nil {
		return err
	}
	s.profiles[name] = profile
	return nil
}

// SaveToFile writes the current profiles to path in the multi-profile
// format.
func (s *Settings) SaveToFile(path string) error {
	data, err := yaml.Marshal(map[string]map[string]Profile{"profiles": s.profiles})
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (s *Settings) connect(ctx context.Context, profile Profile) (connection.Connection, error) {
	if profile.Type != ProfileTypeDataAPI {
		return nil, fmt.Errorf("unsupported database connection type: %q", profile.Type)
	}

	region, err := regionFromARN(profile.ClusterARN)
	if err != nil {
		return nil, err
	}

	awsProfile := profile.Credentials.Profile
	if awsProfile == "" {
		awsProfile = DefaultProfile
	}

	client, err := s.provider(ctx, awsProfile, region)
	if err != nil {
		return nil, err
	}

	return connection.NewDataAPI(profile.ClusterARN, profile.SecretARN, profile.Database, client), nil
}

func validateProfile(profile Profile) error {
	var missing []string
	if profile.Type == "" {
		missing = append(missing, "type")
	}
	if profile.ClusterARN == "" {
		missing = append(missing, "cluster_arn")
	}
	if profile.SecretARN == "" {
		missing = append(missing, "secret_arn")
	}
	if profile.Database == "" {
		missing = append(missing, "database")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields for profile: %s", strings.Join(missing, ", "))
	}
	if profile.Type != ProfileTypeDataAPI {
		return fmt.Errorf("unsupported database connection type: %q", profile.Type)
	}
	return nil
}

// regionFromARN extracts the region from a cluster ARN
// (arn:aws:rds:<region>:<account>:cluster:<name>).
func regionFromARN(arn string) (string, error) {
	parts := strings.Split(arn, ":")
	if len(parts) < 4 || parts[3] == "" {
		return "", fmt.Errorf("invalid cluster ARN: %q", arn)
	}
	return parts[3], nil
}
