// Package config provides configuration management for tickle
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig initializes the application configuration.
	InitConfig() (*Settings, error)
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	cfg        *Settings
	configFile string
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{}
}

// Backends understood by the Backend setting.
const (
	BackendSystemctl = "systemctl"
	BackendDBus      = "dbus"
)

// Default configuration values for tickle.
const (
	DefaultHistoryDir      = "$HOME/.tickle"
	DefaultHistoryFile     = "history.log"
	DefaultBackend         = BackendSystemctl
	DefaultUserMode        = false
	DefaultVerbose         = false
	DefaultValidateCompose = true
)

// DefaultComposeCommands lists the compose CLIs tried in order.
var DefaultComposeCommands = []string{"docker compose", "docker-compose"}

// Settings represents the configuration for tickle.
type Settings struct {
	HistoryDir      string   `yaml:"historyDir" mapstructure:"historyDir"`
	Backend         string   `yaml:"backend" mapstructure:"backend"`
	UserMode        bool     `yaml:"userMode" mapstructure:"userMode"`
	Verbose         bool     `yaml:"verbose" mapstructure:"verbose"`
	ComposeCommands []string `yaml:"composeCommands" mapstructure:"composeCommands"`
	ValidateCompose bool     `yaml:"validateCompose" mapstructure:"validateCompose"`
}

// HistoryPath returns the full path of the history log.
func (s *Settings) HistoryPath() string {
	return filepath.Join(os.ExpandEnv(s.HistoryDir), DefaultHistoryFile)
}

// Validate checks settings that cannot be defaulted.
func (s *Settings) Validate() error {
	switch s.Backend {
	case BackendSystemctl, BackendDBus:
	default:
		return fmt.Errorf("invalid backend %q: must be %q or %q", s.Backend, BackendSystemctl, BackendDBus)
	}
	if strings.TrimSpace(s.HistoryDir) == "" {
		return errors.New("historyDir must not be empty")
	}
	for _, c := range s.ComposeCommands {
		if len(strings.Fields(c)) == 0 {
			return errors.New("composeCommands must not contain empty entries")
		}
	}
	return nil
}

// Defaults returns settings populated with default values.
func Defaults() *Settings {
	return &Settings{
		HistoryDir:      DefaultHistoryDir,
		Backend:         DefaultBackend,
		UserMode:        DefaultUserMode,
		Verbose:         DefaultVerbose,
		ComposeCommands: append([]string(nil), DefaultComposeCommands...),
		ValidateCompose: DefaultValidateCompose,
	}
}

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	p.configFile = path
}

func (p *defaultConfigProvider) InitConfig() (*Settings, error) {
	cfg, err := initConfigInternal(p.configFile)
	if err != nil {
		return nil, err
	}
	p.cfg = cfg
	return p.cfg, nil
}

// Internal function to initialize configuration. An explicit configFile
// replaces the search paths and must exist.
func initConfigInternal(configFile string) (*Settings, error) {
	cfg := Defaults()

	viper.SetDefault("historyDir", DefaultHistoryDir)
	viper.SetDefault("backend", DefaultBackend)
	viper.SetDefault("userMode", DefaultUserMode)
	viper.SetDefault("verbose", DefaultVerbose)
	viper.SetDefault("composeCommands", DefaultComposeCommands)
	viper.SetDefault("validateCompose", DefaultValidateCompose)

	viper.SetEnvPrefix("TICKLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(os.ExpandEnv("$HOME/.config/tickle"))
	viper.AddConfigPath("/etc/tickle")
	viper.AddConfigPath(".")

	// SetConfigName clears any explicit file, so this has to come after it.
	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		explicit := configFile != ""
		if explicit || (!errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
