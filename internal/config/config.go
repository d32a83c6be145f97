// Package config loads the taokeys daemon configuration: a YAML file of
// chord bindings plus settings, overridden by TAOKEYS_* environment
// variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nigeltao/taokeys/keys"
)

// Binding runs a command when a chord fires.
type Binding struct {
	Chord   string   `mapstructure:"chord" yaml:"chord"`
	Trigger string   `mapstructure:"trigger" yaml:"trigger,omitempty"`
	Exec    []string `mapstructure:"exec" yaml:"exec"`
}

// Config is the daemon configuration.
type Config struct {
	LogLevel     string    `mapstructure:"log_level" yaml:"log_level"`
	Display      string    `mapstructure:"display" yaml:"display"`
	Workers      int       `mapstructure:"workers" yaml:"workers"`
	SingleFlight bool      `mapstructure:"single_flight" yaml:"single_flight"`
	Bindings     []Binding `mapstructure:"bindings" yaml:"bindings"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"display":       "display",
	"workers":       "workers",
	"single-flight": "single_flight",
}

// Default returns the configuration written by WriteDefault.
func Default() Config {
	return Config{
		LogLevel:     "info",
		Workers:      8,
		SingleFlight: true,
		Bindings: []Binding{
			{Chord: "Control+Alt+Return", Exec: []string{"xterm"}},
			{Chord: "Control+Alt+l", Exec: []string{"xdg-screensaver", "lock"}},
			{Chord: "XF86AudioLowerVolume", Exec: []string{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "-5%"}},
			{Chord: "XF86AudioRaiseVolume", Exec: []string{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "+5%"}},
			{Chord: "XF86AudioMute", Exec: []string{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "toggle"}},
		},
	}
}

// DefaultPath returns the per-user config file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "taokeys", "taokeys.yaml"), nil
}

// Load reads the configuration. An explicit path must exist; otherwise
// taokeys.yaml is searched for in the user config directory, /etc/taokeys
// and the current directory, and a missing file is not an error. Flags that
// were set on the command line override the file and the environment.
func Load(flags *pflag.FlagSet, path string) (Config, error) {
	var c Config
	v := viper.New()

	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("display", d.Display)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("single_flight", d.SingleFlight)

	v.SetConfigName("taokeys")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if p, err := DefaultPath(); err == nil {
			v.AddConfigPath(filepath.Dir(p))
		}
		v.AddConfigPath("/etc/taokeys")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("taokeys")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	c.File = v.ConfigFileUsed()
	return c, nil
}

// Validate checks every binding and returns all problems found.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	for i, b := range c.Bindings {
		if _, _, _, err := b.Parse(); err != nil {
			errs = append(errs, fmt.Errorf("binding %d: %w", i, err))
		}
		if len(b.Exec) == 0 {
			errs = append(errs, fmt.Errorf("binding %d (%s): empty exec", i, b.Chord))
		}
	}
	return errors.Join(errs...)
}

// Parse returns the binding's chord and trigger. An empty trigger means
// "press".
func (b Binding) Parse() (keys.Keysym, []keys.Modifier, keys.Trigger, error) {
	keysym, mods, err := keys.ParseChord(b.Chord)
	if err != nil {
		return 0, nil, 0, err
	}
	switch strings.ToLower(b.Trigger) {
	case "", "press", "pressed":
		return keysym, mods, keys.Pressed, nil
	case "release", "released":
		return keysym, mods, keys.Released, nil
	}
	return 0, nil, 0, fmt.Errorf("chord %q: bad trigger %q, want press or release", b.Chord, b.Trigger)
}

// Build returns a keys.Binding for b that runs action.
func (b Binding) Build(action keys.Action) (*keys.Binding, error) {
	keysym, mods, trigger, err := b.Parse()
	if err != nil {
		return nil, err
	}
	return keys.NewBinding(keysym, mods, trigger, action), nil
}

// WriteDefault writes Default() to path, creating its directory. It refuses
// to replace an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0644)
}
