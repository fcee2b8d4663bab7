package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/system"
)

const (
	// EnvConfigPath names a config file when --config is not given.
	EnvConfigPath = "TILT_HEALTHCHECK_CONFIG"

	DefaultTiltCommand  = "tilt"
	DefaultWaitInterval = 5 * time.Second
	DefaultWaitTimeout  = 5 * time.Minute
)

// Duration is a time.Duration that decodes from TOML strings such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the tilt-healthcheck configuration file.
type Config struct {
	// Tilt is the command used to reach tilt, split with shell quoting rules.
	Tilt string `toml:"tilt"`

	// Port is the tilt API port passed as --port. Zero lets tilt decide.
	Port int `toml:"port"`

	// QueryTimeout bounds each tilt query. Zero means no deadline.
	QueryTimeout Duration `toml:"query_timeout"`

	Wait WaitConfig `toml:"wait"`
}

// WaitConfig holds defaults for the wait command.
type WaitConfig struct {
	Interval Duration `toml:"interval"`
	Timeout  Duration `toml:"timeout"`
	AuditDir string   `toml:"audit_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Tilt: DefaultTiltCommand,
		Wait: WaitConfig{
			Interval: Duration{DefaultWaitInterval},
			Timeout:  Duration{DefaultWaitTimeout},
		},
	}
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if _, err := c.Command(); err != nil {
		return err
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535 (got %d)", c.Port)
	}
	if c.QueryTimeout.Duration < 0 {
		return fmt.Errorf("query_timeout must not be negative (got %s)", c.QueryTimeout)
	}
	if c.Wait.Interval.Duration <= 0 {
		return fmt.Errorf("wait.interval must be positive (got %s)", c.Wait.Interval)
	}
	if c.Wait.Timeout.Duration < 0 {
		return fmt.Errorf("wait.timeout must not be negative (got %s)", c.Wait.Timeout)
	}
	return nil
}

// Command returns the tilt command prefix as an argv slice.
func (c *Config) Command() ([]string, error) {
	argv, err := shellquote.Split(c.Tilt)
	if err != nil {
		return nil, fmt.Errorf("invalid tilt command %q: %w", c.Tilt, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("tilt command cannot be empty")
	}
	return argv, nil
}

// Load reads the TOML file at path on top of Default() and validates it.
func Load(fsys system.FileSystem, path string) (*Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve picks the config file from flagPath or $TILT_HEALTHCHECK_CONFIG and
// loads it. With neither set it returns Default().
func Resolve(fsys system.FileSystem, flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(fsys, path)
}
