package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	regerrors "github.com/matzehuels/npmregistry/pkg/errors"
	"github.com/matzehuels/npmregistry/pkg/registry"
)

// Config is the CLI configuration. It is read from a TOML file, then
// overridden by NPMREG_* environment variables and finally by flags.
//
//	registry   = "https://npm.internal.example/"
//	mirror     = "npmmirror"
//	user       = "ci"
//	password   = "secret"
//	timeout    = "15s"
//	rate_limit = 5.0
//	burst      = 2
type Config struct {
	Registry  string        `toml:"registry"`
	Mirror    string        `toml:"mirror"`
	User      string        `toml:"user"`
	Password  string        `toml:"password"`
	Timeout   time.Duration `toml:"timeout"`
	RateLimit float64       `toml:"rate_limit"`
	Burst     int           `toml:"burst"`
}

// configDir returns the config directory using XDG standard (~/.config/npmreg/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the path of config.toml in [configDir].
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfigFile decodes a TOML config file. A missing file yields the zero
// Config unless required is set. Unknown keys are rejected.
func loadConfigFile(path string, required bool) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Config{}, nil
		}
		return Config{}, regerrors.Wrap(regerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, regerrors.New(regerrors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// withMirror points cfg at a mirror. A registry URL from a lower layer would
// otherwise shadow it, so it is dropped.
func (cfg Config) withMirror(mirror string) Config {
	cfg.Mirror = mirror
	cfg.Registry = ""
	return cfg
}

// applyEnv overrides cfg with the NPMREG_* environment variables that are set.
// Within one layer a registry URL beats a mirror name.
func (cfg Config) applyEnv(getenv func(string) string) Config {
	set := func(dst *string, key string) {
		if v := getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	if v := getenv(envPrefix + "MIRROR"); v != "" {
		cfg = cfg.withMirror(v)
	}
	set(&cfg.Registry, "REGISTRY")
	set(&cfg.User, "USER")
	set(&cfg.Password, "PASSWORD")
	return cfg
}

// applyFlags overrides cfg with the flags given on the command line.
func (cfg Config) applyFlags(cmd *cobra.Command, f globalFlags) Config {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("mirror") {
		cfg = cfg.withMirror(f.mirror)
	}
	if changed("registry") {
		cfg.Registry = f.registry
	}
	if changed("user") {
		cfg.User = f.user
	}
	if changed("password") {
		cfg.Password = f.password
	}
	if changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if changed("rate") {
		cfg.RateLimit = f.rate
	}
	return cfg
}

// resolveConfig merges file, environment and flags, in increasing precedence.
func (c *CLI) resolveConfig(cmd *cobra.Command) (Config, error) {
	path, required := c.flags.configPath, true
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			c.Logger.Debug("no config directory", "err", err)
			return Config{}.applyEnv(c.getenv).applyFlags(cmd, c.flags), nil
		}
		path, required = p, false
	}

	cfg, err := loadConfigFile(path, required)
	if err != nil {
		return Config{}, err
	}
	c.Logger.Debug("config", "path", path)
	return cfg.applyEnv(c.getenv).applyFlags(cmd, c.flags), nil
}

// registryConfig converts cfg into the library configuration.
func (cfg Config) registryConfig(logger *log.Logger) registry.Config {
	return registry.Config{
		Registry:  cfg.Registry,
		Mirror:    cfg.Mirror,
		User:      cfg.User,
		Password:  cfg.Password,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
		Logger:    logger,
	}
}

// redacted returns cfg with the password masked.
func (cfg Config) redacted() Config {
	if cfg.Password != "" {
		cfg.Password = "********"
	}
	return cfg
}
