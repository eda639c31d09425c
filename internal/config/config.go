package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config represents the console configuration
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Views   ViewsConfig   `mapstructure:"views"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BackendConfig points at the ticketing REST backend. A zero Timeout
// means no client-side timeout.
type BackendConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	UserAgent  string        `mapstructure:"user_agent"`
	Debug      bool          `mapstructure:"debug"`
	HealthPath string        `mapstructure:"health_path"`
}

type ViewsConfig struct {
	IdleTTL           time.Duration `mapstructure:"idle_ttl"`
	MaxMounted        int           `mapstructure:"max_mounted"`
	SweepSchedule     string        `mapstructure:"sweep_schedule"`
	DefaultReporterID int64         `mapstructure:"default_reporter_id"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Ticket System")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("backend.base_url", "http://localhost:8080/api/v1")
	v.SetDefault("backend.timeout", time.Duration(0))
	v.SetDefault("backend.retry_count", 0)
	v.SetDefault("backend.user_agent", "helpdesk-console/1.0")
	v.SetDefault("backend.debug", false)
	v.SetDefault("backend.health_path", "/tickets/dashboard")

	v.SetDefault("views.idle_ttl", 30*time.Minute)
	v.SetDefault("views.max_mounted", 1000)
	v.SetDefault("views.sweep_schedule", "@every 1m")
	v.SetDefault("views.default_reporter_id", 1)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// newViper prepares a viper instance for configPath, which is either a
// YAML file or a directory searched for config.yaml. Empty means the
// working directory.
func newViper(configPath string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	switch ext := strings.ToLower(filepath.Ext(configPath)); {
	case ext == ".yaml" || ext == ".yml":
		v.SetConfigFile(configPath)
	default:
		if configPath == "" {
			configPath = "."
		}
		v.SetConfigName("config")
		v.AddConfigPath(configPath)
	}

	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration. A missing directory config file is not an
// error: the built-in defaults and environment apply.
func Load(configPath string) (*Config, error) {
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return decode(v)
}

// Watch reloads the configuration whenever the file at configPath changes
// and calls onChange with the new value. Invalid edits are reported through
// onError and the previous configuration stays in effect.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		next, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
	return nil
}

// Validate checks the values the console cannot run without.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("backend.base_url %q is not an absolute URL", c.Backend.BaseURL))
	}
	if c.Backend.RetryCount < 0 {
		problems = append(problems, "backend.retry_count must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if c.Views.MaxMounted <= 0 {
		problems = append(problems, "views.max_mounted must be positive")
	}
	if c.Views.IdleTTL <= 0 {
		problems = append(problems, "views.idle_ttl must be positive")
	}
	if _, err := cron.ParseStandard(c.Views.SweepSchedule); err != nil {
		problems = append(problems, fmt.Sprintf("views.sweep_schedule: %v", err))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

