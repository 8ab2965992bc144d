package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"ping-relay/internal/providers/upstream"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Relay  RelayConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host            string
	Port            int
	GinMode         string // debug, release, test
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// RelayConfig holds outbound request configuration
type RelayConfig struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	FollowRedirects    bool
	MaxBodyBytes       int64
}

// Load reads configuration from defaults, an optional config file, the
// environment and finally the command line arguments in args.
func Load(args []string) (*Config, error) {
	v := viper.New()

	flags := pflag.NewFlagSet("ping-relay", pflag.ContinueOnError)
	flags.StringP("host", "H", "localhost", "TCP/IP hostname to serve on")
	flags.IntP("port", "P", 8080, "TCP/IP port to serve on")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("config", "", "path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// Set defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.shutdowntimeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("relay.timeout", upstream.DefaultTimeout)
	v.SetDefault("relay.insecureskipverify", true)
	v.SetDefault("relay.followredirects", true)
	v.SetDefault("relay.maxbodybytes", upstream.DefaultMaxBodyBytes)

	// Read from environment variables
	v.SetEnvPrefix("PING_RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	configFile, _ := flags.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.ping-relay")
	}
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Flags win over everything else, but only when given explicitly
	if err := v.BindPFlag("server.host", flags.Lookup("host")); err != nil {
		return nil, fmt.Errorf("failed to bind host flag: %w", err)
	}
	if err := v.BindPFlag("server.port", flags.Lookup("port")); err != nil {
		return nil, fmt.Errorf("failed to bind port flag: %w", err)
	}
	if debug, _ := flags.GetBool("debug"); debug {
		v.Set("log.level", "debug")
		v.Set("server.ginmode", "debug")
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode %q", c.Server.GinMode)
	}
	if c.Relay.Timeout <= 0 {
		return fmt.Errorf("relay timeout must be positive, got %s", c.Relay.Timeout)
	}
	if c.Relay.MaxBodyBytes <= 0 {
		return fmt.Errorf("relay max body bytes must be positive, got %d", c.Relay.MaxBodyBytes)
	}
	return nil
}

// GetServerAddr returns the server address in the format "host:port"
func (c *Config) GetServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// UpstreamOptions converts the relay section into outbound client options
func (c *Config) UpstreamOptions() upstream.Options {
	return upstream.Options{
		Timeout:            c.Relay.Timeout,
		InsecureSkipVerify: c.Relay.InsecureSkipVerify,
		FollowRedirects:    c.Relay.FollowRedirects,
		MaxBodyBytes:       c.Relay.MaxBodyBytes,
	}
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c *Config) newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: c.logLevel(),
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func (c *Config) logLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
