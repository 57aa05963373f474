package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Bot         BotConfig         `toml:"bot"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Dictionary  DictionaryConfig  `toml:"dictionary"`
	Log         LogConfig         `toml:"log"`
}

// BotConfig contains the bot identity and fallback trigger words.
type BotConfig struct {
	Name         string   `toml:"name"`
	TriggerWords []string `toml:"trigger_words"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Connector ConnectorConfig `toml:"connector"`
	Search    SearchConfig    `toml:"search"`
}

// ConnectorConfig contains the chat channel app credentials used to post replies.
type ConnectorConfig struct {
	AppID       string `toml:"app_id"`
	AppPassword string `toml:"app_password"`
	TokenURL    string `toml:"token_url"`
	Scope       string `toml:"scope"`
}

// SearchConfig contains image search API credentials.
type SearchConfig struct {
	APIKey    string  `toml:"api_key"`
	EngineID  string  `toml:"engine_id"`
	BaseURL   string  `toml:"base_url"`
	RateLimit float64 `toml:"rate_limit"`
}

// DictionaryConfig points the define command at a dictionary site.
type DictionaryConfig struct {
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	WebhookSecret   string `toml:"webhook_secret"`
	DeliveryTimeout string `toml:"delivery_timeout"`
}

// LogConfig sets the logger verbosity.
type LogConfig struct {
	Level string `toml:"level"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Timeout parses DeliveryTimeout, falling back to 30 seconds.
func (s ServerConfig) Timeout() time.Duration {
	if d, err := time.ParseDuration(s.DeliveryTimeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads variables from the given .env files (default ".env") without overriding the existing environment.
//
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values from environment variables, using the variable names of the hosted deployment.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	strs := map[string]*string{
		"DATABASE_PATH":  &c.Database.Path,
		"API_KEY":        &c.Credentials.Search.APIKey,
		"SE_ID":          &c.Credentials.Search.EngineID,
		"appId":          &c.Credentials.Connector.AppID,
		"appPassword":    &c.Credentials.Connector.AppPassword,
		"BOT_NAME":       &c.Bot.Name,
		"WEBHOOK_SECRET": &c.Server.WebhookSecret,
		"LOG_LEVEL":      &c.Log.Level,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	for _, key := range []string{"port", "PORT"} {
		v := getenv(key)
		if v == "" {
			continue
		}
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return fmt.Errorf("%w: %s=%q is not a port", ErrInvalidConfig, key, v)
		}
		c.Server.Port = port
		break
	}

	if v := getenv("TRIGGER_WORDS"); v != "" {
		var words []string
		for _, w := range strings.Split(v, ",") {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, strings.ToLower(w))
			}
		}
		c.Bot.TriggerWords = words
	}

	return nil
}

// Validate reports configuration that would keep the server from starting.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if (c.Credentials.Connector.AppID == "") != (c.Credentials.Connector.AppPassword == "") {
		return fmt.Errorf("%w: connector app_id and app_password must be set together", ErrMissingCredentials)
	}
	return nil
}
