// Package config provides configuration management for the leapdb CLI.
//
// Configuration is merged from four layers, lowest to highest precedence:
// built-in defaults, a leapdb.yaml file, LEAPDB_-prefixed environment
// variables, and command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Profile      string            `koanf:"profile"`
	ProfilesDB   string            `koanf:"profiles_db"`
	OutputFormat string            `koanf:"output"`
	Verbose      bool              `koanf:"verbose"`
	LogLevel     string            `koanf:"log_level"`
	LogFormat    string            `koanf:"log_format"`
	Connection   *ConnectionConfig `koanf:"connection"`
	AI           AIConfig          `koanf:"ai"`
}

// ConnectionConfig is an ad-hoc connection configured without a saved
// profile. A configured profile name takes precedence over it.
type ConnectionConfig struct {
	Type     string `koanf:"type"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
}

// AIConfig holds the chat-completions endpoint settings for query
// generation.
type AIConfig struct {
	APIKey string `koanf:"api_key"`
	APIURL string `koanf:"api_url"`
	Model  string `koanf:"model"`
}

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultOutput    = "auto" // Auto-detect: TTY=table, non-TTY=markdown
)
