// Package config loads the settings shared by the site server and the CV commands.
// Values come from the environment (optionally seeded from a .env file), may be
// overlaid by a JSON file, and are finally overridden by command-line flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds every runtime setting. Zero values mean "use the default".
type Config struct {
	// Site
	Port        int    `json:"port,omitempty"`
	DataDir     string `json:"data_dir,omitempty"`
	StaticDir   string `json:"static_dir,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // postgres://... or sqlite://path
	RedisURL    string `json:"redis_url,omitempty"`
	IPHashSalt  string `json:"ip_hash_salt,omitempty"`

	// CV generation
	OutDir        string `json:"out_dir,omitempty"` // generated PDFs
	TexDir        string `json:"tex_dir,omitempty"` // generated .tex sources and compiler logs
	LaTeXCompiler string `json:"latex_compiler,omitempty"`
	ChromePath    string `json:"chrome_path,omitempty"`
	Avatar        string `json:"avatar,omitempty"`

	// Rate limits
	ContactPerHour int `json:"contact_per_hour,omitempty"`
	LoginPerMinute int `json:"login_per_minute,omitempty"`

	SFTP SFTPConfig `json:"sftp"`
}

// SFTPConfig is where `publish` uploads the generated PDFs.
type SFTPConfig struct {
	Host           string `json:"host,omitempty"`
	Port           int    `json:"port,omitempty"`
	User           string `json:"user,omitempty"`
	Password       string `json:"password,omitempty"`
	KeyPath        string `json:"key_path,omitempty"`
	KnownHostsPath string `json:"known_hosts_path,omitempty"`
	RemoteDir      string `json:"remote_dir,omitempty"`
}

// Defaults are applied by MergeWithDefaults for anything left unset.
var Defaults = Config{
	Port:           8080,
	DataDir:        "data",
	StaticDir:      "public",
	DatabaseURL:    "sqlite://portfolio.db",
	OutDir:         filepath.Join("public", "cv"),
	TexDir:         "cv-output",
	LaTeXCompiler:  "tectonic",
	ContactPerHour: 5,
	LoginPerMinute: 5,
	SFTP: SFTPConfig{
		Port:      22,
		RemoteDir: "cv",
	},
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DataDir:       os.Getenv("DATA_DIR"),
		StaticDir:     os.Getenv("STATIC_DIR"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		IPHashSalt:    os.Getenv("IP_HASH_SALT"),
		OutDir:        os.Getenv("CV_OUT_DIR"),
		TexDir:        os.Getenv("CV_TEX_DIR"),
		LaTeXCompiler: os.Getenv("LATEX_COMPILER"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		Avatar:        os.Getenv("CV_AVATAR"),
		SFTP: SFTPConfig{
			Host:           os.Getenv("SFTP_HOST"),
			User:           os.Getenv("SFTP_USER"),
			Password:       os.Getenv("SFTP_PASSWORD"),
			KeyPath:        os.Getenv("SFTP_KEY_PATH"),
			KnownHostsPath: os.Getenv("SFTP_KNOWN_HOSTS"),
			RemoteDir:      os.Getenv("SFTP_REMOTE_DIR"),
		},
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"PORT", &cfg.Port},
		{"RATE_LIMIT_CONTACT_PER_HOUR", &cfg.ContactPerHour},
		{"RATE_LIMIT_LOGIN_PER_MINUTE", &cfg.LoginPerMinute},
		{"SFTP_PORT", &cfg.SFTP.Port},
	}
	for _, v := range ints {
		raw := strings.TrimSpace(os.Getenv(v.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", v.name, err)
		}
		*v.dst = n
	}

	return cfg, nil
}

// Load reads the environment, overlays the JSON file at path when given, and
// fills the remaining gaps from Defaults.
func Load(path string) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	merged := *env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		merged = file.MergeWithDefaults(*env)
	}

	result := merged.MergeWithDefaults(Defaults)
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.ContactPerHour < 0 {
		return fmt.Errorf("config error: 'contact_per_hour' must be non-negative")
	}
	if c.LoginPerMinute < 0 {
		return fmt.Errorf("config error: 'login_per_minute' must be non-negative")
	}
	switch c.LaTeXCompiler {
	case "", "tectonic", "pdflatex", "xelatex", "lualatex":
	default:
		return fmt.Errorf("config error: unsupported latex compiler %q", c.LaTeXCompiler)
	}
	if c.Avatar != "" {
		if _, err := os.Stat(c.Avatar); os.IsNotExist(err) {
			return fmt.Errorf("config error: avatar file not found: %s", c.Avatar)
		}
	}
	if c.SFTP.Password != "" && c.SFTP.KeyPath != "" {
		return fmt.Errorf("config error: 'sftp.password' and 'sftp.key_path' are mutually exclusive")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	strs := []struct {
		dst *string
		def string
	}{
		{&result.DataDir, defaults.DataDir},
		{&result.StaticDir, defaults.StaticDir},
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.RedisURL, defaults.RedisURL},
		{&result.IPHashSalt, defaults.IPHashSalt},
		{&result.OutDir, defaults.OutDir},
		{&result.TexDir, defaults.TexDir},
		{&result.LaTeXCompiler, defaults.LaTeXCompiler},
		{&result.ChromePath, defaults.ChromePath},
		{&result.Avatar, defaults.Avatar},
		{&result.SFTP.Host, defaults.SFTP.Host},
		{&result.SFTP.User, defaults.SFTP.User},
		{&result.SFTP.Password, defaults.SFTP.Password},
		{&result.SFTP.KeyPath, defaults.SFTP.KeyPath},
		{&result.SFTP.KnownHostsPath, defaults.SFTP.KnownHostsPath},
		{&result.SFTP.RemoteDir, defaults.SFTP.RemoteDir},
	}
	for _, s := range strs {
		if *s.dst == "" {
			*s.dst = s.def
		}
	}

	ints := []struct {
		dst *int
		def int
	}{
		{&result.Port, defaults.Port},
		{&result.ContactPerHour, defaults.ContactPerHour},
		{&result.LoginPerMinute, defaults.LoginPerMinute},
		{&result.SFTP.Port, defaults.SFTP.Port},
	}
	for _, n := range ints {
		if *n.dst == 0 {
			*n.dst = n.def
		}
	}

	return result
}

// Addr is the listen address for the site server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
