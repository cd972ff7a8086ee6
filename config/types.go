package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	API     APIConfig     `mapstructure:"api"`
	Filters FilterConfig  `mapstructure:"filters"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OAuthConfig holds the application credentials and, optionally, a
// previously issued token
type OAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
	Scope        string `mapstructure:"scope"`
	AccessToken  string `mapstructure:"access_token"`
	RefreshToken string `mapstructure:"refresh_token"`
}

// HasToken reports whether a token was configured
func (c OAuthConfig) HasToken() bool {
	return c.AccessToken != "" || c.RefreshToken != ""
}

// APIConfig holds API connection settings
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	FirmID  int64         `mapstructure:"firm_id"`
}

// FilterConfig contains named filter expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
