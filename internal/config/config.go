// Package config provides configuration management for the
// polaris-bootstrap CLI.
//
// It implements the disciplined Viper pattern where Viper stays
// contained in this package and the rest of the codebase receives
// explicit Config structs. Sources are resolved in this order:
// flags > env > config file > defaults.
package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// Fallback entity names used when nothing else is configured
const (
	DefaultCatalogName       = "my_catalog"
	DefaultBaseLocation      = "file:///data/polaris"
	DefaultPrincipalName     = "polarisuser"
	DefaultPrincipalRoleName = "polarisuser_role"
	DefaultCatalogRoleName   = "my_catalog_role"
	DefaultAPIHost           = "localhost"
	DefaultDockerHost        = "unix:///var/run/docker.sock"
)

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	ComposeProject      string
	CatalogName         string
	DefaultBaseLocation string
	PrincipalName       string
	PrincipalRoleName   string
	CatalogRoleName     string
	APIHost             string
	APIPort             string // empty means resolve from the container
	ClientID            string
	ClientSecret        string
	LogLevel            string
	Docker              DockerConfig
}

// DockerConfig mirrors the docker CLI environment conventions
type DockerConfig struct {
	Host      string
	TLSVerify bool
	CertPath  string
}

// Init initializes viper with defaults, env bindings and config file
// search paths
func Init() error {
	viper.SetConfigName("polaris-bootstrap")
	viper.SetConfigType("yaml")

	viper.AddConfigPath("$HOME/.polaris-bootstrap")
	viper.AddConfigPath(".")

	viper.SetDefault("catalog_name", DefaultCatalogName)
	viper.SetDefault("default_base_location", DefaultBaseLocation)
	viper.SetDefault("principal_name", DefaultPrincipalName)
	viper.SetDefault("principal_role_name", DefaultPrincipalRoleName)
	viper.SetDefault("catalog_role_name", DefaultCatalogRoleName)
	viper.SetDefault("api_host", DefaultAPIHost)
	viper.SetDefault("api_port", "")
	viper.SetDefault("compose_project", "")
	viper.SetDefault("client_id", "")
	viper.SetDefault("client_secret", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("docker_host", DefaultDockerHost)
	viper.SetDefault("docker_tls_verify", false)
	viper.SetDefault("docker_cert_path", "")

	viper.SetEnvPrefix("POLARIS")
	viper.AutomaticEnv()

	// Unprefixed names shared with docker compose and the docker CLI
	viper.BindEnv("compose_project", "POLARIS_COMPOSE_PROJECT", "COMPOSE_PROJECT_NAME")
	viper.BindEnv("docker_host", "DOCKER_HOST")
	viper.BindEnv("docker_tls_verify", "DOCKER_TLS_VERIFY")
	viper.BindEnv("docker_cert_path", "DOCKER_CERT_PATH")

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := &Config{
		ComposeProject:      viper.GetString("compose_project"),
		CatalogName:         viper.GetString("catalog_name"),
		DefaultBaseLocation: viper.GetString("default_base_location"),
		PrincipalName:       viper.GetString("principal_name"),
		PrincipalRoleName:   viper.GetString("principal_role_name"),
		CatalogRoleName:     viper.GetString("catalog_role_name"),
		APIHost:             viper.GetString("api_host"),
		APIPort:             viper.GetString("api_port"),
		ClientID:            viper.GetString("client_id"),
		ClientSecret:        viper.GetString("client_secret"),
		LogLevel:            viper.GetString("log_level"),
		Docker: DockerConfig{
			Host:      viper.GetString("docker_host"),
			TLSVerify: viper.GetBool("docker_tls_verify"),
			CertPath:  viper.GetString("docker_cert_path"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if c.CatalogName == "" {
		return fmt.Errorf("catalog name must not be empty")
	}
	if c.DefaultBaseLocation == "" {
		return fmt.Errorf("default base location must not be empty")
	}
	if c.PrincipalName == "" {
		return fmt.Errorf("principal name must not be empty")
	}
	if c.PrincipalRoleName == "" {
		return fmt.Errorf("principal role name must not be empty")
	}
	if c.CatalogRoleName == "" {
		return fmt.Errorf("catalog role name must not be empty")
	}
	if c.APIHost == "" {
		return fmt.Errorf("api host must not be empty")
	}

	if c.APIPort != "" {
		port, err := strconv.Atoi(c.APIPort)
		if err != nil {
			return fmt.Errorf("invalid api port: %s", c.APIPort)
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid api port: %d", port)
		}
	}

	// Either both halves of the pair or neither
	if (c.ClientID == "") != (c.ClientSecret == "") {
		return fmt.Errorf("client id and client secret must be set together")
	}

	if c.Docker.Host == "" {
		return fmt.Errorf("docker host must not be empty")
	}
	if c.Docker.TLSVerify && c.Docker.CertPath == "" {
		return fmt.Errorf("docker cert path required when tls verify is on")
	}

	return nil
}

// HasCredentials reports whether a credential pair was supplied up
// front, skipping log extraction.
func (c *Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
