// Package config loads server configuration from an optional YAML file and
// TASKPLANNER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultAddr    = ":5002"
	DefaultDataDir = "data"
	DefaultToken   = "taskplanner2025"
)

type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DataDir holds tasks.json, nfc_mappings.json and nfc_pings.json.
	DataDir string
	// AuthToken is the static bearer token for the API.
	AuthToken string
	// AuthTokenHash, when set, replaces AuthToken with a bcrypt hash of it.
	AuthTokenHash string
	// NFCPublic allows the /api/nfc endpoints without auth, so cheap readers
	// that cannot set headers still work.
	NFCPublic bool
	// Reader is the reader name recorded when a scan does not supply one.
	Reader string

	// Hardware enables the GPIO LED sink.
	Hardware bool
	LEDPinR  string
	LEDPinG  string
	LEDPinB  string

	// TLSCert/TLSKey enable HTTPS when both are set.
	TLSCert string
	TLSKey  string
}

// Load reads configuration from path if given, otherwise from
// taskplanner.yaml in the working directory or /etc/taskplanner.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("auth_token", DefaultToken)
	v.SetDefault("auth_token_hash", "")
	v.SetDefault("nfc_public", true)
	v.SetDefault("reader", "api")
	v.SetDefault("hardware", false)
	v.SetDefault("led_pin_r", "GPIO17")
	v.SetDefault("led_pin_g", "GPIO27")
	v.SetDefault("led_pin_b", "GPIO22")
	v.SetDefault("tls_cert", "")
	v.SetDefault("tls_key", "")

	v.SetEnvPrefix("TASKPLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("taskplanner")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/taskplanner")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Addr:          v.GetString("addr"),
		DataDir:       v.GetString("data_dir"),
		AuthToken:     v.GetString("auth_token"),
		AuthTokenHash: v.GetString("auth_token_hash"),
		NFCPublic:     v.GetBool("nfc_public"),
		Reader:        v.GetString("reader"),
		Hardware:      v.GetBool("hardware"),
		LEDPinR:       v.GetString("led_pin_r"),
		LEDPinG:       v.GetString("led_pin_g"),
		LEDPinB:       v.GetString("led_pin_b"),
		TLSCert:       v.GetString("tls_cert"),
		TLSKey:        v.GetString("tls_key"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AuthToken == "" && c.AuthTokenHash == "" {
		return errors.New("auth_token or auth_token_hash must be set")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("tls_cert and tls_key must be set together")
	}
	return nil
}

// TLS reports whether the server should serve HTTPS.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
