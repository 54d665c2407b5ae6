// Package config loads the tracker daemon's settings from a TOML file with
// environment-variable overrides.
//
// The shape mirrors the original Rust daemon's figment-based loader
// (original_source/hanekawa-server/src/config.rs): a "hanekawa.toml" file
// merged with environment variables under an "HKW_" prefix, environment
// taking precedence. Go's ecosystem analogue of figment is viper, used here
// with the same file name and prefix.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the tracker daemon needs to run: storage and
// queue DSNs, announce-protocol tunables, and the two front-ends' bind
// addresses.
type Config struct {
	DatabaseURL     string `mapstructure:"database_url"`
	MessageQueueURL string `mapstructure:"message_queue_url"`

	// PeerAnnounceInterval is the number of seconds a client is told to
	// wait before its next announce.
	PeerAnnounceInterval uint32 `mapstructure:"peer_announce_interval"`

	// PeerActivityTimeout is how long, in seconds, a peer's last announce
	// stays valid before it is dropped from announce responses' peer lists.
	// Scrape statistics are not limited by it.
	PeerActivityTimeout uint32 `mapstructure:"peer_activity_timeout"`

	HTTPBindAddr string `mapstructure:"http_bind_addr"`
	UDPBindAddr  string `mapstructure:"udp_bind_addr"`
}

const envPrefix = "HKW"

// Load reads configFile (a TOML document) and layers HKW_-prefixed
// environment variables on top of it, environment winning on conflicts.
// configFile may not exist; missing-file is not an error, mirroring
// figment's Toml::file behavior of silently contributing nothing.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The required keys have no default, and Unmarshal only sees keys viper
	// already knows about, so bind them to make environment-only values count.
	_ = v.BindEnv("database_url")
	_ = v.BindEnv("message_queue_url")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: database_url is required")
	}
	if cfg.MessageQueueURL == "" {
		return nil, fmt.Errorf("config: message_queue_url is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("peer_announce_interval", 1800)
	v.SetDefault("peer_activity_timeout", 3600)
	v.SetDefault("http_bind_addr", "0.0.0.0:6969")
	v.SetDefault("udp_bind_addr", "0.0.0.0:6969")
}
