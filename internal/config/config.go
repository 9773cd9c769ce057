package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of one peer
type Config struct {
	Identity         string        `mapstructure:"identity"`
	Listen           string        `mapstructure:"listen"`
	Peers            []string      `mapstructure:"peers"`
	RoomSeed         string        `mapstructure:"room_seed"`
	LogLevel         string        `mapstructure:"log_level"`
	HistorySize      int           `mapstructure:"history_size"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
}

// EnvPrefix is prepended to every environment override, e.g. PEERBID_LISTEN
const EnvPrefix = "PEERBID"

func setDefaults(v *viper.Viper) {
	v.SetDefault("identity", "")
	v.SetDefault("listen", ":8080")
	v.SetDefault("peers", []string{})
	v.SetDefault("room_seed", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("history_size", 200)
	v.SetDefault("handshake_timeout", 5*time.Second)
}

// Load reads defaults, then the optional TOML file at path, then PEERBID_* environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.HistorySize <= 0 {
		return nil, fmt.Errorf("config: history_size must be positive, got %d", cfg.HistorySize)
	}
	cfg.Peers = compact(cfg.Peers)
	return &cfg, nil
}

// compact trims entries and drops empty ones
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
