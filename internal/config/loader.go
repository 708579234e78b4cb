package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".datets"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix, e.g. DATETS_WIRE_BYTE_ORDER.
const envPrefix = "DATETS"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load reads configuration from defaults, env vars and a config file.
// If configPath is non-empty it is used as the explicit config file path;
// otherwise .datets.yaml is searched in the working directory and $HOME.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Wire: WireConfig{
			KeyEncoding:      DefaultKeyEncoding,
			ValueEncoding:    DefaultValueEncoding,
			KeyCompression:   DefaultKeyCompression,
			ValueCompression: DefaultValueCompression,
			ByteOrder:        DefaultByteOrder,
		},
		Output: OutputConfig{Format: DefaultOutputFormat, Head: DefaultHead},
		CSV:    CSVConfig{Comma: DefaultComma},
	}
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("wire.key_encoding", DefaultKeyEncoding)
	v.SetDefault("wire.value_encoding", DefaultValueEncoding)
	v.SetDefault("wire.key_compression", DefaultKeyCompression)
	v.SetDefault("wire.value_compression", DefaultValueCompression)
	v.SetDefault("wire.byte_order", DefaultByteOrder)

	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.head", DefaultHead)

	v.SetDefault("csv.comma", DefaultComma)
}
