// Package config loads wavepick's CLI defaults from flags, WAVEPICK_* env
// vars, and an optional config file, in that precedence order, via
// spf13/viper.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/wavepick/wavepick/pkg/wavepick"
)

// Config holds every value cmd/wavepick's flags can also set. Fields left
// unset by flag, env, or file fall back to DriverDefaults.
type Config struct {
	Heuristic int
	LogPath   string
	Patience  time.Duration
	Workers   int
	Seed      uint64
}

// DriverDefaults mirrors options.go's defaultDriverConfig, duplicated here
// (rather than imported) so config has no dependency on driverConfig's
// unexported fields. Workers differs: 0 here (runtime.NumCPU()) where
// defaultDriverConfig uses 1.
var DriverDefaults = Config{
	Heuristic: int(wavepick.H2),
	LogPath:   "",
	Patience:  wavepick.DefaultPatience,
	Workers:   0, // 0 means runtime.NumCPU(), resolved by the caller.
	Seed:      0,
}

// Load builds a viper instance seeded with DriverDefaults, overridden by
// WAVEPICK_* environment variables and, if configPath is non-empty, by a
// YAML config file — following viper's conventional precedence: explicit
// flag values (applied by the caller after Load returns) take priority
// over env vars, which take priority over the file, which takes priority
// over these defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("WAVEPICK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("heuristic", DriverDefaults.Heuristic)
	v.SetDefault("log", DriverDefaults.LogPath)
	v.SetDefault("patience", DriverDefaults.Patience.String())
	v.SetDefault("workers", DriverDefaults.Workers)
	v.SetDefault("seed", DriverDefaults.Seed)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	patience, err := time.ParseDuration(v.GetString("patience"))
	if err != nil {
		patience = DriverDefaults.Patience
	}

	return &Config{
		Heuristic: v.GetInt("heuristic"),
		LogPath:   v.GetString("log"),
		Patience:  patience,
		Workers:   v.GetInt("workers"),
		Seed:      uint64(v.GetInt64("seed")),
	}, nil
}

// yamlTemplate mirrors Config with the field names a --config file
// written to disk should use; it is kept separate from
// Config so struct tags don't leak into the viper-read path above.
type yamlTemplate struct {
	Heuristic int    `yaml:"heuristic"`
	Log       string `yaml:"log"`
	Patience  string `yaml:"patience"`
	Workers   int    `yaml:"workers"`
	Seed      uint64 `yaml:"seed"`
}

// WriteDefaultConfig writes a YAML template of DriverDefaults to path, for
// `wavepick config init`-style scaffolding.
func WriteDefaultConfig(path string) error {
	tmpl := yamlTemplate{
		Heuristic: DriverDefaults.Heuristic,
		Log:       DriverDefaults.LogPath,
		Patience:  DriverDefaults.Patience.String(),
		Workers:   DriverDefaults.Workers,
		Seed:      DriverDefaults.Seed,
	}
	out, err := yaml.Marshal(tmpl)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
