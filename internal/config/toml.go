// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice  PracticeConfig  `toml:"practice"`
	Generator GeneratorConfig `toml:"generator"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Level    *string `toml:"level"`
	Length   *string `toml:"length"`
	Profile  *string `toml:"profile"`
	GhostFPS *int    `toml:"ghost-fps"`
}

// GeneratorConfig maps lesson text generation settings.
type GeneratorConfig struct {
	WordsFile *string `toml:"words-file"`
	Seed      *int64  `toml:"seed"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is written by `fingertypos config` when no config exists yet.
const Template = `# fingertypos configuration

[practice]
# level = "c-1-1"
# length = "medium"   # short | medium | long
# profile = ""        # profile id, defaults to the active profile
# ghost-fps = 30

[generator]
# words-file = "words.txt"   # one word per line, relative to this directory
# seed = 0                   # 0 picks a random seed per session
`
