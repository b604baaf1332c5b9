/*
Package config manages TOML config for the anagram generator.

	[search]
	permutations = false
	show_partial = false

	[dict]
	path = "/usr/share/dict/words"
	no_apostrophe = false
	small_words = true

	[cli]
	max_results = 0
	color = true

	[server]
	max_limit = 1000
	max_phrase = 40
	timeout_ms = 5000

Command line flags override every value read from the file.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/anagram/internal/utils"
	"github.com/bastiangx/anagram/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// FileName is the name of the config file in the config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
	Server ServerConfig `toml:"server"`
}

// SearchConfig holds the default search mode.
type SearchConfig struct {
	Permutations bool `toml:"permutations"`
	ShowPartial  bool `toml:"show_partial"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path         string `toml:"path"`
	NoApostrophe bool   `toml:"no_apostrophe"`
	SmallWords   bool   `toml:"small_words"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	// MaxResults stops a search after this many lines, 0 means no limit.
	MaxResults int  `toml:"max_results"`
	Color      bool `toml:"color"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	MaxPhraseLen int `toml:"max_phrase"`
	TimeoutMs    int `toml:"timeout_ms"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Permutations: false,
			ShowPartial:  false,
		},
		Dict: DictConfig{
			Path:         dictionary.DefaultPath,
			NoApostrophe: false,
			SmallWords:   true,
		},
		CLI: CliConfig{
			MaxResults: 0,
			Color:      true,
		},
		Server: ServerConfig{
			MaxLimit:     1000,
			MaxPhraseLen: 40,
			TimeoutMs:    5000,
		},
	}
}

// DictionaryOptions converts the dict section into loader options.
func (c *Config) DictionaryOptions() dictionary.Options {
	return dictionary.Options{
		NoApostrophe: c.Dict.NoApostrophe,
		SmallWords:   c.Dict.SmallWords,
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path from the path resolver
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, resolver *utils.PathResolver) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	if resolver == nil {
		return DefaultConfig(), "", nil
	}
	defaultPath, err := resolver.GetConfigPath(FileName)
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value of a file that failed strict decoding
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if searchSection, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(searchSection, &config.Search)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractBool(data, "permutations"); ok {
		search.Permutations = val
	}
	if val, ok := utils.ExtractBool(data, "show_partial"); ok {
		search.ShowPartial = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractBool(data, "no_apostrophe"); ok {
		dict.NoApostrophe = val
	}
	if val, ok := utils.ExtractBool(data, "small_words"); ok {
		dict.SmallWords = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		cli.MaxResults = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_phrase"); ok {
		server.MaxPhraseLen = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		server.TimeoutMs = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	return utils.GetAbsolutePath(configPath)
}
