package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the YAML file when -config is not given.
const EnvConfigFile = "QUICKMEALS_CONFIG"

// configPath finds the YAML file path: -config/--config in args first, then
// the environment. Empty means no file.
func configPath(args []string, getenv func(string) string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return getenv(EnvConfigFile)
}

// parseYAML overlays cfg with the fields present in the file. Fields the
// file leaves out keep their current values.
func parseYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}
