// Package config resolves process configuration for the poc-plot,
// poc-mine and poc-monitor binaries. Settings are layered in ascending
// precedence: built-in defaults, then the first poc.env file found,
// then process environment variables. Malformed values are reported as
// errors naming the offending key, never silently skipped — a plotter
// writing to the wrong account id because of a typo is unrecoverable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MiningConfig holds the settings shared by the plotting and mining
// binaries.
type MiningConfig struct {
	AccountID       uint64
	PlotDir         string
	PreferredEngine string // engine name, or "" for auto-detect
	StatusPort      int
}

// Default returns the built-in configuration every layer overrides.
func Default() *MiningConfig {
	return &MiningConfig{
		PlotDir:    "./plots",
		StatusPort: 8080,
	}
}

// Load resolves the process configuration. The config file is looked up
// at $POC_CONFIG if set (an unreadable explicit path is an error), then
// poc.env in the working directory, then $HOME/.poc/poc.env; the first
// one found wins and the others are never read.
func Load() (*MiningConfig, error) {
	cfg := Default()

	if path, explicit, ok := findConfigFile(); ok {
		values, err := readEnvFile(path)
		if err != nil {
			if explicit {
				return nil, fmt.Errorf("config: %s: %w", path, err)
			}
		} else if err := cfg.apply(values); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	env := make(map[string]string)
	for _, key := range settingKeys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	if err := cfg.apply(env); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	return cfg, nil
}

// settingKeys are the recognized keys, shared by the file and
// environment layers.
var settingKeys = []string{
	"POC_ACCOUNT_ID",
	"POC_PLOT_DIR",
	"POC_ENGINE",
	"POC_STATUS_PORT",
}

// apply merges a key/value layer into cfg. Unknown keys are ignored so
// a poc.env can sit beside unrelated deployment variables; known keys
// with unparseable values are errors.
func (c *MiningConfig) apply(values map[string]string) error {
	for key, value := range values {
		switch key {
		case "POC_ACCOUNT_ID":
			id, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return fmt.Errorf("POC_ACCOUNT_ID %q is not a numeric account id", value)
			}
			c.AccountID = id
		case "POC_PLOT_DIR":
			c.PlotDir = value
		case "POC_ENGINE":
			c.PreferredEngine = value
		case "POC_STATUS_PORT":
			port, err := strconv.Atoi(value)
			if err != nil || port <= 0 || port > 65535 {
				return fmt.Errorf("POC_STATUS_PORT %q is not a valid port", value)
			}
			c.StatusPort = port
		}
	}
	return nil
}

// findConfigFile returns the config file to load, whether it was named
// explicitly via POC_CONFIG, and whether any candidate exists.
func findConfigFile() (path string, explicit, ok bool) {
	if p := os.Getenv("POC_CONFIG"); p != "" {
		return p, true, true
	}
	candidates := []string{"poc.env"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".poc", "poc.env"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, false, true
		}
	}
	return "", false, false
}

// readEnvFile parses a poc.env file into a key/value map. Lines are
// KEY=VALUE, with blank lines and #-comments skipped; an optional
// "export " prefix and matched surrounding quotes on the value are
// stripped so the same file can be sourced by a shell.
func readEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if q := value[0]; (q == '"' || q == '\'') && value[len(value)-1] == q {
				value = value[1 : len(value)-1]
			}
		}
		values[key] = value
	}
	return values, nil
}
