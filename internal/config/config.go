package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for budgetwatch, stored in
// ~/.budgetwatch/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	API   APIConfig   `json:"api"`
	OAuth OAuthConfig `json:"oauth"`
}

// APIConfig holds provider API settings.
type APIConfig struct {
	// BaseURL is the API root. Override for self-hosted gateways or tests.
	BaseURL string `json:"base_url"`
}

// OAuthConfig holds the optional OAuth app credentials used by
// `budgetwatch auth login`. Personal API tokens do not need these.
type OAuthConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
}

// DefaultBaseURL is the hosted provider API root.
const DefaultBaseURL = "https://api.clickup.com/api/v2"

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		API: APIConfig{BaseURL: DefaultBaseURL},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// budgetwatch configuration – ~/.budgetwatch/config.json
//
// All settings are optional; the built-in defaults work out of the box with
// a personal API token. Edit this file to customise budgetwatch behaviour.
{
  "api": {
    // API root. Only change this for a self-hosted gateway or a proxy.
    "base_url": "https://api.clickup.com/api/v2"
  },

  // OAuth app credentials, only needed for 'budgetwatch auth login'.
  // Personal API tokens ('budgetwatch auth token <token>') work without them.
  "oauth": {
    "client_id": "",
    "client_secret": "",
    "redirect_uri": ""
  }
}
`

// configFilePath returns the path to ~/.budgetwatch/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".budgetwatch", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.budgetwatch/config.json, creating it with annotated defaults
// on first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse decodes a commented-JSON config document, filling zero-value fields
// with built-in defaults so callers always get a usable Config.
func Parse(data []byte, path string) (Config, error) {
	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
