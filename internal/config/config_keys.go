// config_keys.go provides string-keyed access to configuration for the
// config command, e.g. "notion.base_url".

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"notion.token", "notion.base_url", "notion.version", "notion.timeout",
		"log.level",
		"scripts.dir",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the effective value of a key. The token is masked.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "notion.token":
		return MaskToken(c.Token()), nil
	case "notion.base_url":
		return c.BaseURL(), nil
	case "notion.version":
		return c.APIVersion(), nil
	case "notion.timeout":
		return strconv.Itoa(int(c.Timeout().Seconds())), nil
	case "log.level":
		return c.LogLevel(), nil
	case "scripts.dir":
		return c.ScriptsDir(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a key in the file configuration.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "notion.token":
		c.Notion.Token = value
	case "notion.base_url":
		if err := validateURL(value); err != nil {
			return err
		}
		c.Notion.BaseURL = strings.TrimSuffix(value, "/")
	case "notion.version":
		c.Notion.Version = value
	case "notion.timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinTimeout || n > MaxTimeout {
			return fmt.Errorf("%w: notion.timeout must be an integer between %d and %d", ErrInvalidValue, MinTimeout, MaxTimeout)
		}
		c.Notion.Timeout = &n
	case "log.level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		c.Log.Level = strings.ToLower(value)
	case "scripts.dir":
		c.Scripts.Dir = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns the effective value of every key.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		all[k] = v
	}
	return all
}

// IsSet returns true if the key has an explicit file value.
func (c *Config) IsSet(key string) bool {
	switch key {
	case "notion.token":
		return c.Notion.Token != ""
	case "notion.base_url":
		return c.Notion.BaseURL != ""
	case "notion.version":
		return c.Notion.Version != ""
	case "notion.timeout":
		return c.Notion.Timeout != nil
	case "log.level":
		return c.Log.Level != ""
	case "scripts.dir":
		return c.Scripts.Dir != ""
	default:
		return false
	}
}

// MaskToken hides all but the last four characters of a token.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}
