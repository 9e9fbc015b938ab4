package config

import (
	"os"
	"strings"
)

const fallbackVersion = "0.1.0"

// Version returns APP_VERSION when set (CI builds), otherwise the content of
// the VERSION file in the working directory, otherwise a fixed fallback.
func (c *Config) Version() string {
	if c.AppVersion != "" {
		return c.AppVersion
	}
	return readVersionFile("VERSION")
}

func readVersionFile(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return fallbackVersion
	}
	if v := strings.TrimSpace(string(content)); v != "" {
		return v
	}
	return fallbackVersion
}
