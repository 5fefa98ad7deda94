package hostconfig

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML host configuration. Members missing from the
// payload keep their Default values.
func Parse(data []byte, source string) (HostConfig, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return HostConfig{}, fmt.Errorf("hostconfig: %s is empty", sourceName(source))
	}

	if err := json.Unmarshal(data, &cfg); err == nil {
		return cfg.Normalize(), nil
	}

	cfg = Default()
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		return cfg.Normalize(), nil
	}

	return HostConfig{}, fmt.Errorf("hostconfig: parse %s: invalid JSON or YAML", sourceName(source))
}

// LoadFile reads a host configuration from disk.
func LoadFile(path string) (HostConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return HostConfig{}, fmt.Errorf("hostconfig: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return HostConfig{}, fmt.Errorf("hostconfig: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a host configuration from an fs.FS entry.
func LoadFS(fsys fs.FS, name string) (HostConfig, error) {
	if fsys == nil {
		return HostConfig{}, fmt.Errorf("hostconfig: fs is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return HostConfig{}, fmt.Errorf("hostconfig: read %s: %w", name, err)
	}
	return Parse(data, name)
}

func sourceName(source string) string {
	if strings.TrimSpace(source) == "" {
		return "host config"
	}
	return source
}
