package routing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iota-uz/utils/fs"
	"gopkg.in/yaml.v3"
)

type RouteClass string

const (
	RouteClassUI          RouteClass = "ui"
	RouteClassInternalAPI RouteClass = "internal_api"
	RouteClassPublicAPI   RouteClass = "public_api"
	RouteClassOps         RouteClass = "ops"
	RouteClassStatic      RouteClass = "static"
)

var ErrAllowlistNotFound = errors.New("routing allowlist not found")

type AllowlistRule struct {
	Prefix string     `yaml:"prefix"`
	Class  RouteClass `yaml:"class"`
}

type allowlistFile struct {
	Version     int                        `yaml:"version"`
	Entrypoints map[string][]AllowlistRule `yaml:"entrypoints"`
}

// DefaultRules is used when no allowlist file can be found next to the binary.
func DefaultRules() []AllowlistRule {
	return []AllowlistRule{
		{Prefix: "/periods", Class: RouteClassUI},
		{Prefix: "/periods/api", Class: RouteClassInternalAPI},
		{Prefix: "/debug/prometheus", Class: RouteClassOps},
		{Prefix: "/health", Class: RouteClassOps},
		{Prefix: "/assets", Class: RouteClassStatic},
	}
}

func DefaultAllowlistPath() string {
	if p := strings.TrimSpace(os.Getenv("ROUTING_ALLOWLIST_PATH")); p != "" {
		return p
	}

	const relative = "config/routing/allowlist.yaml"
	if wd, err := os.Getwd(); err == nil {
		if root, ok := findGoModRoot(wd); ok {
			abs := filepath.Join(root, filepath.FromSlash(relative))
			if fs.FileExists(abs) {
				return abs
			}
		}
	}
	return filepath.FromSlash(relative)
}

// LoadAllowlist reads the rules of one entrypoint. An empty path means DefaultAllowlistPath.
func LoadAllowlist(path, entrypoint string) ([]AllowlistRule, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultAllowlistPath()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAllowlistNotFound, path)
		}
		return nil, err
	}
	return ParseAllowlist(raw, entrypoint)
}

func ParseAllowlist(raw []byte, entrypoint string) ([]AllowlistRule, error) {
	var file allowlistFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if file.Version != 1 {
		return nil, fmt.Errorf("unsupported allowlist version: %d", file.Version)
	}

	if strings.TrimSpace(entrypoint) == "" {
		entrypoint = "server"
	}
	rules, ok := file.Entrypoints[entrypoint]
	if !ok {
		return nil, fmt.Errorf("entrypoint %q not found in allowlist", entrypoint)
	}

	for i := range rules {
		rules[i].Prefix = strings.TrimSpace(rules[i].Prefix)
		if rules[i].Prefix == "" {
			return nil, fmt.Errorf("allowlist rule[%d]: empty prefix", i)
		}
		if !strings.HasPrefix(rules[i].Prefix, "/") {
			return nil, fmt.Errorf("allowlist rule[%d]: prefix must start with '/': %q", i, rules[i].Prefix)
		}
		switch rules[i].Class {
		case RouteClassUI, RouteClassInternalAPI, RouteClassPublicAPI, RouteClassOps, RouteClassStatic:
		default:
			return nil, fmt.Errorf("allowlist rule[%d]: unknown class: %q", i, rules[i].Class)
		}
	}
	return rules, nil
}

// RulesOrDefault loads the allowlist and falls back to DefaultRules.
func RulesOrDefault(path, entrypoint string) []AllowlistRule {
	rules, err := LoadAllowlist(path, entrypoint)
	if err != nil || len(rules) == 0 {
		return DefaultRules()
	}
	return rules
}

func findGoModRoot(start string) (string, bool) {
	for dir := start; ; {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
