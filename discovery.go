// FILE: lixenwraith/envproxy/discovery.go
package envproxy

import (
	"os"
	"path/filepath"
	"strings"
)

// SchemaDiscoveryOptions configures automatic schema file discovery
type SchemaDiscoveryOptions struct {
	// Base name of schema file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultSchemaDiscoveryOptions returns sensible defaults
func DefaultSchemaDiscoveryOptions(appName string) SchemaDiscoveryOptions {
	return SchemaDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        DeriveKey(appName+"_schema", "", true, true),
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverSchema returns the first schema file found, or "" when there is none.
// An explicit path in the environment variable wins over the search.
func DiscoverSchema(opts SchemaDiscoveryOptions) string {
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
				return path
			}
		}
	}

	return ""
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", strings.ToLower(appName)),
		)
	}

	return paths
}
