// FILE: lixenwraith/objtemplate/discovery.go
package objtemplate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryOptions configures where named templates are searched for
type DiscoveryOptions struct {
	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (searched first)
	Paths []string

	// Environment variable holding a list of template directories
	EnvVar string

	// Whether to search in the current directory
	UseCurrentDir bool

	// Whether to search in XDG config directories under AppName
	UseXDG  bool
	AppName string
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	return DiscoveryOptions{
		Extensions:    []string{".yaml", ".yml", ".json", ".toml"},
		EnvVar:        strings.ToUpper(appName) + "_TEMPLATE_PATH",
		UseCurrentDir: true,
		UseXDG:        true,
		AppName:       appName,
	}
}

// FindTemplate resolves a template reference to a file path. A reference
// that names an existing file is returned as-is; otherwise name+extension
// is searched for in the configured directories.
func FindTemplate(ref string, opts DiscoveryOptions) (string, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return ref, nil
	}

	for _, dir := range searchPaths(opts) {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, ref+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, ref)
}

// searchPaths builds the ordered list of template directories
func searchPaths(opts DiscoveryOptions) []string {
	var paths []string

	paths = append(paths, opts.Paths...)

	if opts.EnvVar != "" {
		if list := os.Getenv(opts.EnvVar); list != "" {
			paths = append(paths, filepath.SplitList(list)...)
		}
	}

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			paths = append(paths, cwd)
		}
	}

	if opts.UseXDG && opts.AppName != "" {
		paths = append(paths, getXDGTemplatePaths(opts.AppName)...)
	}

	return paths
}

// getXDGTemplatePaths returns XDG-compliant template search paths
func getXDGTemplatePaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName, "templates"))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName, "templates"))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName, "templates"))
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", appName, "templates"))
	}

	return paths
}
