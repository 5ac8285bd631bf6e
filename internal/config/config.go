// Package config manages the YAML configuration, command-line overrides and served folders.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CageChen/filehub/fileutil"
	"gopkg.in/yaml.v3"
)

// Folder is a directory served under an alias
type Folder struct {
	Path     string   `yaml:"path" json:"path"`
	Alias    string   `yaml:"alias" json:"alias"`
	GitRef   string   `yaml:"git_ref,omitempty" json:"git_ref,omitempty"`
	ReadOnly bool     `yaml:"read_only,omitempty" json:"read_only,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Writable reports whether files in the folder may be changed.
// Folders pinned to a git ref never are.
func (f Folder) Writable() bool {
	return !f.ReadOnly && f.GitRef == ""
}

// Config holds all configuration options for FileHub
type Config struct {
	// Single root shorthand, migrated into Folders on load
	Path string `yaml:"path,omitempty"`

	Folders []Folder `yaml:"folders,omitempty" json:"folders"`

	Port       int      `yaml:"port"`
	Watch      bool     `yaml:"watch"`
	LogLevel   string   `yaml:"log_level"`
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`

	// Internal: path to config file for saving
	configPath string
}

// Overrides carries command-line values. Zero values leave the file settings alone.
type Overrides struct {
	ConfigFile string
	Path       string
	Port       int
	LogLevel   string
	NoWatch    bool
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Path:       ".",
		Port:       8080,
		Watch:      true,
		LogLevel:   "info",
		Extensions: []string{".md", ".markdown"},
		Exclude:    []string{".git", ".svn", "node_modules"},
	}
}

// GetConfigDir returns the config directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/filehub"
	}
	return filepath.Join(home, ".config", "filehub")
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load reads the config file and applies the overrides on top of it
func Load(o Overrides) (*Config, error) {
	cfg := DefaultConfig()

	cfgPath := o.ConfigFile
	if cfgPath == "" {
		switch {
		case fileutil.Exists(GetConfigPath()):
			cfgPath = GetConfigPath()
		case fileutil.Exists("filehub.yaml"):
			cfgPath = "filehub.yaml"
		}
	}

	if cfgPath != "" {
		// Only an explicitly named config file has to load
		if err := cfg.loadFromFile(cfgPath); err != nil && o.ConfigFile != "" {
			return nil, fmt.Errorf("failed to load config %s: %w", cfgPath, err)
		}
		cfg.configPath = cfgPath
	} else {
		cfg.configPath = GetConfigPath()
	}

	if o.Path != "" {
		cfg.Path = o.Path
		// --path serves that directory alone
		cfg.Folders = nil
	}
	if o.Port != 0 {
		cfg.Port = o.Port
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.NoWatch {
		cfg.Watch = false
	}

	cfg.migrateLegacyPath()

	return cfg, nil
}

// migrateLegacyPath converts single Path to Folders if Folders is empty
func (c *Config) migrateLegacyPath() {
	if len(c.Folders) == 0 && c.Path != "" {
		absPath, err := filepath.Abs(c.Path)
		if err != nil {
			absPath = c.Path
		}
		c.Folders = []Folder{{
			Path:  absPath,
			Alias: filepath.Base(absPath),
		}}
	}

	for i := range c.Folders {
		absPath, err := filepath.Abs(c.Folders[i].Path)
		if err == nil {
			c.Folders[i].Path = absPath
		}
		if c.Folders[i].Alias == "" {
			c.Folders[i].Alias = filepath.Base(c.Folders[i].Path)
		}
	}
}

func (c *Config) loadFromFile(path string) error {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal([]byte(data), c)
}

// Save writes the current configuration to the config file
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o755); err != nil {
		return err
	}

	saveConfig := struct {
		Folders    []Folder `yaml:"folders,omitempty"`
		Port       int      `yaml:"port"`
		Watch      bool     `yaml:"watch"`
		LogLevel   string   `yaml:"log_level"`
		Extensions []string `yaml:"extensions"`
		Exclude    []string `yaml:"exclude"`
	}{
		Folders:    c.Folders,
		Port:       c.Port,
		Watch:      c.Watch,
		LogLevel:   c.LogLevel,
		Extensions: c.Extensions,
		Exclude:    c.Exclude,
	}

	data, err := yaml.Marshal(saveConfig)
	if err != nil {
		return err
	}

	_, err = fileutil.CreateFile(c.configPath, string(data))
	return err
}

// AddFolder adds a folder unless one with the same path and git ref is already configured
func (c *Config) AddFolder(path, alias, gitRef string, readOnly bool, exclude []string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for _, f := range c.Folders {
		if f.Path == absPath && f.GitRef == gitRef {
			return nil
		}
	}

	if alias == "" {
		alias = filepath.Base(absPath)
		if gitRef != "" {
			alias = alias + "@" + gitRef
		}
	}
	if _, ok := c.FolderByAlias(alias); ok {
		return fmt.Errorf("alias %q is already in use", alias)
	}

	c.Folders = append(c.Folders, Folder{
		Path:     absPath,
		Alias:    alias,
		GitRef:   gitRef,
		ReadOnly: readOnly,
		Exclude:  exclude,
	})

	return nil
}

// FolderByAlias returns the index of the folder served under alias
func (c *Config) FolderByAlias(alias string) (int, bool) {
	for i, f := range c.Folders {
		if f.Alias == alias {
			return i, true
		}
	}
	return -1, false
}

// RemoveFolderByIndex removes a folder by its index
func (c *Config) RemoveFolderByIndex(index int) {
	if index < 0 || index >= len(c.Folders) {
		return
	}
	c.Folders = append(c.Folders[:index], c.Folders[index+1:]...)
}

// UpdateFolderByIndex updates a folder's fields by index
func (c *Config) UpdateFolderByIndex(index int, alias string, readOnly bool, exclude []string) {
	if index < 0 || index >= len(c.Folders) {
		return
	}
	c.Folders[index].Alias = alias
	c.Folders[index].ReadOnly = readOnly
	c.Folders[index].Exclude = exclude
}

// GetConfigFilePath returns the path to the config file
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}

// IsExcluded checks the base name of path against the global exclude patterns
func (c *Config) IsExcluded(path string) bool {
	base := filepath.Base(path)
	for _, exclude := range c.Exclude {
		if matched, _ := filepath.Match(exclude, base); matched {
			return true
		}
	}
	return false
}

// IsFolderExcluded checks a folder-relative path against folder-level excludes
func (c *Config) IsFolderExcluded(relPath string, folderExcludes []string) bool {
	for _, pattern := range folderExcludes {
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(relPath)); matched {
			return true
		}
		clean := filepath.Clean(pattern)
		if relPath == clean || strings.HasPrefix(relPath, clean+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// IsMarkdownFile checks if a file has one of the preview extensions
func (c *Config) IsMarkdownFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
