// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to .salesdeck directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/salesdeck)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (repo + global).
// Repository config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repo, err := l.LoadRepo()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- repo (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if repo != nil {
		base = mergeConfigs(base, repo)
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}

	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadRepo returns only the repository configuration.
func (l *Loader) LoadRepo() (*domain.Config, error) {
	return l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
// Values of the wrong type are ignored so the default stays in effect.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}

		switch section {
		case "board":
			for k, v := range m {
				switch k {
				case "columns":
					cols, colWarnings := parseColumns(v)
					res.Board.Columns = cols
					warnings = append(warnings, colWarnings...)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [board]: %s", k))
				}
			}
		case "store":
			for k, v := range m {
				switch k {
				case "type":
					if s, ok := v.(string); ok {
						res.Store.Type = s
					}
				case "namespace":
					if s, ok := v.(string); ok {
						res.Store.Namespace = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "pages":
			for k, v := range m {
				switch k {
				case "database":
					if s, ok := v.(string); ok {
						res.Pages.Database = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [pages]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Server.Addr = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [server]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseColumns parses [board].columns, an array of {id, title} tables.
func parseColumns(v any) ([]domain.ColumnConfig, []string) {
	items, ok := v.([]any)
	if !ok {
		return nil, []string{"invalid value in [board]: columns must be an array"}
	}

	var warnings []string
	columns := make([]domain.ColumnConfig, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("invalid entry in [board].columns: #%d", i))
			continue
		}
		var col domain.ColumnConfig
		for k, val := range m {
			switch k {
			case "id":
				if s, ok := val.(string); ok {
					col.ID = s
				}
			case "title":
				if s, ok := val.(string); ok {
					col.Title = s
				}
			default:
				warnings = append(warnings, fmt.Sprintf("unknown key in [board].columns: %s", k))
			}
		}
		if col.ID == "" {
			warnings = append(warnings, fmt.Sprintf("missing id in [board].columns: #%d", i))
			continue
		}
		columns = append(columns, col)
	}
	return columns, warnings
}

// mergeConfigs merges two configs, with override taking precedence.
// Board columns are replaced as a whole, never merged entry by entry.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Board:  base.Board,
		Store:  base.Store,
		Pages:  base.Pages,
		Log:    base.Log,
		Server: base.Server,
	}

	result.Warnings = append(result.Warnings, base.Warnings...)
	result.Warnings = append(result.Warnings, override.Warnings...)

	if len(override.Board.Columns) > 0 {
		result.Board.Columns = append([]domain.ColumnConfig{}, override.Board.Columns...)
	}
	if override.Store.Type != "" {
		result.Store.Type = override.Store.Type
	}
	if override.Store.Namespace != "" {
		result.Store.Namespace = override.Store.Namespace
	}
	if override.Pages.Database != "" {
		result.Pages.Database = override.Pages.Database
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}

	return result
}
