package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Board    BoardConfig  `toml:"board"`
	Store    StoreConfig  `toml:"store"`
	Pages    PagesConfig  `toml:"pages"`
	Log      LogConfig    `toml:"log"`
	Server   ServerConfig `toml:"server"`
}

// BoardConfig holds settings from the [board] section.
type BoardConfig struct {
	Columns []ColumnConfig `toml:"columns,omitempty"` // Pipeline stages in display order
}

// ColumnConfig is a single entry of [board].columns.
type ColumnConfig struct {
	ID    string `toml:"id"`
	Title string `toml:"title,omitempty"`
}

// StoreConfig holds board storage settings from the [store] section.
type StoreConfig struct {
	Type      string `toml:"type,omitempty"`      // "json" (default) or "git"
	Namespace string `toml:"namespace,omitempty"` // Ref namespace for the git store
}

// PagesConfig holds page store settings from the [pages] section.
type PagesConfig struct {
	Database string `toml:"database,omitempty"` // SQLite path, relative to the data dir
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// ServerConfig holds HTTP settings from the [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// Store types.
const (
	StoreTypeJSON = "json"
	StoreTypeGit  = "git"
)

// Default configuration values.
const (
	DefaultLogLevel       = "info"
	DefaultStoreType      = StoreTypeJSON
	DefaultStoreNamespace = "salesdeck"
	DefaultPagesDatabase  = "pages.db"
	DefaultServerAddr     = "127.0.0.1:8080"
)

// Directory and file names.
const (
	ConfigDirName  = "salesdeck"   // Directory name under XDG_CONFIG_HOME
	ConfigFileName = "config.toml" // Config file name
)

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, ConfigDirName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	defaults := DefaultColumns()
	columns := make([]ColumnConfig, len(defaults))
	for i, c := range defaults {
		columns[i] = ColumnConfig{ID: c.ID, Title: c.Title}
	}
	return &Config{
		Board: BoardConfig{Columns: columns},
		Store: StoreConfig{
			Type:      DefaultStoreType,
			Namespace: DefaultStoreNamespace,
		},
		Pages:  PagesConfig{Database: DefaultPagesDatabase},
		Log:    LogConfig{Level: DefaultLogLevel},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// BoardColumns converts the configured columns into empty board columns.
func (c *Config) BoardColumns() []Column {
	if len(c.Board.Columns) == 0 {
		return DefaultColumns()
	}
	columns := make([]Column, 0, len(c.Board.Columns))
	for _, cc := range c.Board.Columns {
		if cc.ID == "" {
			continue
		}
		title := cc.Title
		if title == "" {
			title = cc.ID
		}
		columns = append(columns, Column{ID: cc.ID, Title: title})
	}
	return columns
}

// RenderConfigTemplate renders the commented config file written by
// 'salesdeck config init'.
func RenderConfigTemplate(cfg *Config) string {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	// The template only reads plain fields; execution cannot fail on a valid Config.
	_ = tmpl.Execute(&buf, cfg)
	return buf.String()
}

// Validate checks values that cannot be repaired by falling back to defaults.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreTypeJSON, StoreTypeGit:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStoreType, c.Store.Type)
	}
}
