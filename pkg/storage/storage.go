// Package storage persists templates, environments and configuration under
// a per-project .kurl folder, as whole-value YAML snapshots.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/kurl/pkg/command"
)

const (
	// FolderName is the data directory created next to where kurl runs.
	FolderName = ".kurl"

	configFile       = "config.json"
	templatesFile    = "templates.yaml"
	environmentsFile = "environments.yaml"
)

// Store reads and writes the data directory. Every save replaces the whole
// file; documents are small enough that partial updates are not worth it.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at baseDir. An empty baseDir uses
// FolderName in the current directory.
func NewStore(baseDir string) *Store {
	if baseDir == "" {
		baseDir = FolderName
	}
	return &Store{baseDir: baseDir}
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.baseDir }

// Init creates the data directory and its default files when missing.
// Existing files are never overwritten.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s folder: %w", s.baseDir, err)
	}

	configPath := filepath.Join(s.baseDir, configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := s.SaveConfig(DefaultConfig()); err != nil {
			return err
		}
	}

	envPath := filepath.Join(s.baseDir, environmentsFile)
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		def := command.NewEnvironment("Default")
		if err := s.SaveEnvironments([]command.Environment{*def}); err != nil {
			return err
		}
	}

	tplPath := filepath.Join(s.baseDir, templatesFile)
	if _, err := os.Stat(tplPath); os.IsNotExist(err) {
		if err := s.SaveTemplates(nil); err != nil {
			return err
		}
	}

	return nil
}

// LoadConfig reads config.json, falling back to defaults when absent.
func (s *Store) LoadConfig() (Config, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, configFile))
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes config.json.
func (s *Store) SaveConfig(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, configFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadTemplates reads templates.yaml. A missing file yields an empty list.
func (s *Store) LoadTemplates() ([]command.Template, error) {
	var doc TemplatesDocument
	if err := s.loadYAML(templatesFile, &doc); err != nil {
		return nil, err
	}
	return doc.Templates, nil
}

// SaveTemplates replaces templates.yaml with the given list.
func (s *Store) SaveTemplates(templates []command.Template) error {
	return s.saveYAML(templatesFile, TemplatesDocument{
		Version:   SchemaVersion,
		Templates: templates,
	})
}

// LoadEnvironments reads environments.yaml. A missing file yields an empty
// list.
func (s *Store) LoadEnvironments() ([]command.Environment, error) {
	var doc EnvironmentsDocument
	if err := s.loadYAML(environmentsFile, &doc); err != nil {
		return nil, err
	}
	return doc.Environments, nil
}

// SaveEnvironments replaces environments.yaml with the given list.
func (s *Store) SaveEnvironments(envs []command.Environment) error {
	return s.saveYAML(environmentsFile, EnvironmentsDocument{
		Version:      SchemaVersion,
		Environments: envs,
	})
}

func (s *Store) loadYAML(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveYAML(name string, doc interface{}) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
