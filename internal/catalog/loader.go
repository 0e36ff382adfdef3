package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opsgrade/posture-engine/internal/models"
)

// LoadDir loads domain definition YAML files from dir and layers them over
// the embedded defaults. A file defining an existing domain ID replaces
// that domain wholesale. Files are applied in lexical order so overrides
// are deterministic.
func LoadDir(dir string) (*Catalog, error) {
	domains := defaultDomains()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	loaded := 0
	for _, name := range files {
		domain, err := loadDomainFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("failed to load catalog file", "file", name, "error", err)
			continue
		}
		domains = append(domains, *domain)
		loaded++
	}

	slog.Info("catalog overrides loaded", "dir", dir, "files", loaded)
	return New(domains), nil
}

// loadDomainFile parses a single domain YAML file
func loadDomainFile(path string) (*models.Domain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var d models.Domain
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if d.ID == "" {
		return nil, fmt.Errorf("domain id is required")
	}
	if d.Name == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	if len(d.Questions) == 0 {
		return nil, fmt.Errorf("domain %s has no questions", d.ID)
	}

	seen := make(map[string]bool, len(d.Questions))
	for i, q := range d.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("domain %s: question %d has no id", d.ID, i)
		}
		if q.Prompt == "" {
			return nil, fmt.Errorf("domain %s: question %s has no prompt", d.ID, q.ID)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("domain %s: duplicate question id %s", d.ID, q.ID)
		}
		seen[q.ID] = true
	}

	return &d, nil
}
