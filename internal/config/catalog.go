package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ytget/repo-downloader/internal/logging"
	"github.com/ytget/repo-downloader/internal/model"
)

// LoadCatalog reads the repository list from a YAML file.
// An empty path returns the built-in repositories.
func LoadCatalog(path string) ([]model.Repository, error) {
	if path == "" {
		return model.DefaultRepositories(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML list of {label, url} entries
func ParseCatalog(data []byte) ([]model.Repository, error) {
	log := logging.Component("config")

	var entries []model.Repository
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing catalog file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog has no entries")
	}

	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.Label) == "" {
			return nil, fmt.Errorf("missing label for entry %d", i+1)
		}
		if strings.TrimSpace(entry.URL) == "" {
			return nil, fmt.Errorf("missing url for entry %d", i+1)
		}
		if seen[entry.Label] {
			return nil, fmt.Errorf("duplicate label %q at entry %d", entry.Label, i+1)
		}
		seen[entry.Label] = true
	}

	log.Debug().Int("count", len(entries)).Msg("catalog loaded")
	return entries, nil
}

// FindRepository returns the catalog entry matching name. Both the full
// label and its short name ("Glide" for "Glide - Image Loading...") match.
func FindRepository(catalog []model.Repository, name string) (model.Repository, bool) {
	name = strings.TrimSpace(name)
	for _, repo := range catalog {
		if strings.EqualFold(repo.Label, name) || strings.EqualFold(ShortName(repo.Label), name) {
			return repo, true
		}
	}
	return model.Repository{}, false
}

// ShortName returns the label up to its first " - " separator
func ShortName(label string) string {
	short, _, _ := strings.Cut(label, " - ")
	return strings.TrimSpace(short)
}
