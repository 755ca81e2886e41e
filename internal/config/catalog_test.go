package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/repo-downloader/internal/model"
)

func TestLoadCatalog_Default(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(catalog) != len(model.DefaultRepositories()) {
		t.Errorf("Expected built-in catalog, got %d entries", len(catalog))
	}
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.yaml")
	data := `
- label: Fyne - Cross platform GUI toolkit
  url: https://github.com/fyne-io/fyne/archive/master.zip
- label: Cobra
  url: https://github.com/spf13/cobra/archive/main.zip
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(catalog))
	}
	if catalog[1].Label != "Cobra" || !strings.HasSuffix(catalog[1].URL, "main.zip") {
		t.Errorf("Unexpected entry %+v", catalog[1])
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		errPart string
	}{
		{"not yaml list", "label: x", "parsing"},
		{"empty", "[]", "no entries"},
		{"missing label", "- url: https://x/a.zip", "missing label"},
		{"missing url", "- label: A", "missing url"},
		{"duplicate", "- {label: A, url: https://x/a.zip}\n- {label: A, url: https://x/b.zip}", "duplicate"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(test.data))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), test.errPart) {
				t.Errorf("Expected error containing %q, got %v", test.errPart, err)
			}
		})
	}
}

func TestFindRepository(t *testing.T) {
	catalog := model.DefaultRepositories()

	tests := []struct {
		name  string
		found bool
	}{
		{"Glide", true},
		{"glide", true},
		{" retrofit ", true},
		{catalog[1].Label, true},
		{"Picasso", false},
	}

	for _, test := range tests {
		_, ok := FindRepository(catalog, test.name)
		if ok != test.found {
			t.Errorf("FindRepository(%q) found=%v, expected %v", test.name, ok, test.found)
		}
	}
}

func TestShortName(t *testing.T) {
	if got := ShortName("Glide - Image Loading Library by BumpTech"); got != "Glide" {
		t.Errorf("Expected 'Glide', got %q", got)
	}
	if got := ShortName("Cobra"); got != "Cobra" {
		t.Errorf("Expected 'Cobra', got %q", got)
	}
}
