package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	// Should end with "Downloads"
	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	// Check that error contains the expected message
	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileInManager_WithExistingFile(t *testing.T) {
	// Create a temporary file
	tempFile, err := os.CreateTemp("", "test_file_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	// This test just verifies the function doesn't panic and handles the file path
	// We can't really test the actual opening without user interaction
	err = OpenFileInManager(tempFile.Name())

	// On CI or headless systems, this might fail, which is expected
	// We're mainly testing that the function handles the path correctly
	if err != nil {
		t.Logf("OpenFileInManager failed (expected on headless systems): %v", err)
	}
}

func TestOpenFileInManager_Linux(t *testing.T) {
	if runtime.GOOS != OSLinux || IsAndroid() {
		t.Skip("linux only")
	}

	var calls [][]string
	origRun, origLook := runCommand, lookPath
	defer func() { runCommand, lookPath = origRun, origLook }()

	runCommand = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		if name == XDGOpenCommand {
			return errors.New("no display")
		}
		return nil
	}
	lookPath = func(file string) (string, error) {
		if file == "thunar" {
			return "/usr/bin/thunar", nil
		}
		return "", errors.New("not found")
	}

	dir := t.TempDir()
	archive := filepath.Join(dir, "repository.zip")
	if err := os.WriteFile(archive, []byte("zip"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := OpenFileInManager(archive); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("Expected xdg-open then fallback, got %v", calls)
	}
	if calls[1][0] != "thunar" || calls[1][1] != dir {
		t.Errorf("Expected thunar on %s, got %v", dir, calls[1])
	}
}

func TestArchivePath(t *testing.T) {
	tests := []struct {
		dir      string
		key      string
		expected string
		wantErr  bool
	}{
		{"/home/u/Downloads", "repos/repository.zip", filepath.Join("/home/u/Downloads", "repos", "repository.zip"), false},
		{"relative", "a.zip", filepath.Join("relative", "a.zip"), false},
		{"s3://bucket", "repos/repository.zip", "", true},
	}

	for _, test := range tests {
		got, err := ArchivePath(test.dir, test.key)
		if test.wantErr {
			if !errors.Is(err, ErrRemoteDestination) {
				t.Errorf("ArchivePath(%q) expected ErrRemoteDestination, got %v", test.dir, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ArchivePath(%q) unexpected error %v", test.dir, err)
		}
		if got != test.expected {
			t.Errorf("ArchivePath(%q, %q) = %q, expected %q", test.dir, test.key, got, test.expected)
		}
	}
}
