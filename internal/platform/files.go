package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	AndroidCommand  = "am"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// AndroidDownloadsDir is the shared Downloads folder on Android
const AndroidDownloadsDir = "/sdcard/Download"

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// ErrRemoteDestination is returned for bucket URLs that have no local path
var ErrRemoteDestination = errors.New("destination is not a local directory")

// runCommand is replaced in tests
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// lookPath is replaced in tests
var lookPath = exec.LookPath

// IsAndroid reports whether the process runs as a Fyne Android app
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so"
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	if IsAndroid() {
		return AndroidDownloadsDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// ArchivePath joins a local download directory with a bucket key
func ArchivePath(dir, key string) (string, error) {
	if strings.Contains(dir, "://") {
		return "", ErrRemoteDestination
	}
	return filepath.Join(dir, filepath.FromSlash(key)), nil
}

// OpenFileInManager opens the file manager at the archive
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	if IsAndroid() {
		return runCommand(AndroidCommand, "start", "-a", "android.intent.action.VIEW",
			"-d", "file://"+filepath.Dir(absPath))
	}

	switch runtime.GOOS {
	case OSDarwin:
		return runCommand(OpenCommand, MacOSSelectFlag, absPath)
	case OSWindows:
		return runCommand(ExplorerCommand, WindowsSelectParam, absPath)
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens the directory containing the file.
// File selection is not standardized on Linux.
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := runCommand(XDGOpenCommand, dir); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := lookPath(fm); err == nil {
			return runCommand(fm, dir)
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
