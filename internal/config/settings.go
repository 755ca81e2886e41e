package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/repo-downloader/internal/platform"
	"github.com/ytget/repo-downloader/internal/transfer"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeyLanguage       = "app_language"
	KeyUserAgent      = "user_agent"
	KeyRequestTimeout = "request_timeout_seconds"
	KeyCatalogPath    = "catalog_path"
)

// Default values
const (
	DefaultLanguage    = "system"
	DefaultDownloadDir = "/tmp/downloads"
)

// Request timeout bounds in seconds
const (
	MinRequestTimeout = 5
	MaxRequestTimeout = 3600
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// Preferences exposes the underlying store, used for permission grants
func (s *Settings) Preferences() fyne.Preferences {
	return s.app.Preferences()
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = DefaultDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory or bucket URL
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetUserAgent returns the user agent sent with archive requests
func (s *Settings) GetUserAgent() string {
	return s.app.Preferences().StringWithFallback(KeyUserAgent, transfer.DefaultUserAgent)
}

// SetUserAgent sets the user agent, empty restores the default
func (s *Settings) SetUserAgent(agent string) {
	if agent == "" {
		agent = transfer.DefaultUserAgent
	}
	s.app.Preferences().SetString(KeyUserAgent, agent)
}

// GetRequestTimeout returns the archive request timeout
func (s *Settings) GetRequestTimeout() time.Duration {
	seconds := s.app.Preferences().Int(KeyRequestTimeout)
	if seconds <= 0 {
		return transfer.DefaultTimeout
	}
	return time.Duration(seconds) * time.Second
}

// SetRequestTimeout sets the request timeout, clamped to sane bounds
func (s *Settings) SetRequestTimeout(timeout time.Duration) {
	seconds := int(timeout / time.Second)
	if seconds < MinRequestTimeout {
		seconds = MinRequestTimeout
	}
	if seconds > MaxRequestTimeout {
		seconds = MaxRequestTimeout
	}
	s.app.Preferences().SetInt(KeyRequestTimeout, seconds)
}

// GetCatalogPath returns the YAML catalog path, empty for the built-in list
func (s *Settings) GetCatalogPath() string {
	return s.app.Preferences().String(KeyCatalogPath)
}

// SetCatalogPath sets the YAML catalog path
func (s *Settings) SetCatalogPath(path string) {
	s.app.Preferences().SetString(KeyCatalogPath, path)
}

// ClientConfig builds the HTTP client configuration from the settings
func (s *Settings) ClientConfig() transfer.ClientConfig {
	return transfer.ClientConfig{
		Timeout:   s.GetRequestTimeout(),
		UserAgent: s.GetUserAgent(),
	}
}
