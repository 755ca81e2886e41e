package ui

// Package ui contains the Fyne user interface: the repository list, the
// loading button, the toast and detail view opened from a completion
// notification, the consent dialog and settings. All UI strings are
// localized via Localization.
