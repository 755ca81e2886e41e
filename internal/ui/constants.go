package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconPass     = "✓"
	IconFail     = "✗"
)

// Text fragments
const (
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	LoadingButtonMinWidth  float32 = 280
	LoadingButtonMinHeight float32 = 56
	MobileButtonHeight     float32 = 64
	LogoSize               float32 = 96
	DetailWindowWidth      float32 = 420
	DetailWindowHeight     float32 = 220
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 320
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Message panel behavior
const (
	MessageAutoHide = 3 * time.Second
)
