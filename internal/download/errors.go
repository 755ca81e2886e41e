package download

import "errors"

var (
	// ErrNoSelectionChosen is returned by Submit when nothing was selected.
	ErrNoSelectionChosen = errors.New("download: no repository selected")

	// ErrAlreadyInProgress is returned by Submit while a transfer is pending.
	ErrAlreadyInProgress = errors.New("download: a transfer is already in progress")

	// ErrAuthorizationDenied is returned when the user refused notifications.
	ErrAuthorizationDenied = errors.New("download: notification permission denied")

	// ErrCorrelationMismatch marks a completion event for a stale or foreign handle.
	ErrCorrelationMismatch = errors.New("download: completion handle does not match pending transfer")

	// ErrStatusQuery wraps failures of the transfer service status query.
	ErrStatusQuery = errors.New("download: status query failed")

	// ErrClosed is returned by Submit after the controller was closed.
	ErrClosed = errors.New("download: controller closed")
)

// UserMessage returns the transient message shown for a Submit error
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoSelectionChosen):
		return "Please select the file to download"
	case errors.Is(err, ErrAlreadyInProgress):
		return "A download is already in progress"
	case errors.Is(err, ErrAuthorizationDenied):
		return "Notifications are disabled, download cancelled"
	case err == nil:
		return ""
	default:
		return "Download could not be started: " + err.Error()
	}
}
