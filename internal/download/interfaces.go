package download

import (
	"context"

	"github.com/ytget/repo-downloader/internal/model"
)

// CapabilityNotifications is the capability the gate checks before a
// transfer is submitted
const CapabilityNotifications = "post_notifications"

// TransferService defines the interface for the background transfer engine.
type TransferService interface {
	// Submit hands a request to the engine and returns its correlation handle.
	// Completion events must not be published synchronously from Submit.
	Submit(req model.TransferRequest) (model.Handle, error)

	// QueryStatus reports the final status of a submitted transfer.
	QueryStatus(ctx context.Context, handle model.Handle) (model.TransferStatus, error)

	// Subscribe registers fn for completion events until the subscription is released.
	Subscribe(fn func(model.CompletionEvent)) Subscription
}

// Subscription is a registered completion listener.
type Subscription interface {
	Unsubscribe()
}

// Authorizer defines the interface for the permission subsystem.
type Authorizer interface {
	IsAuthorized(capability string) bool

	// RequestAuthorization asks the user once. onDecision fires at most once,
	// asynchronously, and possibly never.
	RequestAuthorization(capability string, onDecision func(granted bool))
}

// Notifier defines the interface for the notification service.
type Notifier interface {
	// EnsureChannel creates the delivery channel if the platform needs one.
	// Repeated calls are no-ops.
	EnsureChannel(channel model.NotificationChannel) error

	// Deliver posts the payload. DeepLinkLabel and DeepLinkStatus are
	// forwarded verbatim to whatever opens the detail view.
	Deliver(payload model.NotificationPayload) error
}

// Surface is the user-facing side of the controller.
type Surface interface {
	ShowMessage(text string)
	SetVisibleState(state model.VisibleState)
}
