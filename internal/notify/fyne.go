package notify

import (
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"

	"github.com/ytget/repo-downloader/internal/download"
	"github.com/ytget/repo-downloader/internal/logging"
	"github.com/ytget/repo-downloader/internal/model"
)

// ErrNoChannel is returned when Deliver runs before any channel exists
var ErrNoChannel = errors.New("notification channel not created")

// DeepLinkHandler opens the detail view for an activated notification
type DeepLinkHandler func(link model.DeepLink)

// FyneNotifier posts notifications through a Fyne application
type FyneNotifier struct {
	app    fyne.App
	onLink DeepLinkHandler

	mu       sync.Mutex
	channels map[string]model.NotificationChannel

	log zerolog.Logger
}

var _ download.Notifier = (*FyneNotifier)(nil)

// NewFyneNotifier creates a notifier. onLink may be nil.
func NewFyneNotifier(app fyne.App, onLink DeepLinkHandler) *FyneNotifier {
	return &FyneNotifier{
		app:      app,
		onLink:   onLink,
		channels: make(map[string]model.NotificationChannel),
		log:      logging.Component("notify"),
	}
}

// EnsureChannel registers the channel once
func (n *FyneNotifier) EnsureChannel(channel model.NotificationChannel) error {
	if channel.ID == "" {
		return errors.New("notification channel id is empty")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.channels[channel.ID]; ok {
		return nil
	}
	n.channels[channel.ID] = channel
	n.log.Debug().Str("channel", channel.ID).Msg("notification channel created")
	return nil
}

// Deliver sends the OS notification and routes the deep link to the GUI
func (n *FyneNotifier) Deliver(payload model.NotificationPayload) error {
	n.mu.Lock()
	ready := len(n.channels) > 0
	n.mu.Unlock()
	if !ready {
		return ErrNoChannel
	}

	n.app.SendNotification(fyne.NewNotification(payload.Title, payload.Body))
	n.log.Info().
		Str("label", payload.DeepLinkLabel).
		Str("status", payload.DeepLinkStatus).
		Msg("notification delivered")

	if n.onLink != nil {
		n.onLink(payload.DeepLink())
	}
	return nil
}
