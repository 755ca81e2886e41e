package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/repo-downloader/internal/logging"
	"github.com/ytget/repo-downloader/internal/model"
)

// Request metadata passed with every transfer
const (
	DefaultRequestTitle       = "Repo Downloader"
	DefaultRequestDescription = "Downloading the selected repository archive"
)

// Options configures a Controller
type Options struct {
	Transfers  TransferService
	Authorizer Authorizer
	Notifier   Notifier
	Surface    Surface

	// Destination is the archive key inside the download bucket
	Destination string

	// Channel is created once before the first notification is needed
	Channel model.NotificationChannel

	// Messages maps Submit errors to user-visible text
	Messages func(error) string
}

// Controller coordinates selection, permission, submission, correlation and
// announcement of a single background transfer. State lives behind mu and
// is only changed by Submit and HandleCompletion.
type Controller struct {
	transfers TransferService
	notifier  Notifier
	surface   Surface
	gate      *PermissionGate

	destination string
	channel     model.NotificationChannel
	messages    func(error) string

	mu          sync.Mutex
	selection   *model.Selection
	pending     *model.PendingTransfer
	state       model.VisibleState
	authorizing bool
	closed      bool

	// ctx bounds status queries issued by the correlator
	ctx    context.Context
	cancel context.CancelFunc

	// publishMu orders surface updates. published is the last state sent.
	publishMu sync.Mutex
	published model.VisibleState

	subscription Subscription
	closeOnce    sync.Once
	channelOnce  sync.Once
	channelErr   error

	log zerolog.Logger
}

// NewController creates a controller. Call Start before submitting.
func NewController(opts Options) *Controller {
	if opts.Destination == "" {
		opts.Destination = model.DefaultDestination
	}
	if opts.Channel.ID == "" {
		opts.Channel = model.DefaultChannel
	}
	if opts.Messages == nil {
		opts.Messages = UserMessage
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		transfers:   opts.Transfers,
		notifier:    opts.Notifier,
		surface:     opts.Surface,
		gate:        NewPermissionGate(opts.Authorizer),
		destination: opts.Destination,
		channel:     opts.Channel,
		messages:    opts.Messages,
		state:       model.StateIdle,
		published:   model.StateIdle,
		ctx:         ctx,
		cancel:      cancel,
		log:         logging.Component("download"),
	}
}

// Start registers the completion listener. It is safe to call once.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subscription != nil || c.closed {
		return
	}
	c.subscription = c.transfers.Subscribe(c.HandleCompletion)
	c.log.Debug().Msg("completion listener registered")
}

// Close releases the completion listener exactly once. A transfer still in
// flight keeps running in the transfer service but is no longer observed.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		sub := c.subscription
		c.subscription = nil
		c.closed = true
		c.mu.Unlock()

		if sub != nil {
			sub.Unsubscribe()
		}
		c.cancel()
		c.log.Debug().Msg("completion listener released")
	})
}

// SetSelection stores the transfer target. Selecting while Done counts as
// the next user interaction and returns the state to Idle.
func (c *Controller) SetSelection(url, label string) {
	c.mu.Lock()
	c.selection = &model.Selection{URL: url, Label: label}
	reset := c.resetDoneLocked()
	c.mu.Unlock()

	c.log.Debug().Str("url", url).Str("label", label).Msg("selection changed")
	if reset {
		c.publishState()
	}
}

// CurrentSelection returns the stored selection, if any
func (c *Controller) CurrentSelection() (model.Selection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selection == nil {
		return model.Selection{}, false
	}
	return *c.selection, true
}

// State returns the current visible state
func (c *Controller) State() model.VisibleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns the in-flight transfer, if any
func (c *Controller) Pending() (model.PendingTransfer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return model.PendingTransfer{}, false
	}
	return *c.pending, true
}

// Submit validates the selection, waits for notification permission and
// hands the transfer to the transfer service. It blocks while the
// permission decision is outstanding; cancel ctx to give up waiting.
func (c *Controller) Submit(ctx context.Context) (model.Handle, error) {
	sel, err := c.beginSubmit()
	if err != nil {
		return "", c.reject(err)
	}

	if err := c.gate.EnsureAuthorized(ctx); err != nil {
		c.mu.Lock()
		c.authorizing = false
		c.mu.Unlock()
		return "", c.reject(err)
	}

	if err := c.ensureChannel(); err != nil {
		// Delivery may still work without a dedicated channel.
		c.log.Warn().Err(err).Str("channel", c.channel.ID).Msg("notification channel setup failed")
	}

	req := model.TransferRequest{
		URL:              sel.URL,
		Destination:      c.destination,
		Title:            DefaultRequestTitle,
		Description:      DefaultRequestDescription,
		AllowMetered:     true,
		AllowRoaming:     true,
		RequiresCharging: false,
	}

	// The lock is held across Submit so a fast completion cannot be
	// correlated before the handle is stored.
	c.mu.Lock()
	c.authorizing = false
	if c.closed {
		c.mu.Unlock()
		return "", c.reject(ErrClosed)
	}
	handle, err := c.transfers.Submit(req)
	if err != nil {
		c.mu.Unlock()
		return "", c.reject(fmt.Errorf("submit transfer: %w", err))
	}
	c.pending = &model.PendingTransfer{
		Handle:      handle,
		Label:       sel.Label,
		SubmittedAt: time.Now(),
	}
	c.state = model.StateInProgress
	c.mu.Unlock()

	c.log.Info().Str("handle", handle.String()).Str("label", sel.Label).Str("url", sel.URL).Msg("transfer submitted")
	c.publishState()
	return handle, nil
}

// beginSubmit runs the synchronous preconditions and captures the selection
func (c *Controller) beginSubmit() (model.Selection, error) {
	c.mu.Lock()
	reset := c.resetDoneLocked()

	var sel model.Selection
	var err error
	switch {
	case c.closed:
		err = ErrClosed
	case c.pending != nil || c.state.IsBusy() || c.authorizing:
		err = ErrAlreadyInProgress
	case c.selection == nil || c.selection.IsEmpty():
		err = ErrNoSelectionChosen
	default:
		sel = *c.selection
		c.authorizing = true
	}
	c.mu.Unlock()

	if reset {
		c.publishState()
	}
	return sel, err
}

// resetDoneLocked moves Done back to Idle. Callers hold mu.
func (c *Controller) resetDoneLocked() bool {
	if c.state != model.StateDone {
		return false
	}
	c.state = model.StateIdle
	return true
}

// reject surfaces a failed submission and returns err unchanged
func (c *Controller) reject(err error) error {
	c.log.Info().Err(err).Msg("submission rejected")
	if c.surface != nil {
		c.surface.ShowMessage(c.messages(err))
	}
	return err
}

// ensureChannel creates the notification channel once per controller
func (c *Controller) ensureChannel() error {
	c.channelOnce.Do(func() {
		if c.notifier != nil {
			c.channelErr = c.notifier.EnsureChannel(c.channel)
		}
	})
	return c.channelErr
}

// publishState sends the current state to the surface, skipping a repeat of
// the last state sent. It reads the state itself so late callers cannot
// overwrite a newer one.
func (c *Controller) publishState() {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	state := c.State()
	if state == c.published {
		return
	}
	c.published = state
	if c.surface != nil {
		c.surface.SetVisibleState(state)
	}
}
