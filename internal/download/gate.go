package download

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/repo-downloader/internal/logging"
)

// PermissionGate makes sure notifications can be delivered before a transfer starts
type PermissionGate struct {
	authorizer Authorizer
	capability string
	log        zerolog.Logger
}

// NewPermissionGate creates a gate for the notification capability
func NewPermissionGate(authorizer Authorizer) *PermissionGate {
	return &PermissionGate{
		authorizer: authorizer,
		capability: CapabilityNotifications,
		log:        logging.Component("permission-gate"),
	}
}

// decision is a one-shot resolution of a single authorization request
type decision struct {
	once sync.Once
	ch   chan bool
}

func newDecision() *decision {
	return &decision{ch: make(chan bool, 1)}
}

// resolve records the first decision; later calls are ignored
func (d *decision) resolve(granted bool) bool {
	resolved := false
	d.once.Do(func() {
		d.ch <- granted
		resolved = true
	})
	return resolved
}

// EnsureAuthorized returns nil once the capability is granted. It blocks
// until the user decides or ctx is done.
func (g *PermissionGate) EnsureAuthorized(ctx context.Context) error {
	if g.authorizer == nil || g.authorizer.IsAuthorized(g.capability) {
		return nil
	}

	d := newDecision()
	g.log.Debug().Str("capability", g.capability).Msg("requesting authorization")
	g.authorizer.RequestAuthorization(g.capability, func(granted bool) {
		if !d.resolve(granted) {
			g.log.Debug().Bool("granted", granted).Msg("duplicate authorization decision ignored")
		}
	})

	select {
	case granted := <-d.ch:
		if !granted {
			g.log.Info().Msg("authorization denied")
			return ErrAuthorizationDenied
		}
		g.log.Debug().Msg("authorization granted")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
