package download

import (
	"fmt"

	"github.com/ytget/repo-downloader/internal/model"
)

// HandleCompletion correlates a completion event with the pending transfer.
// Events for other handles, and repeats of an already processed event, are
// ignored. Every accepted event ends the in-flight state exactly once.
func (c *Controller) HandleCompletion(event model.CompletionEvent) {
	c.mu.Lock()
	if c.pending == nil || c.pending.Handle != event.Handle {
		pending := ""
		if c.pending != nil {
			pending = c.pending.Handle.String()
		}
		c.mu.Unlock()
		c.log.Debug().
			Err(ErrCorrelationMismatch).
			Str("handle", event.Handle.String()).
			Str("pending", pending).
			Msg("completion event ignored")
		return
	}

	// The pending entry is destroyed now so a duplicate event finds nothing.
	// The state stays InProgress until the outcome is announced.
	pending := *c.pending
	c.pending = nil
	c.mu.Unlock()

	outcome := c.resolveOutcome(pending.Handle)
	c.log.Info().
		Str("handle", pending.Handle.String()).
		Str("outcome", outcome.Kind.String()).
		Msg("transfer completed")

	c.announce(outcome, pending.Label)
}

// resolveOutcome queries the final status, classifying query failures as Failure
func (c *Controller) resolveOutcome(handle model.Handle) model.Outcome {
	status, err := c.transfers.QueryStatus(c.ctx, handle)
	if err != nil {
		c.log.Warn().
			Err(fmt.Errorf("%w: %v", ErrStatusQuery, err)).
			Str("handle", handle.String()).
			Msg("treating transfer as failed")
		return Classify(model.TransferUnknown)
	}
	return Classify(status)
}

// Classify maps a final transfer status to an outcome
func Classify(status model.TransferStatus) model.Outcome {
	if status == model.TransferSuccessful {
		return model.Outcome{Kind: model.OutcomeSuccess, Status: model.StatusTextSuccess}
	}
	return model.Outcome{Kind: model.OutcomeFailure, Status: model.StatusTextFailure}
}
