package download

import (
	"github.com/ytget/repo-downloader/internal/model"
)

// BuildPayload builds the completion notification for a classified outcome
func BuildPayload(outcome model.Outcome, label string) model.NotificationPayload {
	return model.NotificationPayload{
		Title:          model.NotificationTitle,
		Body:           label,
		DeepLinkLabel:  label,
		DeepLinkStatus: outcome.Status,
	}
}

// announce marks the transfer Done and delivers the notification. It never
// touches the transfer service.
func (c *Controller) announce(outcome model.Outcome, label string) {
	c.mu.Lock()
	c.state = model.StateDone
	c.mu.Unlock()

	c.publishState()

	if c.notifier == nil {
		return
	}
	payload := BuildPayload(outcome, label)
	if err := c.notifier.Deliver(payload); err != nil {
		c.log.Warn().Err(err).Str("label", label).Msg("notification delivery failed")
	}
}
