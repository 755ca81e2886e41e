package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/ytget/repo-downloader/internal/permission"
)

// ConsentPrompter asks for the notification capability with a confirm dialog
type ConsentPrompter struct {
	window       fyne.Window
	localization *Localization
}

var _ permission.Prompter = (*ConsentPrompter)(nil)

// NewConsentPrompter creates a prompter bound to the main window
func NewConsentPrompter(window fyne.Window, localization *Localization) *ConsentPrompter {
	return &ConsentPrompter{window: window, localization: localization}
}

// Prompt shows the dialog on the UI goroutine. It may be called from any
// goroutine.
func (p *ConsentPrompter) Prompt(_ string, onDecision func(bool)) {
	fyne.Do(func() {
		p.dialog(onDecision).Show()
	})
}

func (p *ConsentPrompter) dialog(onDecision func(bool)) *dialog.ConfirmDialog {
	d := dialog.NewConfirm(
		p.localization.GetText(KeyConsentTitle),
		p.localization.GetText(KeyConsentMessage),
		onDecision,
		p.window,
	)
	d.SetConfirmText(p.localization.GetText(KeyOK))
	d.SetDismissText(p.localization.GetText(KeyCancel))
	return d
}
