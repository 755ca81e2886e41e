package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/repo-downloader/internal/model"
)

// Toast is the in-app completion notification
type Toast struct {
	TitleLabel   *widget.Label
	MessageLabel *widget.Label
	DetailsBtn   *widget.Button
	CloseBtn     *widget.Button

	popup *widget.PopUp
}

// NewToast builds the toast for a deep link. "Show Details" hides the toast
// and calls onShowDetails with the link unchanged.
func NewToast(canvas fyne.Canvas, localization *Localization, link model.DeepLink, onShowDetails func(model.DeepLink)) *Toast {
	t := &Toast{}

	t.TitleLabel = widget.NewLabel(localization.GetText(KeyDownloadCompleted))
	t.TitleLabel.TextStyle = fyne.TextStyle{Bold: true}

	t.MessageLabel = widget.NewLabel(link.FileName)
	t.MessageLabel.Truncation = fyne.TextTruncateEllipsis

	t.DetailsBtn = widget.NewButton(localization.GetText(KeyShowDetails), func() {
		t.Hide()
		if onShowDetails != nil {
			onShowDetails(link)
		}
	})
	t.DetailsBtn.Importance = widget.HighImportance

	t.CloseBtn = widget.NewButton(IconClose, t.Hide)
	t.CloseBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, t.TitleLabel, t.CloseBtn)
	content := container.NewVBox(header, t.MessageLabel, container.NewHBox(t.DetailsBtn))

	t.popup = widget.NewPopUp(content, canvas)
	return t
}

// Show places the toast in the top-right corner and hides it after
// ToastAutoHide
func (t *Toast) Show(canvas fyne.Canvas) {
	canvasSize := canvas.Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	t.popup.Resize(toastSize)
	t.popup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
	t.popup.Show()

	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(t.Hide)
	}()
}

// Hide dismisses the toast
func (t *Toast) Hide() {
	t.popup.Hide()
}

// Visible reports whether the toast is shown
func (t *Toast) Visible() bool {
	return t.popup.Visible()
}
