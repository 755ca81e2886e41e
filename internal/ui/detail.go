package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/repo-downloader/internal/model"
)

// DetailView shows the file name and outcome of a finished download
type DetailView struct {
	Link model.DeepLink

	FileNameLabel *widget.Label
	StatusText    *canvas.Text
	OKButton      *widget.Button
	RevealButton  *widget.Button

	content fyne.CanvasObject
}

// NewDetailView builds the view. onReveal may be nil, then no reveal
// button is shown.
func NewDetailView(localization *Localization, link model.DeepLink, onOK, onReveal func()) *DetailView {
	v := &DetailView{Link: link}

	v.FileNameLabel = widget.NewLabel(link.FileName)
	v.FileNameLabel.Wrapping = fyne.TextWrapWord
	v.FileNameLabel.TextStyle = fyne.TextStyle{Bold: true}

	statusColor := theme.Color(theme.ColorNameError)
	if link.Status == model.StatusTextSuccess {
		statusColor = theme.Color(theme.ColorNameSuccess)
	}
	v.StatusText = canvas.NewText(link.Status, statusColor)
	v.StatusText.TextStyle = fyne.TextStyle{Bold: true}

	v.OKButton = widget.NewButton(localization.GetText(KeyOK), onOK)
	v.OKButton.Importance = widget.HighImportance

	buttons := container.NewHBox(v.OKButton)
	if onReveal != nil && link.Status == model.StatusTextSuccess {
		v.RevealButton = widget.NewButton(localization.GetText(KeyReveal), onReveal)
		buttons.Add(v.RevealButton)
	}

	form := container.New(
		layout.NewFormLayout(),
		widget.NewLabel(localization.GetText(KeyFileName)), v.FileNameLabel,
		widget.NewLabel(localization.GetText(KeyStatus)), v.StatusText,
	)

	v.content = container.NewBorder(nil, container.NewCenter(buttons), nil, nil, container.NewPadded(form))
	return v
}

// Content returns the root canvas object
func (v *DetailView) Content() fyne.CanvasObject {
	return v.content
}

// ShowDetailWindow opens the detail view in its own window. OK closes it
// and brings the main window back to front.
func ShowDetailWindow(app fyne.App, main fyne.Window, localization *Localization, link model.DeepLink, onReveal func()) fyne.Window {
	w := app.NewWindow(localization.GetText(KeyDetailTitle))
	view := NewDetailView(localization, link, func() {
		w.Close()
		if main != nil {
			main.RequestFocus()
		}
	}, onReveal)

	w.SetContent(view.Content())
	w.Resize(fyne.NewSize(DetailWindowWidth, DetailWindowHeight))
	w.Show()
	return w
}
