package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/repo-downloader/internal/model"
)

// LoadingButton is the single download button. It has three looks:
// Idle, InProgress with a progress fill and Done with a completed tint.
type LoadingButton struct {
	widget.BaseWidget

	localization *Localization
	state        model.VisibleState
	progress     float64

	OnTapped func()
}

var _ fyne.Tappable = (*LoadingButton)(nil)

// NewLoadingButton creates a button in the Idle look
func NewLoadingButton(localization *Localization, onTapped func()) *LoadingButton {
	b := &LoadingButton{
		localization: localization,
		state:        model.StateIdle,
		progress:     -1,
		OnTapped:     onTapped,
	}
	b.ExtendBaseWidget(b)
	return b
}

// Tapped forwards the tap. The button is never disabled, busy taps are
// rejected by the controller.
func (b *LoadingButton) Tapped(*fyne.PointEvent) {
	if b.OnTapped != nil {
		b.OnTapped()
	}
}

// SetState switches the look. Leaving InProgress clears the progress.
func (b *LoadingButton) SetState(state model.VisibleState) {
	if b.state == state {
		return
	}
	b.state = state
	if state != model.StateInProgress {
		b.progress = -1
	}
	b.Refresh()
}

// State returns the current look
func (b *LoadingButton) State() model.VisibleState {
	return b.state
}

// SetProgress sets the fill fraction, negative for unknown size
func (b *LoadingButton) SetProgress(progress float64) {
	if progress > 1 {
		progress = 1
	}
	b.progress = progress
	b.Refresh()
}

// Progress returns the fill fraction
func (b *LoadingButton) Progress() float64 {
	return b.progress
}

// Text returns the caption for the current look
func (b *LoadingButton) Text() string {
	if b.state == model.StateInProgress {
		if b.progress >= 0 {
			return b.localization.GetText(KeyLoading) + " " + fmt.Sprintf(ProgressLabelFormat, int(b.progress*100))
		}
		return b.localization.GetText(KeyLoading)
	}
	if b.state == model.StateDone {
		return IconPass + " " + b.localization.GetText(KeyDownload)
	}
	return b.localization.GetText(KeyDownload)
}

// CreateRenderer creates the widget renderer
func (b *LoadingButton) CreateRenderer() fyne.WidgetRenderer {
	r := &loadingButtonRenderer{
		button:     b,
		background: canvas.NewRectangle(theme.Color(ColorNameButtonIdle)),
		fill:       canvas.NewRectangle(theme.Color(ColorNameButtonProgress)),
		indicator:  canvas.NewCircle(theme.Color(ColorNameButtonDone)),
		label:      canvas.NewText("", theme.Color(ColorNameButtonText)),
	}
	r.label.TextStyle = fyne.TextStyle{Bold: true}
	r.label.Alignment = fyne.TextAlignCenter
	r.Refresh()
	return r
}

// loadingButtonRenderer renders the loading button
type loadingButtonRenderer struct {
	button     *LoadingButton
	background *canvas.Rectangle
	fill       *canvas.Rectangle
	indicator  *canvas.Circle
	label      *canvas.Text
}

// Layout arranges the components
func (r *loadingButtonRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.background.Move(fyne.NewPos(0, 0))

	progress := r.button.progress
	if progress < 0 {
		progress = 0
	}
	r.fill.Resize(fyne.NewSize(size.Width*float32(progress), size.Height))
	r.fill.Move(fyne.NewPos(0, 0))

	textSize := r.label.MinSize()
	r.label.Resize(fyne.NewSize(size.Width, textSize.Height))
	r.label.Move(fyne.NewPos(0, (size.Height-textSize.Height)/2))

	diameter := size.Height / 3
	textRight := (size.Width+textSize.Width)/2 + theme.Padding()*2
	r.indicator.Resize(fyne.NewSize(diameter, diameter))
	r.indicator.Move(fyne.NewPos(textRight, (size.Height-diameter)/2))
}

// MinSize returns the minimum size
func (r *loadingButtonRenderer) MinSize() fyne.Size {
	height := LoadingButtonMinHeight
	if fyne.CurrentDevice().IsMobile() {
		height = MobileButtonHeight
	}
	return fyne.NewSize(LoadingButtonMinWidth, height)
}

// Refresh refreshes the renderer
func (r *loadingButtonRenderer) Refresh() {
	b := r.button

	r.label.Text = b.Text()
	r.label.Color = theme.Color(ColorNameButtonText)

	switch b.state {
	case model.StateInProgress:
		r.background.FillColor = theme.Color(ColorNameButtonIdle)
		r.fill.Show()
		r.indicator.FillColor = theme.Color(theme.ColorNameWarning)
		r.indicator.Show()
	case model.StateDone:
		r.background.FillColor = theme.Color(ColorNameButtonDone)
		r.fill.Hide()
		r.indicator.Hide()
	default:
		r.background.FillColor = theme.Color(ColorNameButtonIdle)
		r.fill.Hide()
		r.indicator.Hide()
	}

	r.Layout(b.Size())
	canvas.Refresh(b)
}

// Objects returns the canvas objects
func (r *loadingButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.fill, r.label, r.indicator}
}

// Destroy cleans up the renderer
func (r *loadingButtonRenderer) Destroy() {}
