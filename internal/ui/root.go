package ui

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/repo-downloader/internal/config"
	"github.com/ytget/repo-downloader/internal/download"
	"github.com/ytget/repo-downloader/internal/logging"
	"github.com/ytget/repo-downloader/internal/model"
	"github.com/ytget/repo-downloader/internal/platform"
)

// Downloader is the part of the download controller the UI drives
type Downloader interface {
	SetSelection(url, label string)
	Submit(ctx context.Context) (model.Handle, error)
	Pending() (model.PendingTransfer, bool)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	catalog      []model.Repository
	downloadDir  string
	destination  string

	controller Downloader
	consent    NotificationConsent
	ctx        context.Context

	header      *widget.Label
	repoGroup   *widget.RadioGroup
	button      *LoadingButton
	detailsOpen fyne.Window

	// Message panel under the button
	messageLabel     *widget.Label
	messageContainer *fyne.Container
	messageMutex     sync.Mutex
	messageSeq       int

	log zerolog.Logger
}

var _ download.Surface = (*RootUI)(nil)

// NewRootUI creates and initializes the main UI. downloadDir is the
// directory or bucket URL transfers are written to, destination the archive
// key inside it. Bind must be called before the user can submit.
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, catalog []model.Repository, downloadDir, destination string) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if destination == "" {
		destination = model.DefaultDestination
	}

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		catalog:      catalog,
		downloadDir:  downloadDir,
		destination:  destination,
		ctx:          context.Background(),
		log:          logging.Component("ui"),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// Bind attaches the controller. ctx bounds every submission, including the
// wait for the consent dialog.
func (ui *RootUI) Bind(ctx context.Context, controller Downloader) {
	ui.ctx = ctx
	ui.controller = controller
}

// SetNotificationConsent lets the settings dialog withdraw a notification grant
func (ui *RootUI) SetNotificationConsent(consent NotificationConsent) {
	ui.consent = consent
}

// Localization returns the active translations
func (ui *RootUI) Localization() *Localization {
	return ui.localization
}

// Button returns the loading button
func (ui *RootUI) Button() *LoadingButton {
	return ui.button
}

// RepositoryGroup returns the repository radio group
func (ui *RootUI) RepositoryGroup() *widget.RadioGroup {
	return ui.repoGroup
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	var logo fyne.CanvasObject = widget.NewLabel("")
	if res, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(res)
		img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		img.FillMode = canvas.ImageFillContain
		logo = img
	}

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.header = widget.NewLabel(ui.localization.GetText(KeyChooseRepository))
	ui.header.TextStyle = fyne.TextStyle{Bold: true}

	labels := make([]string, 0, len(ui.catalog))
	for _, repo := range ui.catalog {
		labels = append(labels, repo.Label)
	}
	ui.repoGroup = widget.NewRadioGroup(labels, ui.onRepositoryChanged)
	ui.repoGroup.Required = true

	ui.button = NewLoadingButton(ui.localization, ui.onDownloadClick)

	ui.messageLabel = widget.NewLabel("")
	ui.messageLabel.Wrapping = fyne.TextWrapWord
	ui.messageContainer = container.NewPadded(ui.messageLabel)
	ui.messageContainer.Hide()

	top := container.NewBorder(nil, nil, nil, settingsBtn, container.NewCenter(logo))
	body := container.NewVBox(
		ui.header,
		ui.repoGroup,
	)
	bottom := container.NewVBox(ui.messageContainer, ui.button)

	ui.window.SetContent(container.NewBorder(top, container.NewPadded(bottom), nil, nil, container.NewVScroll(body)))
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		langCode := code
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.header.SetText(ui.localization.GetText(KeyChooseRepository))
	ui.button.Refresh()
}

// onRepositoryChanged records the chosen repository
func (ui *RootUI) onRepositoryChanged(label string) {
	if label == "" || ui.controller == nil {
		return
	}
	for _, repo := range ui.catalog {
		if repo.Label == label {
			ui.controller.SetSelection(repo.URL, repo.Label)
			return
		}
	}
}

// onDownloadClick submits in the background. The controller may wait for
// the consent dialog, which needs the UI goroutine to stay free.
func (ui *RootUI) onDownloadClick() {
	if ui.controller == nil {
		return
	}
	ctx := ui.ctx
	go func() {
		handle, err := ui.controller.Submit(ctx)
		if err != nil {
			ui.log.Debug().Err(err).Msg("submit rejected")
			return
		}
		ui.log.Info().Str("handle", handle.String()).Msg("download started")
	}()
}

// ShowMessage displays a short message under the button. It may be called
// from any goroutine.
func (ui *RootUI) ShowMessage(text string) {
	ui.messageMutex.Lock()
	ui.messageSeq++
	seq := ui.messageSeq
	ui.messageMutex.Unlock()

	fyne.Do(func() {
		ui.messageLabel.SetText(text)
		ui.messageContainer.Show()
	})

	go func() {
		time.Sleep(MessageAutoHide)
		ui.messageMutex.Lock()
		latest := seq == ui.messageSeq
		ui.messageMutex.Unlock()
		if latest {
			fyne.Do(ui.messageContainer.Hide)
		}
	}()
}

// SetVisibleState switches the loading button look. It may be called from
// any goroutine.
func (ui *RootUI) SetVisibleState(state model.VisibleState) {
	fyne.Do(func() {
		ui.button.SetState(state)
	})
}

// OnTransferUpdate reflects progress of the pending transfer on the button
func (ui *RootUI) OnTransferUpdate(task *model.TransferTask) {
	if ui.controller == nil || task == nil || !task.Status.IsActive() {
		return
	}
	pending, ok := ui.controller.Pending()
	if !ok || pending.Handle != task.Handle {
		return
	}
	progress := task.Progress()
	fyne.Do(func() {
		if ui.button.State() == model.StateInProgress {
			ui.button.SetProgress(progress)
		}
	})
}

// ShowDeepLink presents an activated notification. It may be called from
// any goroutine.
func (ui *RootUI) ShowDeepLink(link model.DeepLink) {
	fyne.Do(func() {
		toast := NewToast(ui.window.Canvas(), ui.localization, link, ui.openDetails)
		toast.Show(ui.window.Canvas())
	})
}

// openDetails opens the detail window for link, replacing an open one
func (ui *RootUI) openDetails(link model.DeepLink) {
	if ui.detailsOpen != nil {
		ui.detailsOpen.Close()
	}
	ui.detailsOpen = ShowDetailWindow(ui.app, ui.window, ui.localization, link, ui.revealArchive)
}

// ArchivePath returns the local path of the downloaded archive
func (ui *RootUI) ArchivePath() (string, error) {
	return platform.ArchivePath(ui.downloadDir, ui.destination)
}

// revealArchive opens the file manager at the downloaded archive
func (ui *RootUI) revealArchive() {
	path, err := ui.ArchivePath()
	if err == nil {
		err = platform.OpenFileInManager(path)
	}
	if err != nil {
		ui.log.Warn().Err(err).Msg("reveal archive")
		dialog.ShowError(errors.New(ui.localization.GetText(KeyErrorOpeningFile)), ui.window)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.consent, ui.window, ui.localization)
	sd.OnSaved = func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}
	sd.Show()
}

// UserMessage maps a submit error to localized text
func (ui *RootUI) UserMessage(err error) string {
	switch {
	case errors.Is(err, download.ErrNoSelectionChosen):
		return ui.localization.GetText(KeyNoSelection)
	case errors.Is(err, download.ErrAlreadyInProgress):
		return ui.localization.GetText(KeyAlreadyInProgress)
	case errors.Is(err, download.ErrAuthorizationDenied):
		return ui.localization.GetText(KeyPermissionDenied)
	default:
		return ui.localization.GetText(KeySubmitFailed) + ": " + err.Error()
	}
}
