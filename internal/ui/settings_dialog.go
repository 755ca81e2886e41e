package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/repo-downloader/internal/config"
	"github.com/ytget/repo-downloader/internal/download"
)

// NotificationConsent reports and withdraws a stored notification grant
type NotificationConsent interface {
	IsAuthorized(capability string) bool
	Revoke(capability string)
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	consent      NotificationConsent
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog

	// Called after settings were saved
	OnSaved func()

	// UI components
	downloadDirEntry *widget.Entry
	userAgentEntry   *widget.Entry
	timeoutEntry     *widget.Entry
	languageSelect   *widget.Select
	notifyCheck      *widget.Check
}

// NewSettingsDialog creates a new settings dialog. consent may be nil.
func NewSettingsDialog(settings *config.Settings, consent NotificationConsent, window fyne.Window, localization *Localization) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		consent:      consent,
		window:       window,
		localization: localization,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("~/Downloads or s3://bucket")

	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.userAgentEntry = widget.NewEntry()

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(config.MinRequestTimeout) + "-" + strconv.Itoa(config.MaxRequestTimeout))

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	// Granting happens through the consent prompt on submit; here it can
	// only be withdrawn.
	sd.notifyCheck = widget.NewCheck(l.GetText(KeyAllowNotifications), nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyDownloadDirectory)),
		downloadDirRow,

		widget.NewLabel(l.GetText(KeyUserAgent)),
		sd.userAgentEntry,

		widget.NewLabel(l.GetText(KeyRequestTimeout)),
		sd.timeoutEntry,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)),
		sd.languageSelect,

		sd.notifyCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 380))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.userAgentEntry.SetText(sd.settings.GetUserAgent())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout() / time.Second)))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())

	granted := sd.consent != nil && sd.consent.IsAuthorized(download.CapabilityNotifications)
	sd.notifyCheck.SetChecked(granted)
	if granted {
		sd.notifyCheck.Enable()
	} else {
		sd.notifyCheck.Disable()
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save writes the entries back to the settings
func (sd *SettingsDialog) save() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	sd.settings.SetUserAgent(sd.userAgentEntry.Text)

	if seconds, err := strconv.Atoi(sd.timeoutEntry.Text); err == nil {
		sd.settings.SetRequestTimeout(time.Duration(seconds) * time.Second)
	}

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.consent != nil && !sd.notifyCheck.Checked && sd.consent.IsAuthorized(download.CapabilityNotifications) {
		sd.consent.Revoke(download.CapabilityNotifications)
	}

	if sd.OnSaved != nil {
		sd.OnSaved()
	}
}
