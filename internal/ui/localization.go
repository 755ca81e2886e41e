package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyDownload           = "download"
	KeyLoading            = "loading"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyDownloadDirectory  = "download_directory"
	KeyUserAgent          = "user_agent"
	KeyRequestTimeout     = "request_timeout"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyDownloadCompleted  = "download_completed"
	KeyShowDetails        = "show_details"
	KeyDetailTitle        = "detail_title"
	KeyFileName           = "file_name"
	KeyStatus             = "status"
	KeyOK                 = "ok"
	KeyReveal             = "reveal"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyNoSelection        = "no_selection"
	KeyAlreadyInProgress  = "already_in_progress"
	KeyPermissionDenied   = "permission_denied"
	KeySubmitFailed       = "submit_failed"
	KeyConsentTitle       = "consent_title"
	KeyConsentMessage     = "consent_message"
	KeyChooseRepository   = "choose_repository"
	KeyAllowNotifications = "allow_notifications"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Repo Downloader",
		KeyDownload:           "Download",
		KeyLoading:            "We are loading",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyDownloadDirectory:  "Download Directory",
		KeyUserAgent:          "User Agent",
		KeyRequestTimeout:     "Request Timeout (seconds)",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyDownloadCompleted:  "Download Complete",
		KeyShowDetails:        "Show Details",
		KeyDetailTitle:        "Download Details",
		KeyFileName:           "File name:",
		KeyStatus:             "Status:",
		KeyOK:                 "OK",
		KeyReveal:             "Reveal",
		KeyErrorOpeningFile:   "Error opening file",
		KeyNoSelection:        "Please select the file to download",
		KeyAlreadyInProgress:  "A download is already in progress",
		KeyPermissionDenied:   "Notifications are disabled, download cancelled",
		KeySubmitFailed:       "Download could not be started",
		KeyConsentTitle:       "Notifications",
		KeyConsentMessage:     "Allow Repo Downloader to notify you when the download completes?",
		KeyChooseRepository:   "Choose a repository",
		KeyAllowNotifications: "Allow completion notifications",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Загрузчик репозиториев",
		KeyDownload:           "Скачать",
		KeyLoading:            "Загружаем",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyDownloadDirectory:  "Папка загрузки",
		KeyUserAgent:          "User Agent",
		KeyRequestTimeout:     "Таймаут запроса (секунды)",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyDownloadCompleted:  "Загрузка завершена",
		KeyShowDetails:        "Подробнее",
		KeyDetailTitle:        "Детали загрузки",
		KeyFileName:           "Имя файла:",
		KeyStatus:             "Статус:",
		KeyOK:                 "ОК",
		KeyReveal:             "Показать",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyNoSelection:        "Пожалуйста, выберите файл для загрузки",
		KeyAlreadyInProgress:  "Загрузка уже выполняется",
		KeyPermissionDenied:   "Уведомления отключены, загрузка отменена",
		KeySubmitFailed:       "Не удалось начать загрузку",
		KeyConsentTitle:       "Уведомления",
		KeyConsentMessage:     "Разрешить уведомление о завершении загрузки?",
		KeyChooseRepository:   "Выберите репозиторий",
		KeyAllowNotifications: "Разрешить уведомления о завершении",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Repo Downloader",
		KeyDownload:           "Baixar",
		KeyLoading:            "Estamos baixando",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyDownloadDirectory:  "Diretório de Download",
		KeyUserAgent:          "User Agent",
		KeyRequestTimeout:     "Tempo limite (segundos)",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Navegar",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyDownloadCompleted:  "Download concluído",
		KeyShowDetails:        "Ver detalhes",
		KeyDetailTitle:        "Detalhes do download",
		KeyFileName:           "Nome do arquivo:",
		KeyStatus:             "Status:",
		KeyOK:                 "OK",
		KeyReveal:             "Mostrar",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyNoSelection:        "Selecione o arquivo para baixar",
		KeyAlreadyInProgress:  "Um download já está em andamento",
		KeyPermissionDenied:   "Notificações desativadas, download cancelado",
		KeySubmitFailed:       "Não foi possível iniciar o download",
		KeyConsentTitle:       "Notificações",
		KeyConsentMessage:     "Permitir que o Repo Downloader avise quando o download terminar?",
		KeyChooseRepository:   "Escolha um repositório",
		KeyAllowNotifications: "Permitir notificações de conclusão",
	}
}
