package model

// Outcome status strings shown on the detail view
const (
	StatusTextSuccess = "download successfully"
	StatusTextFailure = "download failed"
)

// NotificationTitle is the fixed title of the completion notification
const NotificationTitle = "Download Complete"

// OutcomeKind classifies a finished transfer
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
)

// String returns the name of the outcome kind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "Success"
	case OutcomeFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// Outcome is the classified result of a correlated completion
type Outcome struct {
	Kind   OutcomeKind
	Status string
}

// NotificationChannel describes the delivery channel some platforms require
// before a notification can be posted
type NotificationChannel struct {
	ID           string
	Name         string
	Description  string
	HighPriority bool
}

// DefaultChannel is the process-wide channel for completion notifications
var DefaultChannel = NotificationChannel{
	ID:           "githubRepo_notification_channel",
	Name:         "Repository downloads",
	Description:  "Download is done!",
	HighPriority: true,
}

// NotificationPayload is handed to the notification service and not retained
type NotificationPayload struct {
	Title          string
	Body           string
	DeepLinkLabel  string
	DeepLinkStatus string
}

// DeepLink returns the data the detail view is opened with
func (p NotificationPayload) DeepLink() DeepLink {
	return DeepLink{FileName: p.DeepLinkLabel, Status: p.DeepLinkStatus}
}

// DeepLink is the data routed to the detail view when a notification is activated
type DeepLink struct {
	FileName string
	Status   string
}
