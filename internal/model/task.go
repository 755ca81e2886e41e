package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDestination is the archive location inside the download bucket
const DefaultDestination = "repos/repository.zip"

// Handle is the opaque correlation identifier returned by the transfer service
type Handle string

// String returns the string representation of Handle
func (h Handle) String() string {
	return string(h)
}

// Selection is the currently chosen transfer target
type Selection struct {
	URL   string
	Label string
}

// IsEmpty reports whether the selection has no usable target
func (s Selection) IsEmpty() bool {
	return strings.TrimSpace(s.URL) == ""
}

// PendingTransfer is the single in-flight transfer owned by the controller
type PendingTransfer struct {
	Handle      Handle
	Label       string
	SubmittedAt time.Time
}

// TransferRequest describes a transfer handed to the transfer service
type TransferRequest struct {
	URL              string
	Destination      string // object key inside the download bucket
	Title            string
	Description      string
	AllowMetered     bool
	AllowRoaming     bool
	RequiresCharging bool
}

// TransferTask is the transfer service's record of a submitted request
type TransferTask struct {
	Handle     Handle
	Request    TransferRequest
	Status     TransferStatus
	Downloaded int64 // bytes written so far
	Total      int64 // content length, -1 if unknown
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// CompletionEvent is published when a submitted transfer finishes
type CompletionEvent struct {
	Handle Handle
}

// Progress returns completion as 0.0 to 1.0, or -1 if the size is unknown
func (t *TransferTask) Progress() float64 {
	if t.Total <= 0 {
		return -1
	}
	p := float64(t.Downloaded) / float64(t.Total)
	if p > 1 {
		return 1
	}
	return p
}

// GetDisplayTitle returns title, destination, or URL in order of preference
func (t *TransferTask) GetDisplayTitle() string {
	if t.Request.Title != "" {
		return t.Request.Title
	}
	if t.Request.Destination != "" {
		parts := strings.Split(t.Request.Destination, "/")
		return parts[len(parts)-1]
	}
	return t.Request.URL
}

// String returns a compact description used in logs
func (t *TransferTask) String() string {
	return fmt.Sprintf("%s[%s %d/%d]", t.Handle, t.Status, t.Downloaded, t.Total)
}
