package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/repo-downloader/internal/download"
	"github.com/ytget/repo-downloader/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // purple
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // cyan
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))            // dark green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))           // light grey
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Symbols used in terminal output
const (
	SymbolPass = "✓"
	SymbolFail = "✗"
	SymbolInfo = "ℹ"
)

// TerminalNotifier renders notifications for the headless command
type TerminalNotifier struct {
	out        io.Writer
	showDetail bool

	mu      sync.Mutex
	channel *model.NotificationChannel
}

var _ download.Notifier = (*TerminalNotifier)(nil)

// NewTerminalNotifier writes to out. With showDetail the detail view is
// printed right after the notification, as if it had been activated.
func NewTerminalNotifier(out io.Writer, showDetail bool) *TerminalNotifier {
	return &TerminalNotifier{out: out, showDetail: showDetail}
}

// EnsureChannel remembers the first channel it is given
func (n *TerminalNotifier) EnsureChannel(channel model.NotificationChannel) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.channel == nil {
		n.channel = &channel
	}
	return nil
}

// Deliver prints the notification
func (n *TerminalNotifier) Deliver(payload model.NotificationPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := fmt.Fprintln(n.out, RenderNotification(payload)); err != nil {
		return err
	}
	if n.showDetail {
		if _, err := fmt.Fprintln(n.out, RenderDetail(payload.DeepLink())); err != nil {
			return err
		}
	}
	return nil
}

// RenderNotification formats the notification banner
func RenderNotification(payload model.NotificationPayload) string {
	return titleStyle.Render(SymbolInfo+" "+payload.Title) + " " + bodyStyle.Render(payload.Body)
}

// RenderDetail formats the detail view of a deep link
func RenderDetail(link model.DeepLink) string {
	status := errorStyle.Render(SymbolFail + " " + link.Status)
	if link.Status == model.StatusTextSuccess {
		status = successStyle.Render(SymbolPass + " " + link.Status)
	}

	lines := []string{
		labelStyle.Render("File name: ") + link.FileName,
		labelStyle.Render("Status:    ") + status,
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
