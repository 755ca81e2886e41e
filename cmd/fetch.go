package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ytget/repo-downloader/internal/config"
	"github.com/ytget/repo-downloader/internal/download"
	"github.com/ytget/repo-downloader/internal/logging"
	"github.com/ytget/repo-downloader/internal/model"
	"github.com/ytget/repo-downloader/internal/notify"
	"github.com/ytget/repo-downloader/internal/permission"
	"github.com/ytget/repo-downloader/internal/transfer"
)

// errFetchFailed is returned when the transfer finished unsuccessfully
var errFetchFailed = errors.New("download failed")

var (
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
)

type fetchOptions struct {
	allowNotifications bool
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{}

	fetchCmd := &cobra.Command{
		Use:   "fetch [repository name or archive URL]",
		Short: "Download one repository archive without the GUI",
		Long: "Download one repository archive without the GUI. The argument is a\n" +
			"catalog name (e.g. Glide) or an archive URL. Consent to the completion\n" +
			"notification is asked on stdin unless --allow-notifications is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, root, opts, args)
		},
	}

	fetchCmd.Flags().BoolVar(&opts.allowNotifications, "allow-notifications", false, "Grant notification consent without asking")
	return fetchCmd
}

// runFetch drives one submission through the controller and waits for the
// outcome to be announced
func runFetch(cmd *cobra.Command, root *rootOptions, opts *fetchOptions, args []string) error {
	logging.Init(root.debug)
	log := logging.Component("fetch")
	out := cmd.OutOrStdout()

	catalog, err := config.LoadCatalog(root.catalog)
	if err != nil {
		return err
	}
	selection, err := resolveTarget(catalog, args)
	if err != nil {
		return err
	}

	dest, err := defaultDest(root.dest)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	bucket, err := transfer.OpenBucket(ctx, dest)
	if err != nil {
		return err
	}
	defer bucket.Close()

	transfers := transfer.NewService(bucket, transfer.NewClient(root.clientConfig(cmd, transfer.ClientConfig{})))
	defer transfers.Close()

	var authorizer download.Authorizer = permission.Static{Granted: true}
	if !opts.allowNotifications {
		authorizer = permission.NewPreferenceAuthorizer(permission.NewMemoryStore(), &permission.StdinPrompter{
			In:   cmd.InOrStdin(),
			Out:  out,
			Done: ctx.Done(),
		})
	}

	notifier := newAwaitNotifier(notify.NewTerminalNotifier(out, true))
	controller := download.NewController(download.Options{
		Transfers:  transfers,
		Authorizer: authorizer,
		Notifier:   notifier,
		Surface:    newTerminalSurface(out),
	})
	controller.Start()
	defer controller.Close()

	if !selection.IsEmpty() {
		controller.SetSelection(selection.URL, selection.Label)
	}

	handle, err := controller.Submit(ctx)
	if err != nil {
		return &reportedError{err: err}
	}
	log.Debug().Str("handle", handle.String()).Str("dest", dest).Msg("waiting for completion")

	select {
	case <-notifier.delivered:
	case <-ctx.Done():
		return ctx.Err()
	}

	task, ok := transfers.GetTask(handle)
	if !ok || task.Status != model.TransferSuccessful {
		reason := "unknown transfer"
		if ok {
			reason = task.LastError
		}
		return &reportedError{err: fmt.Errorf("%w: %s", errFetchFailed, reason)}
	}
	return nil
}

// resolveTarget turns the argument into a selection. No argument leaves the
// selection empty so the controller reports it.
func resolveTarget(catalog []model.Repository, args []string) (model.Selection, error) {
	if len(args) == 0 {
		return model.Selection{}, nil
	}

	arg := strings.TrimSpace(args[0])
	if strings.Contains(arg, "://") {
		if _, err := url.Parse(arg); err != nil {
			return model.Selection{}, fmt.Errorf("invalid archive URL: %w", err)
		}
		return model.Selection{URL: arg, Label: arg}, nil
	}

	repo, ok := config.FindRepository(catalog, arg)
	if !ok {
		return model.Selection{}, fmt.Errorf("unknown repository %q", arg)
	}
	return repo.Selection(), nil
}

// terminalSurface prints controller messages and state changes
type terminalSurface struct {
	out io.Writer
	mu  sync.Mutex
}

var _ download.Surface = (*terminalSurface)(nil)

func newTerminalSurface(out io.Writer) *terminalSurface {
	return &terminalSurface{out: out}
}

func (s *terminalSurface) ShowMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, warningStyle.Render(text))
}

func (s *terminalSurface) SetVisibleState(state model.VisibleState) {
	if state != model.StateInProgress {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, pendingStyle.Render("We are loading..."))
}

// awaitNotifier closes delivered after the first delivery attempt, so the
// command exits only once the outcome was printed
type awaitNotifier struct {
	download.Notifier
	delivered chan struct{}
	once      sync.Once
}

func newAwaitNotifier(inner download.Notifier) *awaitNotifier {
	return &awaitNotifier{Notifier: inner, delivered: make(chan struct{})}
}

func (n *awaitNotifier) Deliver(payload model.NotificationPayload) error {
	defer n.once.Do(func() { close(n.delivered) })
	return n.Notifier.Deliver(payload)
}
