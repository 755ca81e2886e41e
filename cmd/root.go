package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	// Bucket drivers for --dest URLs
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/ytget/repo-downloader/internal/config"
	"github.com/ytget/repo-downloader/internal/download"
	"github.com/ytget/repo-downloader/internal/logging"
	"github.com/ytget/repo-downloader/internal/model"
	"github.com/ytget/repo-downloader/internal/notify"
	"github.com/ytget/repo-downloader/internal/permission"
	"github.com/ytget/repo-downloader/internal/platform"
	"github.com/ytget/repo-downloader/internal/transfer"
	"github.com/ytget/repo-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X github.com/ytget/repo-downloader/cmd.Version=X.Y.Z"
var Version = "dev"

const (
	AppID   = "com.ytget.repo-downloader"
	AppName = "Repo Downloader"

	WindowWidth  = 420
	WindowHeight = 640
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red

// reportedError has already been shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// rootOptions holds the flags shared by every command
type rootOptions struct {
	debug     bool
	catalog   string
	dest      string
	timeout   time.Duration
	kaTimeout time.Duration
	userAgent string
	proxyURL  string
}

// clientConfig merges the flags over base. Only flags set on the command
// line override base.
func (o *rootOptions) clientConfig(cmd *cobra.Command, base transfer.ClientConfig) transfer.ClientConfig {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		base.Timeout = o.timeout
	}
	if flags.Changed("keep-alive-timeout") {
		base.KATimeout = o.kaTimeout
	}
	if flags.Changed("user-agent") {
		base.UserAgent = o.userAgent
	}
	if o.proxyURL != "" {
		base.ProxyURL = o.proxyURL
	}
	return base
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "repo-downloader",
		Short:         "Download a repository archive and get notified when it is done",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVarP(&opts.catalog, "catalog", "l", "", "Path to YAML file with repositories ({label, url} entries)")
	flags.StringVarP(&opts.dest, "dest", "o", "", "Download directory or bucket URL (s3://, gs://, mem://)")
	flags.DurationVarP(&opts.timeout, "timeout", "t", transfer.DefaultTimeout, "Connect and response header timeout (eg. 30s, 5m)")
	flags.DurationVarP(&opts.kaTimeout, "keep-alive-timeout", "k", transfer.DefaultKATimeout, "Keep-alive timeout for client")
	flags.StringVarP(&opts.userAgent, "user-agent", "a", transfer.DefaultUserAgent, "User agent")
	flags.StringVarP(&opts.proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL")

	rootCmd.AddCommand(newFetchCmd(opts))
	return rootCmd
}

// Execute runs the command line
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}

// runGUI starts the Fyne application
func runGUI(cmd *cobra.Command, opts *rootOptions) error {
	logging.Init(opts.debug)
	log := logging.Component("main")
	log.Info().Str("version", Version).Msg("starting " + AppName)

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(ui.NewCompactTheme())
	settings := config.NewSettings(fyneApp)

	catalogPath := opts.catalog
	if catalogPath == "" {
		catalogPath = settings.GetCatalogPath()
	}
	catalog, err := config.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	dest := opts.dest
	if dest == "" {
		dest = settings.GetDownloadDirectory()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bucket, err := transfer.OpenBucket(ctx, dest)
	if err != nil {
		return err
	}
	defer bucket.Close()

	transfers := transfer.NewService(bucket, transfer.NewClient(opts.clientConfig(cmd, settings.ClientConfig())))
	defer transfers.Close()

	window := fyneApp.NewWindow(fmt.Sprintf("%s v%s", AppName, Version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	root := ui.NewRootUI(window, fyneApp, settings, catalog, dest, model.DefaultDestination)

	authorizer := permission.NewPreferenceAuthorizer(settings.Preferences(), ui.NewConsentPrompter(window, root.Localization()))
	root.SetNotificationConsent(authorizer)

	controller := download.NewController(download.Options{
		Transfers:  transfers,
		Authorizer: authorizer,
		Notifier:   notify.NewFyneNotifier(fyneApp, root.ShowDeepLink),
		Surface:    root,
		Messages:   root.UserMessage,
	})
	controller.Start()
	defer controller.Close()

	transfers.SetUpdateCallback(root.OnTransferUpdate)
	root.Bind(ctx, controller)

	log.Debug().Str("dest", dest).Int("repositories", len(catalog)).Msg("ready")
	window.ShowAndRun()
	return nil
}

// defaultDest returns the headless download directory
func defaultDest(dest string) (string, error) {
	if dest != "" {
		return dest, nil
	}
	return platform.GetHomeDownloadsDir()
}
