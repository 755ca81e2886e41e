package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gocloud.dev/blob"

	"github.com/ytget/repo-downloader/internal/download"
	"github.com/ytget/repo-downloader/internal/logging"
	"github.com/ytget/repo-downloader/internal/model"
)

// Transfer engine constants
const (
	HandlePrefix      = "transfer-"
	ProgressInterval  = 250 * time.Millisecond
	ArchiveMIMEType   = "application/zip"
	MetadataSourceURL = "source_url"
	MetadataTitle     = "title"
)

var (
	// ErrUnknownHandle is returned by QueryStatus for handles it never issued
	ErrUnknownHandle = errors.New("transfer: unknown handle")

	// ErrServiceClosed is returned by Submit after Close
	ErrServiceClosed = errors.New("transfer: service closed")
)

// Service fetches archives over HTTP into a blob bucket in the background
// and publishes a completion event for every submitted request.
type Service struct {
	tasks      map[model.Handle]*model.TransferTask
	tasksMutex sync.RWMutex
	bucket     *blob.Bucket
	client     HTTPDoer
	onUpdate   func(*model.TransferTask) // callback for UI progress
	closed     bool

	subsMutex   sync.Mutex
	subscribers map[uint64]func(model.CompletionEvent)
	nextSubID   uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	log zerolog.Logger
}

var _ download.TransferService = (*Service)(nil)

// NewService creates a transfer service writing into bucket
func NewService(bucket *blob.Bucket, client HTTPDoer) *Service {
	if client == nil {
		client = NewClient(ClientConfig{})
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		tasks:       make(map[model.Handle]*model.TransferTask),
		bucket:      bucket,
		client:      client,
		subscribers: make(map[uint64]func(model.CompletionEvent)),
		ctx:         ctx,
		cancel:      cancel,
		log:         logging.Component("transfer"),
	}
}

// SetUpdateCallback sets the callback function for progress updates
func (s *Service) SetUpdateCallback(callback func(*model.TransferTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// Submit registers the request and starts fetching it in the background
func (s *Service) Submit(req model.TransferRequest) (model.Handle, error) {
	if err := validateURL(req.URL); err != nil {
		return "", err
	}
	if req.Destination == "" {
		req.Destination = model.DefaultDestination
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	if s.closed {
		return "", ErrServiceClosed
	}

	task := &model.TransferTask{
		Handle:    generateHandle(),
		Request:   req,
		Status:    model.TransferPending,
		Total:     -1,
		StartedAt: time.Now(),
	}
	s.tasks[task.Handle] = task

	s.wg.Add(1)
	go s.run(task)

	s.log.Debug().Str("handle", task.Handle.String()).Str("url", req.URL).Msg("transfer accepted")
	return task.Handle, nil
}

// QueryStatus returns the current status of a submitted transfer
func (s *Service) QueryStatus(ctx context.Context, handle model.Handle) (model.TransferStatus, error) {
	if err := ctx.Err(); err != nil {
		return model.TransferUnknown, err
	}

	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	task, exists := s.tasks[handle]
	if !exists {
		return model.TransferUnknown, fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	return task.Status, nil
}

// GetTask returns a snapshot of a submitted transfer
func (s *Service) GetTask(handle model.Handle) (*model.TransferTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	task, exists := s.tasks[handle]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// Subscribe registers fn for completion events. fn runs on the worker
// goroutine of the finished transfer.
func (s *Service) Subscribe(fn func(model.CompletionEvent)) download.Subscription {
	s.subsMutex.Lock()
	defer s.subsMutex.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return &subscription{service: s, id: id}
}

// Close cancels running transfers and waits for their workers to exit
func (s *Service) Close() {
	s.tasksMutex.Lock()
	s.closed = true
	s.tasksMutex.Unlock()

	s.cancel()
	s.wg.Wait()
}

type subscription struct {
	service *Service
	id      uint64
	once    sync.Once
}

// Unsubscribe removes the listener; repeated calls are no-ops
func (sub *subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.service.subsMutex.Lock()
		delete(sub.service.subscribers, sub.id)
		sub.service.subsMutex.Unlock()
	})
}

// run fetches one archive and publishes its completion
func (s *Service) run(task *model.TransferTask) {
	defer s.wg.Done()

	s.setStatus(task, model.TransferRunning, nil)

	err := s.fetch(s.ctx, task)

	if err != nil {
		s.log.Warn().Err(err).Str("handle", task.Handle.String()).Msg("transfer failed")
		s.setStatus(task, model.TransferFailed, err)
	} else {
		s.log.Info().Str("handle", task.Handle.String()).Str("title", task.GetDisplayTitle()).Msg("transfer finished")
		s.setStatus(task, model.TransferSuccessful, nil)
	}

	s.publish(model.CompletionEvent{Handle: task.Handle})
}

// fetch streams the request URL into the bucket destination
func (s *Service) fetch(ctx context.Context, task *model.TransferTask) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.Request.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", task.Request.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %s", task.Request.URL, resp.Status)
	}

	s.tasksMutex.Lock()
	task.Total = resp.ContentLength
	s.tasksMutex.Unlock()

	// Cancelling wctx before Close discards the partial object.
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(wctx, task.Request.Destination, &blob.WriterOptions{
		ContentType: ArchiveMIMEType,
		Metadata: map[string]string{
			MetadataSourceURL: task.Request.URL,
			MetadataTitle:     task.Request.Title,
		},
	})
	if err != nil {
		return fmt.Errorf("open destination %s: %w", task.Request.Destination, err)
	}

	pw := &progressWriter{w: w, service: s, task: task}
	if _, err := io.Copy(pw, resp.Body); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("copy body: %w", err)
	}
	pw.flush()

	if err := w.Close(); err != nil {
		return fmt.Errorf("close destination %s: %w", task.Request.Destination, err)
	}
	return nil
}

// setStatus updates the task status and notifies the update callback
func (s *Service) setStatus(task *model.TransferTask, status model.TransferStatus, err error) {
	s.tasksMutex.Lock()
	task.Status = status
	if err != nil {
		task.LastError = err.Error()
	}
	if status.IsFinished() {
		task.FinishedAt = time.Now()
	}
	snapshot := *task
	callback := s.onUpdate
	s.tasksMutex.Unlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// publish delivers a completion event to every current subscriber
func (s *Service) publish(event model.CompletionEvent) {
	s.subsMutex.Lock()
	subs := make([]func(model.CompletionEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subsMutex.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// progressWriter counts written bytes and reports progress periodically
type progressWriter struct {
	w          io.Writer
	service    *Service
	task       *model.TransferTask
	written    int64
	lastReport time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.written += int64(n)
	if time.Since(pw.lastReport) >= ProgressInterval {
		pw.flush()
	}
	return n, err
}

// flush records the byte count and notifies the update callback
func (pw *progressWriter) flush() {
	s := pw.service
	s.tasksMutex.Lock()
	pw.task.Downloaded = pw.written
	snapshot := *pw.task
	callback := s.onUpdate
	s.tasksMutex.Unlock()

	pw.lastReport = time.Now()
	if callback != nil {
		callback(&snapshot)
	}
}

// validateURL accepts absolute http and https URLs only
func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: must start with http:// or https://", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return nil
}

// generateHandle generates a time-ordered correlation handle
func generateHandle() model.Handle {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Handle(fmt.Sprintf(HandlePrefix+"%d", time.Now().UnixNano()))
	}
	return model.Handle(HandlePrefix + id.String())
}
