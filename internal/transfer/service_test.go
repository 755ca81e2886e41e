package transfer

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"

	"github.com/ytget/repo-downloader/internal/model"
)

func newTestBucket(t *testing.T) *blob.Bucket {
	t.Helper()
	bucket, err := blob.OpenBucket(context.Background(), "mem://")
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	t.Cleanup(func() { bucket.Close() })
	return bucket
}

func archiveServer(t *testing.T, data []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/glide.zip" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", ArchiveMIMEType)
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// collectEvents subscribes and returns a channel of completion events
func collectEvents(s *Service) (<-chan model.CompletionEvent, func()) {
	events := make(chan model.CompletionEvent, 4)
	sub := s.Subscribe(func(ev model.CompletionEvent) { events <- ev })
	return events, sub.Unsubscribe
}

func waitEvent(t *testing.T, events <-chan model.CompletionEvent) model.CompletionEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for completion event")
		return model.CompletionEvent{}
	}
}

func TestSubmit_StoresArchive(t *testing.T) {
	data := bytes.Repeat([]byte("repo"), 4096)
	srv := archiveServer(t, data)
	bucket := newTestBucket(t)

	service := NewService(bucket, nil)
	defer service.Close()
	events, unsubscribe := collectEvents(service)
	defer unsubscribe()

	handle, err := service.Submit(model.TransferRequest{
		URL:         srv.URL + "/glide.zip",
		Destination: model.DefaultDestination,
		Title:       "Repo Downloader",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(handle.String(), HandlePrefix) {
		t.Errorf("Expected handle to start with %q, got %s", HandlePrefix, handle)
	}

	ev := waitEvent(t, events)
	if ev.Handle != handle {
		t.Fatalf("Expected event for %s, got %s", handle, ev.Handle)
	}

	status, err := service.QueryStatus(context.Background(), handle)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != model.TransferSuccessful {
		t.Errorf("Expected status Successful, got %s", status)
	}

	got, err := bucket.ReadAll(context.Background(), model.DefaultDestination)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Expected %d stored bytes, got %d", len(data), len(got))
	}

	attrs, err := bucket.Attributes(context.Background(), model.DefaultDestination)
	if err != nil {
		t.Fatalf("read attributes: %v", err)
	}
	if attrs.Metadata[MetadataSourceURL] != srv.URL+"/glide.zip" {
		t.Errorf("Expected source_url metadata, got %v", attrs.Metadata)
	}

	task, ok := service.GetTask(handle)
	if !ok {
		t.Fatal("Expected task to exist")
	}
	if task.Downloaded != int64(len(data)) {
		t.Errorf("Expected %d downloaded bytes, got %d", len(data), task.Downloaded)
	}
	if task.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set")
	}
}

func TestSubmit_HTTPErrorFails(t *testing.T) {
	srv := archiveServer(t, []byte("zip"))
	bucket := newTestBucket(t)

	service := NewService(bucket, nil)
	defer service.Close()
	events, unsubscribe := collectEvents(service)
	defer unsubscribe()

	handle, err := service.Submit(model.TransferRequest{URL: srv.URL + "/missing.zip"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	waitEvent(t, events)

	status, _ := service.QueryStatus(context.Background(), handle)
	if status != model.TransferFailed {
		t.Errorf("Expected status Failed, got %s", status)
	}

	task, _ := service.GetTask(handle)
	if !strings.Contains(task.LastError, "404") {
		t.Errorf("Expected 404 in last error, got %q", task.LastError)
	}

	exists, err := bucket.Exists(context.Background(), model.DefaultDestination)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("Expected no archive for a failed transfer")
	}
}

func TestSubmit_InvalidURL(t *testing.T) {
	service := NewService(newTestBucket(t), nil)
	defer service.Close()

	tests := []string{"", "ftp://x/glide.zip", "https://", "not a url"}
	for _, raw := range tests {
		if _, err := service.Submit(model.TransferRequest{URL: raw}); err == nil {
			t.Errorf("Expected error for URL %q", raw)
		}
	}
}

func TestQueryStatus_UnknownHandle(t *testing.T) {
	service := NewService(newTestBucket(t), nil)
	defer service.Close()

	_, err := service.QueryStatus(context.Background(), "transfer-missing")
	if !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Expected ErrUnknownHandle, got %v", err)
	}
}

func TestQueryStatus_CancelledContext(t *testing.T) {
	service := NewService(newTestBucket(t), nil)
	defer service.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.QueryStatus(ctx, "transfer-any"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	srv := archiveServer(t, []byte("zip"))
	service := NewService(newTestBucket(t), nil)
	defer service.Close()

	var mu sync.Mutex
	calls := 0
	sub := service.Subscribe(func(model.CompletionEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	sub.Unsubscribe()
	sub.Unsubscribe()

	events, unsubscribe := collectEvents(service)
	defer unsubscribe()

	if _, err := service.Submit(model.TransferRequest{URL: srv.URL + "/glide.zip"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitEvent(t, events)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("Expected released subscription to receive nothing, got %d calls", calls)
	}
}

func TestUpdateCallback(t *testing.T) {
	srv := archiveServer(t, bytes.Repeat([]byte("x"), 1024))
	service := NewService(newTestBucket(t), nil)
	defer service.Close()

	var mu sync.Mutex
	var statuses []model.TransferStatus
	service.SetUpdateCallback(func(task *model.TransferTask) {
		mu.Lock()
		statuses = append(statuses, task.Status)
		mu.Unlock()
	})

	events, unsubscribe := collectEvents(service)
	defer unsubscribe()

	if _, err := service.Submit(model.TransferRequest{URL: srv.URL + "/glide.zip"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitEvent(t, events)

	mu.Lock()
	defer mu.Unlock()
	if len(statuses) < 2 {
		t.Fatalf("Expected at least 2 updates, got %d", len(statuses))
	}
	if statuses[0] != model.TransferRunning {
		t.Errorf("Expected first update Running, got %s", statuses[0])
	}
	if last := statuses[len(statuses)-1]; last != model.TransferSuccessful {
		t.Errorf("Expected last update Successful, got %s", last)
	}
}

func TestClose_CancelsRunningTransfer(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1048576")
		w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	service := NewService(newTestBucket(t), nil)
	events, unsubscribe := collectEvents(service)
	defer unsubscribe()

	handle, err := service.Submit(model.TransferRequest{URL: srv.URL + "/slow.zip"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	<-started
	service.Close()

	ev := waitEvent(t, events)
	if ev.Handle != handle {
		t.Errorf("Expected event for %s, got %s", handle, ev.Handle)
	}
	task, _ := service.GetTask(handle)
	if task.Status != model.TransferFailed {
		t.Errorf("Expected status Failed after Close, got %s", task.Status)
	}

	if _, err := service.Submit(model.TransferRequest{URL: srv.URL + "/slow.zip"}); !errors.Is(err, ErrServiceClosed) {
		t.Errorf("Expected ErrServiceClosed, got %v", err)
	}
}

func TestGenerateHandle(t *testing.T) {
	h1 := generateHandle()
	h2 := generateHandle()

	if h1 == h2 {
		t.Error("Expected different handles")
	}
	if !strings.HasPrefix(h1.String(), HandlePrefix) {
		t.Errorf("Expected handle to start with %q, got %s", HandlePrefix, h1)
	}
	if len(h1.String()) != len(HandlePrefix)+36 {
		t.Errorf("Expected handle length %d, got %d for %s", len(HandlePrefix)+36, len(h1.String()), h1)
	}
}
