package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ytget/repo-downloader/internal/model"
)

type fakeTransfers struct {
	mu          sync.Mutex
	submitted   []model.TransferRequest
	statuses    map[model.Handle]model.TransferStatus
	queryErr    error
	submitErr   error
	queries     int
	subscribers map[int]func(model.CompletionEvent)
	nextSub     int
	unsubscribe int

	// completeWith, when set, finishes every transfer from a goroutine
	// started inside Submit
	completeWith model.TransferStatus
}

func newFakeTransfers() *fakeTransfers {
	return &fakeTransfers{
		statuses:    make(map[model.Handle]model.TransferStatus),
		subscribers: make(map[int]func(model.CompletionEvent)),
	}
}

func (f *fakeTransfers) Submit(req model.TransferRequest) (model.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, req)
	handle := model.Handle(fmt.Sprintf("H%d", len(f.submitted)))
	f.statuses[handle] = model.TransferPending
	if f.completeWith != "" {
		go f.finish(handle, f.completeWith)
	}
	return handle, nil
}

func (f *fakeTransfers) QueryStatus(_ context.Context, handle model.Handle) (model.TransferStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++
	if f.queryErr != nil {
		return "", f.queryErr
	}
	status, ok := f.statuses[handle]
	if !ok {
		return "", fmt.Errorf("unknown handle %s", handle)
	}
	return status, nil
}

func (f *fakeTransfers) Subscribe(fn func(model.CompletionEvent)) Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	f.subscribers[id] = fn
	return &fakeSubscription{owner: f, id: id}
}

// finish sets the final status and publishes the completion event
func (f *fakeTransfers) finish(handle model.Handle, status model.TransferStatus) {
	f.mu.Lock()
	f.statuses[handle] = status
	f.mu.Unlock()
	f.emit(model.CompletionEvent{Handle: handle})
}

func (f *fakeTransfers) emit(event model.CompletionEvent) {
	f.mu.Lock()
	subs := make([]func(model.CompletionEvent), 0, len(f.subscribers))
	for _, fn := range f.subscribers {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

func (f *fakeTransfers) submissions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

type fakeSubscription struct {
	owner *fakeTransfers
	id    int
}

func (s *fakeSubscription) Unsubscribe() {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	delete(s.owner.subscribers, s.id)
	s.owner.unsubscribe++
}

type fakeAuthorizer struct {
	mu         sync.Mutex
	authorized bool
	decisions  []func(bool)
	requested  chan struct{}
}

func newFakeAuthorizer(authorized bool) *fakeAuthorizer {
	return &fakeAuthorizer{authorized: authorized, requested: make(chan struct{}, 8)}
}

func (a *fakeAuthorizer) IsAuthorized(string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authorized
}

func (a *fakeAuthorizer) RequestAuthorization(_ string, onDecision func(bool)) {
	a.mu.Lock()
	a.decisions = append(a.decisions, onDecision)
	a.mu.Unlock()
	a.requested <- struct{}{}
}

// decide fires the most recent decision callback from the test goroutine
func (a *fakeAuthorizer) decide(granted bool) {
	a.mu.Lock()
	fn := a.decisions[len(a.decisions)-1]
	a.mu.Unlock()
	fn(granted)
}

type fakeNotifier struct {
	mu        sync.Mutex
	channels  int
	delivered []model.NotificationPayload
}

func (n *fakeNotifier) EnsureChannel(model.NotificationChannel) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.channels++
	return nil
}

func (n *fakeNotifier) Deliver(payload model.NotificationPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, payload)
	return nil
}

func (n *fakeNotifier) payloads() []model.NotificationPayload {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.NotificationPayload(nil), n.delivered...)
}

type fakeSurface struct {
	mu       sync.Mutex
	messages []string
	states   []model.VisibleState

	// inProgressDelay slows down rendering of InProgress
	inProgressDelay time.Duration
}

func (s *fakeSurface) ShowMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, text)
}

func (s *fakeSurface) SetVisibleState(state model.VisibleState) {
	if state == model.StateInProgress && s.inProgressDelay > 0 {
		time.Sleep(s.inProgressDelay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, state)
}

func (s *fakeSurface) visibleStates() []model.VisibleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.VisibleState(nil), s.states...)
}

func (s *fakeSurface) messageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type harness struct {
	transfers  *fakeTransfers
	authorizer *fakeAuthorizer
	notifier   *fakeNotifier
	surface    *fakeSurface
	controller *Controller
}

func newHarness(authorized bool) *harness {
	h := &harness{
		transfers:  newFakeTransfers(),
		authorizer: newFakeAuthorizer(authorized),
		notifier:   &fakeNotifier{},
		surface:    &fakeSurface{},
	}
	h.controller = NewController(Options{
		Transfers:  h.transfers,
		Authorizer: h.authorizer,
		Notifier:   h.notifier,
		Surface:    h.surface,
	})
	h.controller.Start()
	return h
}
