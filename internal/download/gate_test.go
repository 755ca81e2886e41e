package download

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPermissionGate_AlreadyAuthorized(t *testing.T) {
	auth := newFakeAuthorizer(true)
	gate := NewPermissionGate(auth)

	if err := gate.EnsureAuthorized(context.Background()); err != nil {
		t.Fatalf("Expected nil, got %v", err)
	}
	if len(auth.decisions) != 0 {
		t.Error("Expected no authorization request when already authorized")
	}
}

func TestPermissionGate_NilAuthorizer(t *testing.T) {
	gate := NewPermissionGate(nil)

	if err := gate.EnsureAuthorized(context.Background()); err != nil {
		t.Fatalf("Expected nil without an authorizer, got %v", err)
	}
}

func TestPermissionGate_Decisions(t *testing.T) {
	tests := []struct {
		name     string
		granted  bool
		expected error
	}{
		{"granted", true, nil},
		{"denied", false, ErrAuthorizationDenied},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			auth := newFakeAuthorizer(false)
			gate := NewPermissionGate(auth)

			errCh := make(chan error, 1)
			go func() { errCh <- gate.EnsureAuthorized(context.Background()) }()

			waitRequested(t, auth)
			auth.decide(test.granted)

			select {
			case err := <-errCh:
				if !errors.Is(err, test.expected) {
					t.Errorf("Expected %v, got %v", test.expected, err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Timed out waiting for decision")
			}
		})
	}
}

func TestDecision_ResolveOnce(t *testing.T) {
	d := newDecision()

	if !d.resolve(false) {
		t.Error("Expected first resolve to be recorded")
	}
	if d.resolve(true) {
		t.Error("Expected duplicate resolve to be ignored")
	}
	if granted := <-d.ch; granted {
		t.Error("Expected first decision (false) to win")
	}
}
