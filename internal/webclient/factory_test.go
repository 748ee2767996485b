package webclient_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/raysh454/httpr/internal/logging"
	"github.com/raysh454/httpr/internal/testutil"
	"github.com/raysh454/httpr/internal/webclient"
)

// TestNewWebClient_DefaultBackend verifies that empty backend defaults to nethttp
func TestNewWebClient_DefaultBackend(t *testing.T) {
	t.Parallel()
	client, err := webclient.NewWebClient(webclient.Config{}, logging.NopLogger{})
	if err != nil {
		t.Fatalf("Failed to create default client: %v", err)
	}
	if client == nil {
		t.Fatal("client is nil")
	}
	defer client.Close()

	if _, ok := client.(*webclient.NetHTTPClient); !ok {
		t.Errorf("expected *NetHTTPClient, got %T", client)
	}
}

// TestNewWebClient_NetHTTP verifies that the factory can create a nethttp client
func TestNewWebClient_NetHTTP(t *testing.T) {
	t.Parallel()
	client, err := webclient.NewWebClient(webclient.Config{Client: " NetHTTP "}, logging.NopLogger{})
	if err != nil {
		t.Fatalf("Failed to create nethttp client: %v", err)
	}
	if client == nil {
		t.Fatal("client is nil")
	}
	defer client.Close()
}

// TestNewWebClient_UnknownBackend verifies that unknown backend returns error
func TestNewWebClient_UnknownBackend(t *testing.T) {
	t.Parallel()
	client, err := webclient.NewWebClient(webclient.Config{Client: "unknown"}, logging.NopLogger{})
	if err == nil {
		t.Fatal("Expected error for unknown backend, got nil")
	}
	if client != nil {
		t.Fatal("Expected nil client for unknown backend")
	}
	if !errors.Is(err, webclient.ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
	if !strings.Contains(err.Error(), string(webclient.ClientNetHTTP)) {
		t.Errorf("expected available backends in error, got %v", err)
	}
}

func TestNewWebClient_NilConstructorResult(t *testing.T) {
	t.Parallel()
	webclient.RegisterBackend("nil-result-test", func(webclient.Config, logging.Logger) (webclient.WebClient, error) {
		return nil, nil
	})

	if _, err := webclient.NewWebClient(webclient.Config{Client: "nil-result-test"}, nil); err == nil {
		t.Fatal("expected error when constructor returns nil client")
	}
}

func TestNewWebClient_LogsSelectedBackend(t *testing.T) {
	t.Parallel()
	logger := &testutil.DummyLogger{}
	client, err := webclient.NewWebClient(webclient.Config{}, logger)
	if err != nil {
		t.Fatalf("NewWebClient: %v", err)
	}
	defer client.Close()

	if len(logger.Debugs) == 0 || logger.Debugs[0] != "selected webclient backend" {
		t.Errorf("expected backend selection to be logged first, got %v", logger.Debugs)
	}
}

type stubClient struct{}

func (stubClient) Do(context.Context, *webclient.Request) (*webclient.Response, error) {
	return &webclient.Response{StatusCode: 204}, nil
}

func (stubClient) Close() error { return nil }

func TestRegisterBackend_CustomBackend(t *testing.T) {
	t.Parallel()
	webclient.RegisterBackend("Stub-Test", func(webclient.Config, logging.Logger) (webclient.WebClient, error) {
		return stubClient{}, nil
	})

	client, err := webclient.NewWebClient(webclient.Config{Client: "stub-test"}, logging.NopLogger{})
	if err != nil {
		t.Fatalf("NewWebClient: %v", err)
	}
	resp, err := client.Do(context.Background(), &webclient.Request{})
	if err != nil || resp.StatusCode != 204 {
		t.Fatalf("unexpected result from stub backend: %v %v", resp, err)
	}

	found := false
	for _, name := range webclient.ListBackends() {
		if name == "stub-test" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected stub-test in %v", webclient.ListBackends())
	}
}

func TestRegisterBackend_ConstructorErrorIsWrapped(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	webclient.RegisterBackend("failing-test", func(webclient.Config, logging.Logger) (webclient.WebClient, error) {
		return nil, boom
	})

	_, err := webclient.NewWebClient(webclient.Config{Client: "failing-test"}, logging.NopLogger{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped constructor error, got %v", err)
	}
}

func TestRegisterBackend_IgnoresInvalid(t *testing.T) {
	t.Parallel()
	before := len(webclient.ListBackends())
	webclient.RegisterBackend("", func(webclient.Config, logging.Logger) (webclient.WebClient, error) {
		return stubClient{}, nil
	})
	webclient.RegisterBackend("nil-ctor-test", nil)

	for _, name := range webclient.ListBackends() {
		if name == "" || name == "nil-ctor-test" {
			t.Errorf("invalid backend %q registered", name)
		}
	}
	if len(webclient.ListBackends()) < before {
		t.Error("registry shrank unexpectedly")
	}
}
