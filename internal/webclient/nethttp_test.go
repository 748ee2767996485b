package webclient_test

import (
	"net/http"
	"testing"

	"github.com/raysh454/httpr/internal/logging"
	"github.com/raysh454/httpr/internal/webclient"
)

// TestNewNetHTTPClient_Construct verifies that NewNetHTTPClient returns a non-nil client
func TestNewNetHTTPClient_Construct(t *testing.T) {
	t.Parallel()
	client, err := webclient.NewNetHTTPClient(webclient.Config{}, logging.NopLogger{}, nil)
	if err != nil {
		t.Fatalf("NewNetHTTPClient returned error: %v", err)
	}
	if client == nil {
		t.Fatal("NewNetHTTPClient returned nil client")
	}
	defer client.Close()

	// no overall timeout unless the caller asks for one
	if client.HTTPClient().Timeout != 0 {
		t.Errorf("expected no client timeout, got %v", client.HTTPClient().Timeout)
	}
}

// TestNewNetHTTPClient_WithCustomClient verifies that a custom *http.Client can be injected
func TestNewNetHTTPClient_WithCustomClient(t *testing.T) {
	t.Parallel()
	customClient := &http.Client{}

	client, err := webclient.NewNetHTTPClient(webclient.Config{}, logging.NopLogger{}, customClient)
	if err != nil {
		t.Fatalf("NewNetHTTPClient returned error: %v", err)
	}
	defer client.Close()

	if client.HTTPClient() != customClient {
		t.Error("expected injected *http.Client to be used")
	}
}

// TestNewNetHTTPClient_NilLogger verifies a nil logger is tolerated
func TestNewNetHTTPClient_NilLogger(t *testing.T) {
	t.Parallel()
	client, err := webclient.NewNetHTTPClient(webclient.Config{}, nil, nil)
	if err != nil {
		t.Fatalf("NewNetHTTPClient returned error: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}
