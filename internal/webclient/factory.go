package webclient

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/raysh454/httpr/internal/logging"
)

// ErrUnknownBackend is returned by NewWebClient when HTTPR_BACKEND names a
// backend nobody registered.
var ErrUnknownBackend = errors.New("unknown webclient backend")

// BackendConstructor builds a WebClient for the given config.
type BackendConstructor func(cfg Config, logger logging.Logger) (WebClient, error)

// backendRegistry maps normalized backend names to constructors.
type backendRegistry struct {
	mu    sync.RWMutex
	ctors map[Client]BackendConstructor
}

var backends = &backendRegistry{ctors: map[Client]BackendConstructor{}}

func normalizeClient(name string) Client {
	return Client(strings.ToLower(strings.TrimSpace(name)))
}

func (r *backendRegistry) register(name Client, ctor BackendConstructor) {
	r.mu.Lock()
	r.ctors[name] = ctor
	r.mu.Unlock()
}

func (r *backendRegistry) lookup(name Client) (BackendConstructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[name]
	return ctor, ok
}

func (r *backendRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		out = append(out, string(name))
	}
	slices.Sort(out)
	return out
}

// RegisterBackend makes ctor selectable as name (case-insensitive). Empty
// names and nil constructors are ignored; a second registration replaces the
// first.
func RegisterBackend(name string, ctor BackendConstructor) {
	client := normalizeClient(name)
	if client == "" || ctor == nil {
		return
	}
	backends.register(client, ctor)
}

// NewWebClient builds the backend named by cfg.Client, defaulting to nethttp.
func NewWebClient(cfg Config, logger logging.Logger) (WebClient, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	client := normalizeClient(string(cfg.Client))
	if client == "" {
		client = ClientNetHTTP
	}

	ctor, ok := backends.lookup(client)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, client, strings.Join(backends.names(), ", "))
	}

	logger.Debug("selected webclient backend", logging.Field{Key: "backend", Value: string(client)})

	cfg.Client = client
	wc, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build webclient backend %q: %w", client, err)
	}
	if wc == nil {
		return nil, fmt.Errorf("build webclient backend %q: constructor returned nil", client)
	}
	return wc, nil
}

// ListBackends returns the registered backend names in sorted order.
func ListBackends() []string {
	return backends.names()
}
