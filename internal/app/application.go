package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/raysh454/httpr/internal/cli"
	"github.com/raysh454/httpr/internal/logging"
	"github.com/raysh454/httpr/internal/render"
	"github.com/raysh454/httpr/internal/utils"
	"github.com/raysh454/httpr/internal/webclient"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Application holds the parts needed to run one command: config, logger,
// the HTTP backend and the renderer. Pass already-constructed parts so tests
// can swap any of them.
type Application struct {
	Config   *Config
	Logger   logging.Logger
	Client   webclient.WebClient
	Renderer *render.Renderer
}

func NewApplication(cfg *Config, logger logging.Logger, client webclient.WebClient, renderer *render.Renderer) *Application {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Application{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Renderer: renderer,
	}
}

// Run performs exactly one request for cmd and renders the response.
func (a *Application) Run(ctx context.Context, cmd cli.Command) error {
	if a == nil || a.Client == nil || a.Renderer == nil {
		return errors.New("application is not fully constructed")
	}
	if cmd == nil {
		return errors.New("nil command")
	}

	a.Logger.Info("dispatching request",
		logging.Field{Key: "method", Value: cmd.Method()},
		logging.Field{Key: "url", Value: cmd.Target().String()})

	resp, err := Dispatch(ctx, a.Client, cmd)
	if err != nil {
		return err
	}

	return a.Renderer.Render(resp)
}

// Dispatch builds the request for cmd and sends it through client.
func Dispatch(ctx context.Context, client webclient.WebClient, cmd cli.Command) (*webclient.Response, error) {
	req, err := BuildRequest(cmd)
	if err != nil {
		return nil, err
	}
	return client.Do(ctx, req)
}

// BuildRequest maps a command onto a webclient.Request. GET carries no body
// and no headers; POST carries the key/value map as a JSON object.
func BuildRequest(cmd cli.Command) (*webclient.Request, error) {
	switch c := cmd.(type) {
	case cli.GetCommand:
		return &webclient.Request{Method: http.MethodGet, URL: c.URL.String()}, nil
	case cli.PostCommand:
		fields := c.Body
		if fields == nil {
			fields = map[string]string{}
		}
		body, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		headers := http.Header{}
		headers.Set("Content-Type", "application/json")
		return &webclient.Request{
			Method:  http.MethodPost,
			URL:     c.URL.String(),
			Headers: headers,
			Body:    body,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported command %T", cmd)
	}
}

// ExitCode maps an error from parsing or running onto a process exit code.
// Bad input exits 2; network and body failures exit 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) || errors.Is(err, utils.ErrInvalidURL) {
		return ExitUsage
	}
	return ExitFailure
}
