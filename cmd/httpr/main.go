package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/raysh454/httpr/internal/app"
	"github.com/raysh454/httpr/internal/cli"
	"github.com/raysh454/httpr/internal/logging"
	"github.com/raysh454/httpr/internal/render"
	"github.com/raysh454/httpr/internal/webclient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, performs at most one request and returns the exit code.
// The rendered response goes to stdout; errors and logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv, err := cli.ParseArgs(args)
	if err != nil {
		return report(stderr, err)
	}
	if inv.Info != "" {
		fmt.Fprint(stdout, inv.Info)
		return app.ExitOK
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		return report(stderr, err)
	}

	logger, err := logging.NewZerologLogger(stderr, cfg.LogLevel, "httpr")
	if err != nil {
		return report(stderr, err)
	}

	client, err := webclient.NewWebClient(cfg.WebClientCfg, logger)
	if err != nil {
		return report(stderr, err)
	}
	defer client.Close()

	application := app.NewApplication(cfg, logger, client, render.New(stdout, cfg.Color, logger))
	if err := application.Run(ctx, inv.Command); err != nil {
		return report(stderr, err)
	}
	return app.ExitOK
}

func report(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "httpr: %v\n", err)

	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) && usageErr.Usage != "" {
		fmt.Fprintf(stderr, "\n%s", usageErr.Usage)
	}
	return app.ExitCode(err)
}
