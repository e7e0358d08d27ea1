package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/sitenav/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout)
	logger.Info("parsing menu files", slog.String("root", "site"))
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCaller(true))

	logger.Debug("debug message with caller info")
}

func Example_textFormat() {
	logger := log.Make(os.Stdout, log.WithFormat(log.FormatText))
	logger.Warn("skipping path", slog.String("dir", "drafts"))
}

func Example_withContext() {
	type runKey struct{}

	ctx := context.WithValue(context.Background(), runKey{}, "run-42")

	logger := log.Make(os.Stdout).With(slog.String("component", "nav"))
	logger.InfoContext(ctx, "writing group files from templates")
}
