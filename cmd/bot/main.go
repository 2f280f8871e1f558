package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/monstermash2008/time-range/internal/app"
	"github.com/monstermash2008/time-range/internal/config"
	"github.com/monstermash2008/time-range/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()
	// The time parser reports recovered panics through zap.L().
	undo := zap.ReplaceGlobals(log)
	defer undo()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("app init failed", zap.Error(err))
	}

	if err := application.Run(context.Background()); err != nil {
		log.Fatal("app run failed", zap.Error(err))
	}
}
