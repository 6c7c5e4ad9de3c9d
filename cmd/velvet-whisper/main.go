// main package for the velvet-whisper service
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/book-expert/logger"

	"github.com/redredchen01/velvet-whisper/internal/config"
	"github.com/redredchen01/velvet-whisper/internal/core"
	"github.com/redredchen01/velvet-whisper/internal/pipeline"
	"github.com/redredchen01/velvet-whisper/internal/playback"
	"github.com/redredchen01/velvet-whisper/internal/server"
	"github.com/redredchen01/velvet-whisper/internal/session"
	"github.com/redredchen01/velvet-whisper/internal/settings"
)

const readHeaderTimeout = 10 * time.Second

func setupLogger(logPath string) (*logger.Logger, error) {
	log, err := logger.New(logPath, "velvet-whisper.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func run() error {
	// 1. Create a temporary logger for the bootstrap process
	bootstrapLog, err := setupLogger(os.TempDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to create bootstrap logger: %v\n", err)

		return err
	}

	// 2. Load configuration using the central configurator
	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 3. Initialize the final logger based on the loaded configuration
	log, err := setupLogger(cfg.Paths.BaseLogsDir)
	if err != nil {
		bootstrapLog.Error("Failed to create final logger: %v", err)

		return fmt.Errorf("failed to create final logger: %w", err)
	}

	defer func() {
		closeErr := log.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing logger: %v\n", closeErr)
		}
	}()

	// 4. Assemble the session: settings store, orchestrator, playback
	store := settings.NewStore(cfg.Paths.DataDir, log)

	orch := pipeline.New(
		time.Duration(cfg.Provider.CallTimeoutSeconds)*time.Second,
		log,
		func(status core.Status) {
			log.Info("Generation state: %s", status)
		},
	)

	player := playback.NewController(clock.New(), playback.NopSink{}, nil)

	sess := session.New(
		log,
		store,
		session.NewProviderFactory(cfg.Provider, log),
		orch,
		player,
	)

	srv := server.New(sess, log)

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.System("velvet-whisper listening on %s", cfg.Server.ListenAddr)

	err = httpServer.ListenAndServe()
	if err != nil {
		return fmt.Errorf("server exited: %w", err)
	}

	return nil
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service exited with error: %v\n", err)
		os.Exit(1)
	}
}
