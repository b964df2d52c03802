package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"smartroom/internal/config"
	"smartroom/internal/console"
	"smartroom/internal/logger"
	"smartroom/internal/repository"
	"smartroom/internal/repository/db"
	"smartroom/internal/service"
)

func main() {
	// load configs/config.yml; a missing file means built-in defaults
	cfg, cfgErr := config.Load("configs")

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Output)
	defer func() { _ = log.Sync() }()
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open the event journal
	journal, closeJournal := openJournal(cfg.DB.Path, log)
	defer closeJournal()

	// hardware and console
	hw, closeHW, err := openHardware(cfg.Hardware, log)
	if err != nil {
		log.Fatalw("failed to open hardware", "mode", cfg.Hardware.Mode, "err", err)
	}
	defer closeHW()

	port, err := openConsole(cfg.Console)
	if err != nil {
		log.Fatalw("failed to open console", "port", cfg.Console.Port, "err", err)
	}
	term := console.New(port, cfg.Console.CRLF, log)

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		log.Fatalw("invalid auth config", "err", err)
	}

	// wire dependencies
	node := service.NewNode(hw, term, verifier, journal, log, service.Options{
		TimeoutTicks: cfg.Session.TimeoutTicks,
		FullCycles:   cfg.Curtain.FullCycles,
		PhaseDelay:   cfg.Curtain.PhaseDelay,
	})
	if err := node.Room.Boot(cfg.RTC.Seed); err != nil {
		log.Warnw("boot completed with faults", "err", err)
	}

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go node.Ticks.Run(ctx, cfg.Tick.Period)
	go runConsole(ctx, term, log)

	done := make(chan error, 1)
	go func() { done <- node.Controller.Run(ctx, term.Chars()) }()

	log.Infow("smartroom started",
		"mode", cfg.Hardware.Mode,
		"console", consoleName(cfg.Console),
		"journal", cfg.DB.Path,
	)

	// graceful shutdown
	waitForShutdown(cancel, done, term, log)
}

// openJournal returns a sqlite-backed recorder, or a no-op one when
// db.path is empty or the database cannot be opened.
func openJournal(path string, log *logger.Logger) (service.Recorder, func()) {
	if path == "" {
		log.Infow("db.path not set in config; journal disabled")
		return service.NopRecorder{}, func() {}
	}
	conn, err := db.InitDB(path)
	if err != nil {
		log.Errorw("failed to init sqlite; journal disabled", "path", path, "err", err)
		return service.NopRecorder{}, func() {}
	}
	repos := repository.NewRepository(conn)
	return service.NewJournalService(repos.EventRepo, log), func() { closeDB(conn, log) }
}

func closeDB(conn *sql.DB, log *logger.Logger) {
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}

func openConsole(cfg config.ConsoleConfig) (console.Port, error) {
	if cfg.Port == "" {
		return console.OpenTerminal()
	}
	return console.OpenSerial(cfg.Port, cfg.Baud)
}

func consoleName(cfg config.ConsoleConfig) string {
	if cfg.Port == "" {
		return "stdio"
	}
	return cfg.Port
}

func newVerifier(cfg config.AuthConfig) (service.PasswordVerifier, error) {
	if cfg.PasswordHash != "" {
		return service.NewBcryptVerifier(cfg.PasswordHash)
	}
	return service.NewPlainVerifier(cfg.Password), nil
}

// runConsole runs the receive task. A dead console is logged; the node
// keeps running so the display and journal stay live.
func runConsole(ctx context.Context, term *console.Console, log *logger.Logger) {
	if err := term.Run(ctx); err != nil && ctx.Err() == nil {
		log.Errorw("console receive stopped", "err", err)
	}
}

// waitForShutdown blocks until a termination signal or the main loop
// exits, then stops background goroutines and releases the console.
func waitForShutdown(cancel context.CancelFunc, done <-chan error, term *console.Console, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infow("shutting down...", "signal", sig.String())
	case err := <-done:
		log.Errorw("main loop exited", "err", err)
	}

	// stop background goroutines
	cancel()

	if err := term.Shutdown(); err != nil {
		log.Errorw("failed to release console", "err", err)
	}
}
