// tvctl listens for decoded IR command codes on a serial port and
// injects the keyboard shortcuts bound to them.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vimusov/tvctl/host/ctl"
	"github.com/vimusov/tvctl/host/keymap"
	"github.com/vimusov/tvctl/host/serial"
)

var (
	configPath = flag.String("config", keymap.DefaultPath, "Path to the YAML config file")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config)")
	debug      = flag.Bool("debug", false, "Print received codes instead of pressing keys")
)

func main() {
	flag.Parse()

	cfg, err := keymap.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *device != "" {
		cfg.Port = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	port, err := serial.Open(&serial.Config{
		Device: cfg.Port,
		Baud:   cfg.Baud,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	// Drop code lines queued up while nobody was listening.
	if err := port.Flush(); err != nil {
		logger.Warn("flush failed", "error", err)
	}

	if err := ctl.NotifyReady(); err != nil {
		logger.Warn("systemd notify failed", "error", err)
	}

	controller := ctl.New(
		ctl.Config{
			Keys:        cfg.Keys,
			RepeatDelay: cfg.RepeatDelay(),
			Debug:       *debug,
		},
		ctl.XdoExecutor{},
		os.Stdout,
		logger,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- controller.Run(port)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("serial port closed, exiting")
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
