//go:build tinygo

package main

import (
	"fmt"
	"log/slog"
	"machine"
	"time"

	"github.com/vimusov/tvctl/firmware/internal/remotebox"

	"github.com/lmittmann/tint"
)

func waitForSerial(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for !machine.Serial.DTR() {
		if time.Now().After(deadline) {
			return false
		}

		time.Sleep(10 * time.Millisecond)
	}

	return true
}

func main() {
	var startTime = time.Now()

	waitForSerial(5 * time.Second)

	// Diagnostics go to the USB serial; the code UART stays clean.
	// No RTC on board, so timestamps are time since boot.
	slog.SetDefault(
		slog.New(
			tint.NewHandler(
				machine.Serial,
				&tint.Options{
					Level:      remotebox.DefaultConfig.LogLevel,
					TimeFormat: time.Kitchen,
					ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
						if a.Key == slog.TimeKey {
							a.Value = slog.StringValue(fmt.Sprintf("+%07.3fs", time.Since(startTime).Seconds()))
						}

						return a
					},
				}),
		),
	)

	box := remotebox.New(remotebox.DefaultConfig)
	box.Run()
}
