// Package ctl consumes decoded command codes from the receiver board
// and turns them into keyboard shortcuts.
package ctl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/vimusov/tvctl/host/keymap"
)

// Executor injects one keyboard shortcut into the session.
type Executor interface {
	Press(shortcut string) error
}

// XdoExecutor drives X11 through xdotool.
type XdoExecutor struct{}

func (XdoExecutor) Press(shortcut string) error {
	if err := exec.Command("xdotool", "key", shortcut).Run(); err != nil {
		return fmt.Errorf("send shortcut %q: %w", shortcut, err)
	}
	return nil
}

type Config struct {
	// Keys maps command codes to bindings.
	Keys map[int]keymap.Binding

	// RepeatDelay discards codes arriving within this window of the
	// previously accepted one.
	RepeatDelay time.Duration

	// Debug prints code-to-binding lines instead of pressing keys.
	// Repeat suppression is off in debug mode so every code is visible.
	Debug bool
}

// Controller is the host-side control loop.
type Controller struct {
	log    *slog.Logger
	config Config
	exec   Executor
	out    io.Writer // debug printout destination

	now  func() time.Time
	last time.Time
}

func New(
	config Config,
	exec Executor,
	out io.Writer,
	log *slog.Logger,
) *Controller {
	return &Controller{
		log:    log.With("component", "ctl"),
		config: config,
		exec:   exec,
		out:    out,
		now:    time.Now,
	}
}

// Run consumes newline-terminated decimal code lines from r until EOF
// or a dispatch failure. The firmware sends codes unvalidated, so
// malformed lines are logged and skipped here.
func (c *Controller) Run(r io.Reader) error {
	// Codes arriving right after startup are leftovers from before the
	// daemon attached; treat them like repeats.
	c.last = c.now()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		code, err := strconv.Atoi(line)
		if err != nil {
			c.log.Warn("discarding malformed code line", "line", line)
			continue
		}

		if err := c.handle(code); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read codes: %w", err)
	}
	return nil
}

func (c *Controller) handle(code int) error {
	if c.config.Debug {
		c.printCode(code)
		return nil
	}

	now := c.now()
	if now.Sub(c.last) < c.config.RepeatDelay {
		return nil
	}
	c.last = now

	binding, found := c.config.Keys[code]
	if !found {
		c.log.Debug("unbound code", "code", code)
		return nil
	}

	c.log.Debug("pressing", "code", code, "shortcut", binding.Shortcut)
	return c.exec.Press(binding.Shortcut)
}

func (c *Controller) printCode(code int) {
	binding, found := c.config.Keys[code]
	switch {
	case !found:
		fmt.Fprintf(c.out, "%d: ?  # ?\n", code)
	case binding.Comment == "":
		fmt.Fprintf(c.out, "%d: %s\n", code, binding.Shortcut)
	default:
		fmt.Fprintf(c.out, "%d: %s  # %s\n", code, binding.Shortcut, binding.Comment)
	}
}
