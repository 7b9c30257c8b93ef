// Package remote polls the IR receiver and reports each decoded command
// as a bare decimal line on the code channel.
package remote

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/vimusov/tvctl/firmware/internal/device/ir"
	"github.com/vimusov/tvctl/firmware/internal/event"
	"github.com/vimusov/tvctl/firmware/internal/service"
)

var _ service.Service = (*Service)(nil)

// Receiver is the decode capability the poll loop consumes. Decode must
// never block; Resume acknowledges the pending result and re-arms for
// the next signal.
type Receiver interface {
	Decode() (ir.Result, bool)
	Resume()
}

type Config struct {
	// SettleDelay is the quiet time held after each reported decode.
	// Signals arriving inside the window are lost by design.
	SettleDelay time.Duration

	// PollInterval is the scheduler yield between decode-ready checks
	// when nothing is pending. It has no observable effect on the code
	// channel; it only keeps the other goroutines fed.
	PollInterval time.Duration
}

var DefaultConfig = Config{
	SettleDelay:  250 * time.Millisecond,
	PollInterval: time.Millisecond,
}

type Service struct {
	service.Base

	log    *slog.Logger
	config Config
	out    io.Writer
	rx     Receiver
	events *event.EventBus

	sleep func(time.Duration)
}

// New creates the poll service. out is the code channel: it carries one
// decimal line per decode and nothing else. The receiver must already be
// configured and bound to its pin.
func New(
	config Config,
	out io.Writer,
	rx Receiver,
	events *event.EventBus,
) *Service {
	return &Service{
		Base:   *service.New("remote"),
		log:    slog.Default().With("service", "remote"),
		config: config,
		out:    out,
		rx:     rx,
		events: events,
		sleep:  time.Sleep,
	}
}

func (s *Service) Start(
	wg *sync.WaitGroup,
) error {
	s.log.Info("starting")

	if s.State() == service.Running {
		s.log.Error("unable to start service, service already in running state")
		return service.ErrAlreadyRunning
	}

	s.SetState(service.Starting)

	wg.Add(1)
	go s.run(wg)

	s.log.Info("started")
	return nil
}

func (s *Service) Stop() error {
	s.log.Info("stopping")

	if s.State() == service.Stopped {
		s.log.Error("unable to stop service, service is not running")
		return service.ErrNotRunning
	}

	s.SetState(service.Stopping)
	s.SetState(service.Stopped)

	s.log.Info("stopped")
	return nil
}

func (s *Service) run(
	wg *sync.WaitGroup,
) {
	s.log.Info("running")

	s.SetState(service.Running)

	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic recovered", "error", r)
		}
	}()

	for {
		if !s.pollOnce() {
			s.sleep(s.config.PollInterval)
		}
	}
}

// pollOnce performs one poll step: report a pending decode, publish it,
// re-arm the receiver and hold the settle delay. It reports whether a
// decode was pending; on the idle path nothing happens and no state
// changes.
func (s *Service) pollOnce() bool {
	res, ok := s.rx.Decode()
	if !ok {
		return false
	}

	// The command value is passed through unvalidated, zero included.
	// The line is the whole wire format.
	fmt.Fprintln(s.out, res.Command)

	if s.events != nil {
		typ := event.EventCodeReceived
		if res.Repeat {
			typ = event.EventCodeRepeated
		}
		s.events.Publish(event.Event{
			Type:    typ,
			Command: res.Command,
			Address: res.Address,
		})
	}

	s.rx.Resume()
	s.sleep(s.config.SettleDelay)
	return true
}
