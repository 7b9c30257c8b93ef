// Package feedback pulses the board LED when a command is decoded,
// standing in for the receiver module's own activity indicator.
package feedback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/vimusov/tvctl/firmware/internal/event"
	"github.com/vimusov/tvctl/firmware/internal/service"
)

var _ service.Service = (*Service)(nil)

// StatusPin is the subset of a GPIO output the indicator needs.
type StatusPin interface {
	High()
	Low()
}

type Config struct {
	PulseWidth time.Duration
	QueueLen   int
}

var DefaultConfig = Config{
	PulseWidth: 50 * time.Millisecond,
	QueueLen:   8,
}

type Service struct {
	service.Base

	log    *slog.Logger
	config Config
	pin    StatusPin
	events *event.EventBus
	ch     chan event.Event

	sleep func(time.Duration)
}

// New creates the indicator service. The pin must already be configured
// as an output.
func New(
	config Config,
	pin StatusPin,
	events *event.EventBus,
) *Service {
	return &Service{
		Base:   *service.New("feedback"),
		log:    slog.Default().With("service", "feedback"),
		config: config,
		pin:    pin,
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

	s.ch = make(chan event.Event, s.config.QueueLen)
	if err := s.events.Subscribe(s.ch, event.EventCodeReceived, event.EventCodeRepeated); err != nil {
		s.SetState(service.Errored)
		return err
	}

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

	for range s.ch {
		s.pulse()
	}
}

func (s *Service) pulse() {
	s.pin.High()
	s.sleep(s.config.PulseWidth)
	s.pin.Low()
}
