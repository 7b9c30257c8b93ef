//go:build tinygo

// Package remotebox wires the IR receiver, the code UART and the
// services together for the target board (Raspberry Pi Pico pinout).
package remotebox

import (
	"log/slog"
	"sync"

	"machine"

	"github.com/vimusov/tvctl/firmware/internal/device/ir"
	"github.com/vimusov/tvctl/firmware/internal/event"
	"github.com/vimusov/tvctl/firmware/internal/service"
	"github.com/vimusov/tvctl/firmware/internal/service/feedback"
	"github.com/vimusov/tvctl/firmware/internal/service/remote"
	"github.com/vimusov/tvctl/firmware/internal/service/watchdog"
)

type Config struct {
	// IRPin carries the demodulated receiver output.
	IRPin machine.Pin

	// CodeBaud is the rate of the code UART. The host side must match.
	CodeBaud uint32

	LogLevel slog.Level

	Remote   remote.Config
	Feedback feedback.Config
	Watchdog watchdog.Config
}

var DefaultConfig = Config{
	IRPin:    machine.GPIO2,
	CodeBaud: 9600,
	LogLevel: slog.LevelDebug,
	Remote:   remote.DefaultConfig,
	Feedback: feedback.DefaultConfig,
	Watchdog: watchdog.DefaultConfig,
}

type Box struct {
	config   Config
	log      *slog.Logger
	events   *event.EventBus
	receiver *ir.PinReceiver
	services *Services
}

type Services struct {
	watchdog *watchdog.Service
	remote   *remote.Service
	feedback *feedback.Service
}

func (s *Services) All() []service.Service {
	return []service.Service{
		s.watchdog,
		s.remote,
		s.feedback,
	}
}

// New brings up the hardware and builds the services. There is no
// recovery path here: if a peripheral fails to come up the device is
// left non-functional until the watchdog or a power cycle resets it.
func New(config Config) *Box {
	events := event.NewBus()

	// Code channel. Logs go to the USB serial, never here.
	machine.UART0.Configure(
		machine.UARTConfig{
			TX:       machine.GPIO0,
			RX:       machine.GPIO1,
			BaudRate: config.CodeBaud,
		},
	)

	receiver := ir.NewPinReceiver(config.IRPin)
	receiver.Configure()

	machine.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &Box{
		log:      slog.Default().With("service", "remotebox"),
		config:   config,
		events:   events,
		receiver: receiver,
		services: &Services{
			watchdog: watchdog.New(config.Watchdog),
			remote:   remote.New(config.Remote, machine.UART0, receiver, events),
			feedback: feedback.New(config.Feedback, machine.LED, events),
		},
	}
}

func (b *Box) Run() {
	b.log.Info("running")

	wg := sync.WaitGroup{}
	for _, svc := range b.services.All() {
		if err := svc.Start(&wg); err != nil {
			b.log.Error("failed to start service", "name", svc.Name())
		}
	}

	wg.Wait()
}
