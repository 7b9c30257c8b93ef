package service

import (
	"errors"
	"sync"
)

type State int

const (
	Stopped State = iota
	Starting
	Running
	Stopping
	Errored
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Errored:
		return "errored"
	}
	return "unknown"
}

var ErrAlreadyRunning = errors.New("service already running")
var ErrNotRunning = errors.New("service not running")

// Service is a long-running firmware task. Start registers the task's
// goroutine on wg; the device runs until power-off, so Stop exists only
// for symmetry and tests.
type Service interface {
	Name() string
	Start(wg *sync.WaitGroup) error
	Stop() error
	State() State
}

// Base carries the name/state bookkeeping shared by all services.
type Base struct {
	name  string
	state State
}

func (b *Base) Name() string     { return b.name }
func (b *Base) SetName(n string) { b.name = n }

func (b *Base) State() State     { return b.state }
func (b *Base) SetState(s State) { b.state = s }

func New(name string) *Base {
	return &Base{
		name:  name,
		state: Stopped,
	}
}
