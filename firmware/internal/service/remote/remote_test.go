package remote

import (
	"bytes"
	"testing"
	"time"

	"github.com/vimusov/tvctl/firmware/internal/device/ir"
	"github.com/vimusov/tvctl/firmware/internal/event"
)

// fakeReceiver is a scripted decode capability.
type fakeReceiver struct {
	results []ir.Result

	decodeCalls int
	resumeCalls int
}

func (f *fakeReceiver) Decode() (ir.Result, bool) {
	f.decodeCalls++
	if len(f.results) == 0 {
		return ir.Result{}, false
	}
	return f.results[0], true
}

func (f *fakeReceiver) Resume() {
	f.resumeCalls++
	f.results = f.results[1:]
}

func newTestService(rx Receiver, out *bytes.Buffer) (*Service, *[]time.Duration) {
	var slept []time.Duration
	s := New(DefaultConfig, out, rx, nil)
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	return s, &slept
}

func TestPollOnceReportsDecode(t *testing.T) {
	var out bytes.Buffer
	rx := &fakeReceiver{results: []ir.Result{{Command: 34}}}
	s, slept := newTestService(rx, &out)

	if !s.pollOnce() {
		t.Fatal("pollOnce() = false with a decode pending")
	}

	if got := out.String(); got != "34\n" {
		t.Fatalf("output = %q, want %q", got, "34\n")
	}
	if rx.resumeCalls != 1 {
		t.Fatalf("Resume called %d times, want 1", rx.resumeCalls)
	}
	if len(*slept) != 1 || (*slept)[0] != DefaultConfig.SettleDelay {
		t.Fatalf("settle sleeps = %v, want one of %v", *slept, DefaultConfig.SettleDelay)
	}
}

func TestPollOnceIdle(t *testing.T) {
	var out bytes.Buffer
	rx := &fakeReceiver{}
	s, slept := newTestService(rx, &out)

	for i := 0; i < 100; i++ {
		if s.pollOnce() {
			t.Fatalf("poll %d: pollOnce() = true with nothing pending", i)
		}
	}

	if out.Len() != 0 {
		t.Fatalf("idle polling produced output: %q", out.String())
	}
	if rx.resumeCalls != 0 {
		t.Fatalf("Resume called %d times on idle path, want 0", rx.resumeCalls)
	}
	// No settle pause on the idle path; the run loop owns the yield.
	if len(*slept) != 0 {
		t.Fatalf("idle path slept: %v", *slept)
	}
}

func TestPollOncePassThrough(t *testing.T) {
	cases := []struct {
		command uint16
		want    string
	}{
		{command: 34, want: "34\n"},
		{command: 0, want: "0\n"}, // malformed decodes print as-is
		{command: 65535, want: "65535\n"},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		rx := &fakeReceiver{results: []ir.Result{{Command: tc.command}}}
		s, _ := newTestService(rx, &out)

		s.pollOnce()

		if got := out.String(); got != tc.want {
			t.Errorf("command %d: output = %q, want %q", tc.command, got, tc.want)
		}
	}
}

func TestPollOnceNoDoubleReport(t *testing.T) {
	var out bytes.Buffer

	// A real latch, not the scripted fake: consume and re-poll.
	var rx ir.Receiver
	rx.Push(ir.Result{Command: 34})

	s, _ := newTestService(&rx, &out)

	if !s.pollOnce() {
		t.Fatal("first pollOnce() = false")
	}
	for i := 0; i < 10; i++ {
		if s.pollOnce() {
			t.Fatalf("poll %d: decode reported twice", i)
		}
	}

	if got := out.String(); got != "34\n" {
		t.Fatalf("output = %q, want single %q line", got, "34")
	}
}

func TestPollOncePublishesEvents(t *testing.T) {
	var out bytes.Buffer
	rx := &fakeReceiver{results: []ir.Result{
		{Command: 34, Address: 4},
		{Command: 34, Address: 4, Repeat: true},
	}}

	events := event.NewBus()
	ch := make(chan event.Event, 2)
	if err := events.Subscribe(ch, event.EventCodeReceived, event.EventCodeRepeated); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	s := New(DefaultConfig, &out, rx, events)
	s.sleep = func(time.Duration) {}

	s.pollOnce()
	s.pollOnce()

	first := <-ch
	if first.Type != event.EventCodeReceived || first.Command != 34 {
		t.Fatalf("first event = %+v, want EventCodeReceived command 34", first)
	}
	second := <-ch
	if second.Type != event.EventCodeRepeated {
		t.Fatalf("second event = %+v, want EventCodeRepeated", second)
	}

	// Repeat frames still go out on the code channel.
	if got := out.String(); got != "34\n34\n" {
		t.Fatalf("output = %q, want %q", got, "34\n34\n")
	}
}
