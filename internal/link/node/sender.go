// Package node owns the two link-layer roles: the sliding-window sender and
// the reordering receiver. A node is built fresh per simulation run and
// mutated only by the session driver; it is discarded when the run ends.
package node

import (
	"errors"
	"fmt"

	"github.com/danmuck/linksim/internal/link/event"
)

var (
	ErrEmptyBuffer   = errors.New("node: empty send buffer")
	ErrWindowSize    = errors.New("node: window size must be positive")
	ErrEmptyDataUnit = errors.New("node: empty data unit")
)

// Sender tracks sliding-window state for the transmitting side. The buffer
// is immutable once the sender exists; only the counters move.
type Sender struct {
	buffer          []string
	nextFrameToSend int
	expectedAck     int
	windowSize      int
	recorder        event.Recorder
}

// SenderSnapshot is an immutable view of sender state for display.
type SenderSnapshot struct {
	Buffer          []string
	NextFrameToSend int
	ExpectedAck     int
	WindowSize      int
}

func NewSender(data []string, windowSize int, rec event.Recorder) (*Sender, error) {
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}
	for i, unit := range data {
		if unit == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyDataUnit, i)
		}
	}
	if windowSize < 1 {
		return nil, ErrWindowSize
	}
	if rec == nil {
		rec = event.Nop{}
	}
	buf := make([]string, len(data))
	copy(buf, data)
	return &Sender{buffer: buf, windowSize: windowSize, recorder: rec}, nil
}

// CanSend reports whether a new frame may enter the channel: unsent data
// must remain and fewer than windowSize frames may be outstanding. The
// strict less-than is the sliding-window admission check.
func (s *Sender) CanSend() bool {
	return s.nextFrameToSend < len(s.buffer) &&
		s.nextFrameToSend < s.expectedAck+s.windowSize
}

// Next returns the data unit and sequence number for the next send attempt.
// Callers must check CanSend first.
func (s *Sender) Next() (string, int) {
	return s.buffer[s.nextFrameToSend], s.nextFrameToSend
}

// Oldest returns the data unit and sequence number at the window base, the
// frame a step-triggered retransmission re-sends.
func (s *Sender) Oldest() (string, int) {
	return s.buffer[s.expectedAck], s.expectedAck
}

// AdvanceAttempt moves the attempt counter past the current sequence
// number. It runs once per fresh send attempt regardless of the channel
// outcome; recovery from loss rides entirely on window-base retransmission
// driven by later steps.
func (s *Sender) AdvanceAttempt() {
	s.nextFrameToSend++
}

// OnAck applies a cumulative acknowledgment and reports whether the window
// moved. Acks below the window base are late or duplicate and are ignored.
func (s *Sender) OnAck(ack int) bool {
	if ack < s.expectedAck {
		return false
	}
	s.expectedAck = ack + 1
	s.recorder.Record(event.Event{
		Source:  "sender",
		Kind:    event.KindWindow,
		Seq:     ack,
		Message: fmt.Sprintf("ack %d received, window base moved to %d", ack, s.expectedAck),
	})
	return true
}

// Done reports whether every buffered unit has been sent and acknowledged.
func (s *Sender) Done() bool {
	return s.expectedAck >= len(s.buffer)
}

// Exhausted reports whether the attempt counter has run past the buffer.
func (s *Sender) Exhausted() bool {
	return s.nextFrameToSend >= len(s.buffer)
}

func (s *Sender) Snapshot() SenderSnapshot {
	buf := make([]string, len(s.buffer))
	copy(buf, s.buffer)
	return SenderSnapshot{
		Buffer:          buf,
		NextFrameToSend: s.nextFrameToSend,
		ExpectedAck:     s.expectedAck,
		WindowSize:      s.windowSize,
	}
}
