package link

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/danmuck/linksim/internal/link/bits"
	"github.com/danmuck/linksim/internal/link/channel"
	"github.com/danmuck/linksim/internal/link/event"
	"github.com/danmuck/linksim/internal/link/frame"
	"github.com/danmuck/linksim/internal/link/node"
	"github.com/danmuck/linksim/internal/observability"
)

// State is the session lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// StepKind classifies what a single Step call did.
type StepKind int

const (
	StepFrameSent StepKind = iota
	StepFrameLost
	StepFrameCorrupted
	StepAckApplied
	StepWaiting
	StepFinished
)

func (k StepKind) String() string {
	switch k {
	case StepFrameSent:
		return "frame_sent"
	case StepFrameLost:
		return "frame_lost"
	case StepFrameCorrupted:
		return "frame_corrupted"
	case StepAckApplied:
		return "ack_applied"
	case StepWaiting:
		return "waiting"
	case StepFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// StepOutcome reports one Step call. Seq is the sequence number attempted,
// -1 when no frame moved. Ack is valid only for StepAckApplied.
type StepOutcome struct {
	Kind StepKind
	Seq  int
	Ack  int
}

// Params configures a session. Rand and Recorder are optional: a nil Rand
// gets a fresh seeded source, a nil Recorder discards events.
type Params struct {
	Data            []string
	Polynomial      string
	WindowSize      int
	LossProbability float64
	Corruption      bool
	Rand            channel.Rand
	Recorder        event.Recorder
}

// Session owns one simulation run. It is single-threaded and step-driven:
// every Step call runs to completion before the next may begin, and no
// protocol work ever happens in the background.
type Session struct {
	id       string
	state    State
	params   Params
	poly     bits.Bits
	recorder event.Recorder

	sender   *node.Sender
	receiver *node.Receiver
	framer   *frame.Framer
	channel  *channel.Channel

	steps int
}

// NewSession validates the configuration and builds a fresh Idle session.
// Validation fails fast; out-of-range values are never clamped.
func NewSession(p Params) (*Session, error) {
	if len(p.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidConfiguration)
	}
	for i, unit := range p.Data {
		if unit == "" {
			return nil, fmt.Errorf("%w: empty data unit at index %d", ErrInvalidConfiguration, i)
		}
	}
	poly, err := bits.Parse(p.Polynomial)
	if err != nil {
		return nil, fmt.Errorf("%w: polynomial: %v", ErrInvalidConfiguration, err)
	}
	if len(poly) <= 1 {
		return nil, fmt.Errorf("%w: polynomial must be at least 2 bits", ErrInvalidConfiguration)
	}
	if p.WindowSize < 1 {
		return nil, fmt.Errorf("%w: window size must be positive", ErrInvalidConfiguration)
	}
	if p.LossProbability < 0 || p.LossProbability > 1 {
		return nil, fmt.Errorf("%w: loss probability outside [0,1]", ErrInvalidConfiguration)
	}
	rec := p.Recorder
	if rec == nil {
		rec = event.Nop{}
	}

	s := &Session{
		id:       uuid.NewString(),
		params:   p,
		poly:     poly,
		recorder: rec,
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild constructs fresh peers from the validated parameters.
func (s *Session) rebuild() error {
	sender, err := node.NewSender(s.params.Data, s.params.WindowSize, s.recorder)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	framer, err := frame.New(s.poly, s.recorder)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	ch, err := channel.New(s.params.LossProbability, s.params.Corruption, s.params.Rand, s.recorder)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	s.sender = sender
	s.receiver = node.NewReceiver(s.recorder)
	s.framer = framer
	s.channel = ch
	s.state = StateIdle
	s.steps = 0
	return nil
}

// ID returns the run identifier.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	return s.state
}

// Steps returns how many Step calls this run has consumed.
func (s *Session) Steps() int {
	return s.steps
}

// Reset abandons the run between steps and returns the session to a fresh
// Idle state under a new run identifier. Old nodes are discarded, never
// reused.
func (s *Session) Reset() {
	// Parameters were validated at construction; rebuild cannot fail.
	_ = s.rebuild()
	s.id = uuid.NewString()
	s.recorder.Record(event.Event{
		Source:  "session",
		Kind:    event.KindState,
		Seq:     -1,
		Message: "session reset to idle",
	})
}

// Step performs at most one unit of protocol work. There are no timers and
// no background retransmission: a stalled transfer makes progress only
// through further Step calls.
func (s *Session) Step() StepOutcome {
	out := s.step()
	observability.RecordStep(out.Kind.String())
	return out
}

func (s *Session) step() StepOutcome {
	if s.state == StateFinished {
		return StepOutcome{Kind: StepFinished, Seq: -1}
	}
	if s.state == StateIdle {
		s.state = StateRunning
		s.recorder.Record(event.Event{
			Source:  "session",
			Kind:    event.KindState,
			Seq:     -1,
			Message: "simulation started",
		})
	}
	s.steps++

	switch {
	case s.sender.Done():
		s.state = StateFinished
		s.recorder.Record(event.Event{
			Source:  "session",
			Kind:    event.KindState,
			Seq:     -1,
			Message: "all data sent and acknowledged",
		})
		observability.RecordSessionFinished(s.steps)
		return StepOutcome{Kind: StepFinished, Seq: -1}

	case s.sender.CanSend():
		data, seq := s.sender.Next()
		out := s.transmit(data, seq)
		// The attempt counter moves regardless of the channel verdict;
		// a lost frame is only ever re-sent from the window base.
		s.sender.AdvanceAttempt()
		return out

	case s.sender.Exhausted():
		// No unsent data left but the window base is unacknowledged:
		// this step re-sends the oldest outstanding frame.
		data, seq := s.sender.Oldest()
		s.recorder.Record(event.Event{
			Source:  "session",
			Kind:    event.KindWindow,
			Seq:     seq,
			Message: fmt.Sprintf("retransmitting window base %d", seq),
		})
		return s.transmit(data, seq)

	default:
		s.recorder.Record(event.Event{
			Source: "session",
			Kind:   event.KindWindow,
			Seq:    -1,
			Message: fmt.Sprintf("window full, waiting for acks [%d, %d]",
				s.sender.Snapshot().ExpectedAck,
				s.sender.Snapshot().ExpectedAck+s.sender.Snapshot().WindowSize-1),
		})
		return StepOutcome{Kind: StepWaiting, Seq: -1}
	}
}

// transmit pushes one frame through encode -> channel -> decode -> receiver
// and applies any resulting cumulative ack to the sender.
func (s *Session) transmit(data string, seq int) StepOutcome {
	encoded, err := s.framer.Encode(data, seq)
	if err != nil {
		// Construction validates the polynomial and every data unit, so
		// Encode cannot fail on session-owned state.
		s.recorder.Record(event.Event{
			Source:  "session",
			Kind:    event.KindState,
			Seq:     seq,
			Message: fmt.Sprintf("encode failed: %v", err),
		})
		return StepOutcome{Kind: StepWaiting, Seq: seq}
	}

	res := s.channel.Transmit(encoded)
	observability.RecordChannelVerdict(res.Verdict.String())
	if res.Verdict == channel.VerdictLost {
		return StepOutcome{Kind: StepFrameLost, Seq: seq}
	}

	decoded, err := s.framer.Decode(res.Frame)
	if err != nil {
		s.receiver.DiscardCorrupted()
		return StepOutcome{Kind: StepFrameCorrupted, Seq: seq}
	}

	before := s.receiver.Snapshot().DeliveredPrefix
	ack, ok := s.receiver.Process(decoded.Seq, decoded.Data)
	if delivered := s.receiver.Snapshot().DeliveredPrefix - before; delivered > 0 {
		observability.RecordDeliveries(delivered)
	}
	if ok && s.sender.OnAck(ack) {
		observability.RecordAckApplied()
		return StepOutcome{Kind: StepAckApplied, Seq: seq, Ack: ack}
	}
	return StepOutcome{Kind: StepFrameSent, Seq: seq}
}

// SenderSnapshot returns an immutable view of sender state, safe to read
// from a presentation layer after a step completes.
func (s *Session) SenderSnapshot() node.SenderSnapshot {
	return s.sender.Snapshot()
}

// ReceiverSnapshot returns an immutable view of receiver state.
func (s *Session) ReceiverSnapshot() node.ReceiverSnapshot {
	return s.receiver.Snapshot()
}

// Delivered returns the data units delivered in order so far.
func (s *Session) Delivered() []string {
	return s.receiver.Delivered()
}
