// Package event carries the observable protocol events the link core emits
// per operation. Presentation layers subscribe through a Recorder; the core
// itself never blocks on one.
package event

// Kind classifies a protocol event.
type Kind string

const (
	KindFraming    Kind = "framing"
	KindChannel    Kind = "channel"
	KindCRCFailure Kind = "crc_failure"
	KindMalformed  Kind = "malformed"
	KindDeliver    Kind = "deliver"
	KindBuffer     Kind = "buffer"
	KindDuplicate  Kind = "duplicate"
	KindAck        Kind = "ack"
	KindWindow     Kind = "window"
	KindState      Kind = "state"
)

// Event is one log-worthy protocol occurrence. Seq is -1 when no sequence
// number applies.
type Event struct {
	Source  string
	Kind    Kind
	Seq     int
	Message string
}

// Recorder receives events as they happen. Implementations must return
// promptly; a Step call runs to completion through every Record it makes.
type Recorder interface {
	Record(ev Event)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Record(Event) {}

// Memory retains events in arrival order, for tests and transcripts.
type Memory struct {
	events []Event
}

func (m *Memory) Record(ev Event) {
	m.events = append(m.events, ev)
}

// Events returns a copy of everything recorded so far.
func (m *Memory) Events() []Event {
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Multi fans each event out to every recorder in order.
func Multi(recorders ...Recorder) Recorder {
	return multi(recorders)
}

type multi []Recorder

func (m multi) Record(ev Event) {
	for _, r := range m {
		r.Record(ev)
	}
}
