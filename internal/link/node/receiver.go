package node

import (
	"fmt"

	"github.com/danmuck/linksim/internal/link/event"
)

// Receiver reassembles contiguous in-order delivery from whatever survives
// the channel. Frames ahead of the delivery cursor are buffered by sequence
// number; frames behind it are duplicates.
type Receiver struct {
	nextToDeliver int
	buffered      map[int]string
	delivered     []string
	recorder      event.Recorder
}

// ReceiverSnapshot is an immutable view of receiver state for display.
type ReceiverSnapshot struct {
	NextToDeliver   int
	Buffered        map[int]string
	DeliveredPrefix int
}

func NewReceiver(rec event.Recorder) *Receiver {
	if rec == nil {
		rec = event.Nop{}
	}
	return &Receiver{
		buffered: make(map[int]string),
		recorder: rec,
	}
}

// Process handles one verified frame and returns the cumulative ack to
// send, if any. The three branches:
//
//   - in order: deliver, drain any now-contiguous buffered frames, and ack
//     the originally received sequence number (the cumulative ack as seen
//     at the moment of processing, not post-drain);
//   - future: buffer it and repeat the last contiguous ack, or stay silent
//     when nothing has been delivered yet;
//   - past: duplicate, re-ack its own sequence number without re-delivering.
func (r *Receiver) Process(seq int, data string) (int, bool) {
	switch {
	case seq == r.nextToDeliver:
		ack := seq
		r.deliver(seq, data)
		for {
			buffered, ok := r.buffered[r.nextToDeliver]
			if !ok {
				break
			}
			delete(r.buffered, r.nextToDeliver)
			r.deliver(r.nextToDeliver, buffered)
		}
		r.recorder.Record(event.Event{
			Source:  "receiver",
			Kind:    event.KindAck,
			Seq:     ack,
			Message: fmt.Sprintf("sending ack for %d", ack),
		})
		return ack, true
	case seq > r.nextToDeliver:
		r.buffered[seq] = data
		r.recorder.Record(event.Event{
			Source:  "receiver",
			Kind:    event.KindBuffer,
			Seq:     seq,
			Message: fmt.Sprintf("frame %d out of order (expected %d), buffering", seq, r.nextToDeliver),
		})
		if r.nextToDeliver == 0 {
			return 0, false
		}
		ack := r.nextToDeliver - 1
		r.recorder.Record(event.Event{
			Source:  "receiver",
			Kind:    event.KindAck,
			Seq:     ack,
			Message: fmt.Sprintf("repeating cumulative ack for %d", ack),
		})
		return ack, true
	default:
		r.recorder.Record(event.Event{
			Source:  "receiver",
			Kind:    event.KindDuplicate,
			Seq:     seq,
			Message: fmt.Sprintf("duplicate frame %d, re-sending its ack", seq),
		})
		return seq, true
	}
}

// DiscardCorrupted handles a frame the framer rejected. Corruption is total
// information loss: nothing is extracted, state stays put, and no ack goes
// back; the sender notices only the silence.
func (r *Receiver) DiscardCorrupted() {
	r.recorder.Record(event.Event{
		Source:  "receiver",
		Kind:    event.KindCRCFailure,
		Seq:     -1,
		Message: "received corrupted frame, discarding without ack",
	})
}

func (r *Receiver) deliver(seq int, data string) {
	r.delivered = append(r.delivered, data)
	r.nextToDeliver++
	r.recorder.Record(event.Event{
		Source:  "receiver",
		Kind:    event.KindDeliver,
		Seq:     seq,
		Message: fmt.Sprintf("delivering frame %d (%q) upward", seq, data),
	})
}

// Delivered returns the in-order data units handed upward so far.
func (r *Receiver) Delivered() []string {
	out := make([]string, len(r.delivered))
	copy(out, r.delivered)
	return out
}

func (r *Receiver) Snapshot() ReceiverSnapshot {
	buf := make(map[int]string, len(r.buffered))
	for k, v := range r.buffered {
		buf[k] = v
	}
	return ReceiverSnapshot{
		NextToDeliver:   r.nextToDeliver,
		Buffered:        buf,
		DeliveredPrefix: len(r.delivered),
	}
}
