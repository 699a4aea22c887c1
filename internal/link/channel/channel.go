// Package channel models the unreliable transmission medium between the
// two link nodes: probabilistic loss and probabilistic single-bit
// corruption, one verdict per send attempt, never retried on its own.
package channel

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/danmuck/linksim/internal/link/bits"
	"github.com/danmuck/linksim/internal/link/event"
)

// corruptChance is the second-draw threshold applied when corruption is
// enabled and the frame was not lost.
const corruptChance = 0.3

var ErrLossProbability = errors.New("channel: loss probability outside [0,1]")

// Rand is the randomness source for the loss and corruption draws.
// *rand.Rand from math/rand/v2 satisfies it; tests substitute a scripted
// source to force deterministic verdicts.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Verdict is what the channel did to one frame.
type Verdict int

const (
	VerdictDelivered Verdict = iota
	VerdictLost
	VerdictCorrupted
)

func (v Verdict) String() string {
	switch v {
	case VerdictDelivered:
		return "delivered"
	case VerdictLost:
		return "lost"
	case VerdictCorrupted:
		return "corrupted"
	default:
		return "unknown"
	}
}

// Result is the transient outcome of one transmission attempt. Frame is nil
// when the verdict is VerdictLost; FlippedBit is -1 unless the verdict is
// VerdictCorrupted.
type Result struct {
	Verdict    Verdict
	Frame      bits.Bits
	FlippedBit int
}

// Channel perturbs frames according to its loss probability and corruption
// toggle. Not safe for concurrent use; the session steps it serially.
type Channel struct {
	lossProbability float64
	corruption      bool
	rng             Rand
	recorder        event.Recorder
}

func New(lossProbability float64, corruption bool, rng Rand, rec event.Recorder) (*Channel, error) {
	if lossProbability < 0 || lossProbability > 1 {
		return nil, ErrLossProbability
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if rec == nil {
		rec = event.Nop{}
	}
	return &Channel{
		lossProbability: lossProbability,
		corruption:      corruption,
		rng:             rng,
		recorder:        rec,
	}, nil
}

// Transmit pushes one frame through the channel. The loss draw comes
// first; the corruption draw only runs when the frame survived. Corruption
// flips exactly one bit at a uniformly chosen index.
func (c *Channel) Transmit(f bits.Bits) Result {
	if c.rng.Float64() < c.lossProbability {
		c.recorder.Record(event.Event{
			Source:  "channel",
			Kind:    event.KindChannel,
			Seq:     -1,
			Message: "frame lost in transit",
		})
		return Result{Verdict: VerdictLost, FlippedBit: -1}
	}
	if c.corruption && len(f) > 0 && c.rng.Float64() < corruptChance {
		out := f.Clone()
		i := c.rng.IntN(len(out))
		out.Flip(i)
		c.recorder.Record(event.Event{
			Source:  "channel",
			Kind:    event.KindChannel,
			Seq:     -1,
			Message: fmt.Sprintf("bit error introduced at index %d", i),
		})
		return Result{Verdict: VerdictCorrupted, Frame: out, FlippedBit: i}
	}
	c.recorder.Record(event.Event{
		Source:  "channel",
		Kind:    event.KindChannel,
		Seq:     -1,
		Message: "frame delivered intact",
	})
	return Result{Verdict: VerdictDelivered, Frame: f, FlippedBit: -1}
}
