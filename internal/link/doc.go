// Package link drives one simulated data-link transfer: a sliding-window
// sender, a lossy channel, and a reordering receiver, advanced one protocol
// action per Step call.
//
// Ownership boundary:
//   - session lifecycle (Idle -> Running -> Finished) and Reset
//   - the per-step state machine (send, retransmit, wait, finish)
//   - snapshots and event emission for presentation layers
//
// The protocol primitives live in the subpackages bits, crc, frame, node,
// channel, and event.
package link
