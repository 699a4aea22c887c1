package node

import (
	"errors"
	"testing"
)

func newTestSender(t *testing.T, data []string, window int) *Sender {
	t.Helper()
	s, err := NewSender(data, window, nil)
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}
	return s
}

func TestNewSenderValidation(t *testing.T) {
	if _, err := NewSender(nil, 3, nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Fatalf("expected ErrEmptyBuffer, got %v", err)
	}
	if _, err := NewSender([]string{"a", ""}, 3, nil); !errors.Is(err, ErrEmptyDataUnit) {
		t.Fatalf("expected ErrEmptyDataUnit, got %v", err)
	}
	if _, err := NewSender([]string{"a"}, 0, nil); !errors.Is(err, ErrWindowSize) {
		t.Fatalf("expected ErrWindowSize, got %v", err)
	}
}

func TestWindowAdmission(t *testing.T) {
	s := newTestSender(t, []string{"a", "b", "c", "d", "e"}, 2)

	// Window open, data available.
	if !s.CanSend() {
		t.Fatalf("expected CanSend with fresh sender")
	}
	s.AdvanceAttempt()
	if !s.CanSend() {
		t.Fatalf("expected CanSend with one frame outstanding")
	}
	s.AdvanceAttempt()

	// Two unacknowledged frames with windowSize 2: admission must close.
	if s.CanSend() {
		t.Fatalf("window full, CanSend must be false")
	}

	// An ack reopens it.
	if !s.OnAck(0) {
		t.Fatalf("ack 0 should advance the window")
	}
	if !s.CanSend() {
		t.Fatalf("expected CanSend after window slide")
	}
}

func TestCanSendFalseWhenBufferExhausted(t *testing.T) {
	s := newTestSender(t, []string{"a"}, 3)
	s.AdvanceAttempt()
	if s.CanSend() {
		t.Fatalf("no unsent data, CanSend must be false")
	}
	if !s.Exhausted() {
		t.Fatalf("expected Exhausted")
	}
}

func TestOnAckIgnoresLateAcks(t *testing.T) {
	s := newTestSender(t, []string{"a", "b", "c"}, 3)
	if !s.OnAck(1) {
		t.Fatalf("cumulative ack 1 should advance")
	}
	snap := s.Snapshot()
	if snap.ExpectedAck != 2 {
		t.Fatalf("expectedAck: got %d want 2", snap.ExpectedAck)
	}
	if s.OnAck(0) {
		t.Fatalf("late ack must be ignored")
	}
	if s.Snapshot().ExpectedAck != 2 {
		t.Fatalf("late ack moved the window")
	}
}

func TestDone(t *testing.T) {
	s := newTestSender(t, []string{"a", "b"}, 3)
	if s.Done() {
		t.Fatalf("fresh sender cannot be done")
	}
	s.OnAck(1)
	if !s.Done() {
		t.Fatalf("expected Done after cumulative ack of last frame")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSender(t, []string{"a", "b"}, 3)
	snap := s.Snapshot()
	snap.Buffer[0] = "mutated"
	if s.Snapshot().Buffer[0] != "a" {
		t.Fatalf("snapshot exposed internal buffer")
	}
}
