package mqtt

import (
	"fmt"
	"testing"
)

func TestRingBufferEmpty(t *testing.T) {
	rb := newRingBuffer(10)

	if rb.len() != 0 {
		t.Errorf("len: got %d, want 0", rb.len())
	}
	if msgs := rb.drainAll(); msgs != nil {
		t.Errorf("drainAll on empty: got %v, want nil", msgs)
	}
}

func TestRingBufferPushDrain(t *testing.T) {
	rb := newRingBuffer(10)

	for i := 0; i < 3; i++ {
		dropped := rb.push(bufferedMsg{topic: fmt.Sprintf("t%d", i)})
		if dropped {
			t.Errorf("push %d: unexpected drop", i)
		}
	}

	if rb.len() != 3 {
		t.Fatalf("len: got %d, want 3", rb.len())
	}

	msgs := rb.drainAll()
	if len(msgs) != 3 {
		t.Fatalf("drained: got %d, want 3", len(msgs))
	}
	for i, m := range msgs {
		want := fmt.Sprintf("t%d", i)
		if m.topic != want {
			t.Errorf("msg %d: topic %q, want %q (oldest first)", i, m.topic, want)
		}
	}

	if rb.len() != 0 {
		t.Errorf("len after drain: got %d, want 0", rb.len())
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	const cap = 5
	rb := newRingBuffer(cap)

	var sawDrop bool
	for i := 0; i < cap+3; i++ {
		if rb.push(bufferedMsg{topic: fmt.Sprintf("t%d", i)}) {
			sawDrop = true
		}
	}
	if !sawDrop {
		t.Error("expected drops after exceeding capacity")
	}
	if rb.len() != cap {
		t.Fatalf("len: got %d, want %d", rb.len(), cap)
	}

	msgs := rb.drainAll()
	// Oldest three (t0..t2) were dropped; t3..t7 remain.
	for i, m := range msgs {
		want := fmt.Sprintf("t%d", i+3)
		if m.topic != want {
			t.Errorf("msg %d: topic %q, want %q", i, m.topic, want)
		}
	}
}

func TestRingBufferReuseAfterDrain(t *testing.T) {
	rb := newRingBuffer(4)

	rb.push(bufferedMsg{topic: "a"})
	rb.push(bufferedMsg{topic: "b"})
	rb.drainAll()

	rb.push(bufferedMsg{topic: "c"})
	msgs := rb.drainAll()
	if len(msgs) != 1 || msgs[0].topic != "c" {
		t.Errorf("after reuse: got %v", msgs)
	}
}
