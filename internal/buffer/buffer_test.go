package buffer

import "testing"

func TestAppendPeekConsume(t *testing.T) {
	var b Buffer
	b.Append([]byte{1, 2, 3})
	b.Append([]byte{4, 5})
	if b.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", b.Len())
	}
	p, ok := b.Peek(3)
	if !ok {
		t.Fatal("Peek(3) should succeed")
	}
	if string(p) != string([]byte{1, 2, 3}) {
		t.Fatalf("Peek(3) = %v", p)
	}
	if b.Len() != 5 {
		t.Fatalf("Peek must not consume, Len() = %d", b.Len())
	}
	b.Consume(3)
	if b.Len() != 2 {
		t.Fatalf("Len() after Consume(3) = %d, want 2", b.Len())
	}
	p, ok = b.Peek(2)
	if !ok || string(p) != string([]byte{4, 5}) {
		t.Fatalf("Peek(2) after Consume(3) = %v, ok=%v", p, ok)
	}
}

func TestPeekInsufficientBytes(t *testing.T) {
	var b Buffer
	b.Append([]byte{1, 2})
	if _, ok := b.Peek(3); ok {
		t.Fatal("Peek(3) should fail with only 2 buffered")
	}
}

func TestConsumePastEndPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	var b Buffer
	b.Append([]byte{1})
	b.Consume(2)
}

func TestFragmentationInvariance(t *testing.T) {
	whole := []byte("0123456789")
	chunks := [][]byte{whole[:1], whole[1:4], whole[4:4], whole[4:]}

	var b Buffer
	for _, c := range chunks {
		b.Append(c)
	}
	got, ok := b.Peek(len(whole))
	if !ok || string(got) != string(whole) {
		t.Fatalf("fragmented append = %q, ok=%v", got, ok)
	}
}
