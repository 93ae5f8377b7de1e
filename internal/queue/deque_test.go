package queue

import "testing"

func TestDequeFIFO(t *testing.T) {
	var d Deque
	d.PushBack("a")
	d.PushBack("b")
	d.PushBack("c")

	for _, want := range []string{"a", "b", "c"} {
		got, ok := d.PopFront()
		if !ok || got != want {
			t.Fatalf("PopFront = (%q, %v), want (%q, true)", got, ok, want)
		}
	}
	if _, ok := d.PopFront(); ok {
		t.Error("PopFront on empty deque should report false")
	}
}

func TestDequePushFront(t *testing.T) {
	var d Deque
	d.PushBack("b")
	d.PushBack("c")
	d.PushFront("a")

	if d.Len() != 3 {
		t.Fatalf("len = %d, want 3", d.Len())
	}
	got, _ := d.PopFront()
	if got != "a" {
		t.Errorf("PopFront = %q, want %q", got, "a")
	}
}

func TestDequeIndex(t *testing.T) {
	var d Deque
	d.PushBack("a")
	d.PushBack("b")

	if idx := d.Index("b"); idx != 1 {
		t.Errorf("Index(b) = %d, want 1", idx)
	}
	if idx := d.Index("missing"); idx != -1 {
		t.Errorf("Index(missing) = %d, want -1", idx)
	}
}
