package eventq

import (
	"sync"
	"testing"
)

func TestPushDrainOrder(t *testing.T) {
	q := New[int]()

	for i := 0; i < 10; i++ {
		q.Push(i)
	}

	got := q.Drain()
	if len(got) != 10 {
		t.Fatalf("Drain() returned %d elements, want 10", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Errorf("Drain()[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestDrainEmpties(t *testing.T) {
	q := New[string]()
	q.Push("a")
	q.Push("b")

	if got := q.Drain(); len(got) != 2 {
		t.Fatalf("first Drain() returned %d elements, want 2", len(got))
	}
	if got := q.Drain(); got != nil {
		t.Errorf("second Drain() = %v, want nil", got)
	}
	if n := q.Len(); n != 0 {
		t.Errorf("Len() after drain = %d, want 0", n)
	}
}

func TestDrainEmptyQueue(t *testing.T) {
	q := New[int]()
	if got := q.Drain(); got != nil {
		t.Errorf("Drain() on empty queue = %v, want nil", got)
	}
}

func TestPushAfterDrain(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Drain()
	q.Push(2)

	got := q.Drain()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("Drain() after reuse = %v, want [2]", got)
	}
}

func TestLen(t *testing.T) {
	q := New[int]()
	if q.Len() != 0 {
		t.Fatalf("Len() of new queue = %d, want 0", q.Len())
	}
	q.Push(1)
	q.Push(2)
	q.Push(3)
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
}

// TestConcurrentProducers verifies that pushes from multiple goroutines all
// arrive and that each producer's own ordering survives interleaving.
func TestConcurrentProducers(t *testing.T) {
	const (
		producers   = 4
		perProducer = 250
	)

	q := New[[2]int]() // [producer, seq]

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push([2]int{p, i})
			}
		}(p)
	}
	wg.Wait()

	got := q.Drain()
	if len(got) != producers*perProducer {
		t.Fatalf("drained %d elements, want %d", len(got), producers*perProducer)
	}

	next := make([]int, producers)
	for _, v := range got {
		p, seq := v[0], v[1]
		if seq != next[p] {
			t.Fatalf("producer %d out of order: got seq %d, want %d", p, seq, next[p])
		}
		next[p]++
	}
}
