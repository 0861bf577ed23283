package broadcast

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder[T any] struct {
	mu     sync.Mutex
	values []T
	dones  []error
}

func (r *recorder[T]) sink() Sink[T] {
	return Sink[T]{
		Next: func(value T) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.values = append(r.values, value)
		},
		Done: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.dones = append(r.dones, err)
		},
	}
}

func (r *recorder[T]) snapshot() ([]T, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...), append([]error(nil), r.dones...)
}

func TestSubscribersAttachedBeforePublishSeeIdenticalSequences(t *testing.T) {
	b := New[int]()
	first, second := &recorder[int]{}, &recorder[int]{}
	b.Subscribe(first.sink())
	b.Subscribe(second.sink())

	for i := range 5 {
		if !b.Publish(i) {
			t.Fatalf("expected publish %d to be delivered", i)
		}
	}

	firstValues, _ := first.snapshot()
	secondValues, _ := second.snapshot()
	expected := []int{0, 1, 2, 3, 4}
	if diff := cmp.Diff(expected, firstValues); diff != "" {
		t.Fatalf("first subscriber sequence mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(expected, secondValues); diff != "" {
		t.Fatalf("second subscriber sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestDeliveryFollowsAttachmentOrder(t *testing.T) {
	b := New[string]()
	order := []string{}
	b.Subscribe(Sink[string]{Next: func(string) { order = append(order, "first") }})
	b.Subscribe(Sink[string]{Next: func(string) { order = append(order, "second") }})
	b.Subscribe(Sink[string]{Next: func(string) { order = append(order, "third") }})

	b.Publish("event")

	if diff := cmp.Diff([]string{"first", "second", "third"}, order); diff != "" {
		t.Fatalf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestLateSubscriberSeesNoHistory(t *testing.T) {
	b := New[int]()
	b.Publish(1)
	b.Publish(2)

	late := &recorder[int]{}
	b.Subscribe(late.sink())
	b.Publish(3)
	failure := errors.New("stop")
	b.Fail(failure)

	values, dones := late.snapshot()
	if diff := cmp.Diff([]int{3}, values); diff != "" {
		t.Fatalf("late subscriber values mismatch (-want +got):\n%s", diff)
	}
	if len(dones) != 1 || !errors.Is(dones[0], failure) {
		t.Fatalf("expected one terminal failure, got %v", dones)
	}
}

func TestPublishWithoutSubscribersIsDelivered(t *testing.T) {
	b := New[int]()
	if !b.Publish(1) {
		t.Fatalf("expected publish without subscribers to succeed")
	}
}

func TestTerminationIsFinal(t *testing.T) {
	b := New[int]()
	early := &recorder[int]{}
	b.Subscribe(early.sink())

	failure := errors.New("hard failure")
	if !b.Fail(failure) {
		t.Fatalf("expected first termination to succeed")
	}
	if b.Complete() {
		t.Fatalf("expected second termination to be rejected")
	}
	if b.Publish(42) {
		t.Fatalf("expected publish after termination to be rejected")
	}

	late := &recorder[int]{}
	sub := b.Subscribe(late.sink())
	sub.Cancel()

	earlyValues, earlyDones := early.snapshot()
	lateValues, lateDones := late.snapshot()
	if len(earlyValues) != 0 || len(lateValues) != 0 {
		t.Fatalf("expected no values after termination, got early=%v late=%v", earlyValues, lateValues)
	}
	if len(earlyDones) != 1 || !errors.Is(earlyDones[0], failure) {
		t.Fatalf("expected early subscriber to see the failure once, got %v", earlyDones)
	}
	if len(lateDones) != 1 || !errors.Is(lateDones[0], failure) {
		t.Fatalf("expected late subscriber to see the stored failure once, got %v", lateDones)
	}

	terminated, err := b.Terminated()
	if !terminated || !errors.Is(err, failure) {
		t.Fatalf("expected terminated with failure, got terminated=%t err=%v", terminated, err)
	}
}

func TestCompleteDeliversNilError(t *testing.T) {
	b := New[int]()
	r := &recorder[int]{}
	b.Subscribe(r.sink())
	b.Complete()

	_, dones := r.snapshot()
	if len(dones) != 1 || dones[0] != nil {
		t.Fatalf("expected a single nil completion, got %v", dones)
	}
}

func TestCancelStopsOnlyThatSubscriber(t *testing.T) {
	b := New[int]()
	kept, cancelled := &recorder[int]{}, &recorder[int]{}
	b.Subscribe(kept.sink())
	sub := b.Subscribe(cancelled.sink())

	b.Publish(1)
	sub.Cancel()
	sub.Cancel()
	b.Publish(2)
	b.Complete()

	keptValues, keptDones := kept.snapshot()
	cancelledValues, cancelledDones := cancelled.snapshot()
	if diff := cmp.Diff([]int{1, 2}, keptValues); diff != "" {
		t.Fatalf("kept subscriber mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, cancelledValues); diff != "" {
		t.Fatalf("cancelled subscriber mismatch (-want +got):\n%s", diff)
	}
	if len(keptDones) != 1 {
		t.Fatalf("expected kept subscriber to complete once, got %d", len(keptDones))
	}
	if len(cancelledDones) != 0 {
		t.Fatalf("expected cancelled subscriber not to receive the terminal signal")
	}
	if got := b.Subscribers(); got != 0 {
		t.Fatalf("expected no subscribers after termination, got %d", got)
	}
}

func TestSinkMayCancelItselfDuringDelivery(t *testing.T) {
	b := New[int]()
	var sub *Subscription
	received := 0
	sub = b.Subscribe(Sink[int]{Next: func(int) {
		received++
		sub.Cancel()
	}})

	b.Publish(1)
	b.Publish(2)

	if received != 1 {
		t.Fatalf("expected one delivery before self-cancel, got %d", received)
	}
}

func TestSinkMaySubscribeDuringDelivery(t *testing.T) {
	b := New[int]()
	nested := &recorder[int]{}
	subscribed := false
	b.Subscribe(Sink[int]{Next: func(int) {
		if !subscribed {
			subscribed = true
			b.Subscribe(nested.sink())
		}
	}})

	b.Publish(1)
	b.Publish(2)

	values, _ := nested.snapshot()
	if diff := cmp.Diff([]int{2}, values); diff != "" {
		t.Fatalf("nested subscriber mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentSubscribeKeepsOrderForAttachedSubscribers(t *testing.T) {
	b := New[int]()
	const total = 500

	anchor := &recorder[int]{}
	b.Subscribe(anchor.sink())

	var wg sync.WaitGroup
	recorders := make([]*recorder[int], 20)
	for i := range recorders {
		recorders[i] = &recorder[int]{}
		wg.Add(1)
		go func(index int, r *recorder[int]) {
			defer wg.Done()
			sub := b.Subscribe(r.sink())
			if index%2 == 0 {
				sub.Cancel()
			}
		}(i, recorders[i])
	}

	publisherDone := make(chan struct{})
	go func() {
		defer close(publisherDone)
		for i := range total {
			b.Publish(i)
		}
	}()

	wg.Wait()
	<-publisherDone
	b.Complete()

	anchorValues, anchorDones := anchor.snapshot()
	if len(anchorValues) != total {
		t.Fatalf("expected anchor to see %d values, got %d", total, len(anchorValues))
	}
	if len(anchorDones) != 1 {
		t.Fatalf("expected anchor to complete once, got %d", len(anchorDones))
	}

	for _, r := range append(recorders, anchor) {
		values, dones := r.snapshot()
		for i := 1; i < len(values); i++ {
			if values[i] != values[i-1]+1 {
				t.Fatalf("expected contiguous values, got %d after %d", values[i], values[i-1])
			}
		}
		if len(dones) > 1 {
			t.Fatalf("expected at most one terminal signal, got %d", len(dones))
		}
	}
}

func TestConcurrentSubscribeAndTerminateDeliversDoneExactlyOnce(t *testing.T) {
	b := New[int]()
	recorders := make([]*recorder[int], 50)

	var wg sync.WaitGroup
	for i := range recorders {
		recorders[i] = &recorder[int]{}
		wg.Add(1)
		go func(r *recorder[int]) {
			defer wg.Done()
			b.Subscribe(r.sink())
		}(recorders[i])
	}
	failure := errors.New("terminal")
	b.Fail(failure)
	wg.Wait()

	for i, r := range recorders {
		_, dones := r.snapshot()
		if len(dones) != 1 || !errors.Is(dones[0], failure) {
			t.Fatalf("subscriber %d: expected exactly one terminal failure, got %v", i, dones)
		}
	}
}
