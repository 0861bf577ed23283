package broadcast

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilterMapProjectsAndDrops(t *testing.T) {
	b := New[int]()
	evensAsText := FilterMap[int, string](b, func(value int) (string, bool) {
		if value%2 != 0 {
			return "", false
		}
		return strconv.Itoa(value), true
	})

	r := &recorder[string]{}
	evensAsText.Subscribe(r.sink())
	for i := range 6 {
		b.Publish(i)
	}
	b.Complete()

	values, dones := r.snapshot()
	if diff := cmp.Diff([]string{"0", "2", "4"}, values); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
	if len(dones) != 1 || dones[0] != nil {
		t.Fatalf("expected completion to pass through once, got %v", dones)
	}
}

func TestDerivedStreamsInheritFailure(t *testing.T) {
	b := New[int]()
	doubled := Map[int, int](b, func(value int) int { return value * 2 })
	positive := Filter(doubled, func(value int) bool { return value > 0 })

	r := &recorder[int]{}
	positive.Subscribe(r.sink())
	b.Publish(0)
	b.Publish(3)
	failure := errors.New("upstream failed")
	b.Fail(failure)
	b.Publish(4)

	values, dones := r.snapshot()
	if diff := cmp.Diff([]int{6}, values); diff != "" {
		t.Fatalf("derived values mismatch (-want +got):\n%s", diff)
	}
	if len(dones) != 1 || !errors.Is(dones[0], failure) {
		t.Fatalf("expected inherited failure once, got %v", dones)
	}

	late := &recorder[int]{}
	positive.Subscribe(late.sink())
	lateValues, lateDones := late.snapshot()
	if len(lateValues) != 0 || len(lateDones) != 1 || !errors.Is(lateDones[0], failure) {
		t.Fatalf("expected late derived subscriber to get only the stored failure, got values=%v dones=%v", lateValues, lateDones)
	}
}

func TestDerivedStreamIsResubscribableWithoutReplay(t *testing.T) {
	b := New[int]()
	identity := Map[int, int](b, func(value int) int { return value })

	first := &recorder[int]{}
	sub := identity.Subscribe(first.sink())
	b.Publish(1)
	sub.Cancel()
	b.Publish(2)

	second := &recorder[int]{}
	identity.Subscribe(second.sink())
	b.Publish(3)

	firstValues, _ := first.snapshot()
	secondValues, _ := second.snapshot()
	if diff := cmp.Diff([]int{1}, firstValues); diff != "" {
		t.Fatalf("first subscription mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3}, secondValues); diff != "" {
		t.Fatalf("second subscription mismatch (-want +got):\n%s", diff)
	}
	if got := b.Subscribers(); got != 1 {
		t.Fatalf("expected one upstream subscriber, got %d", got)
	}
}

type shape interface{ sides() int }
type square struct{}
type triangle struct{}

func (square) sides() int   { return 4 }
func (triangle) sides() int { return 3 }

func TestOfTypeKeepsMatchingDynamicTypes(t *testing.T) {
	b := New[shape]()
	squares := OfType[square](b)

	count := 0
	squares.Subscribe(Sink[square]{Next: func(square) { count++ }})
	b.Publish(square{})
	b.Publish(triangle{})
	b.Publish(square{})

	if count != 2 {
		t.Fatalf("expected two squares, got %d", count)
	}
}
