package observer_test

import (
	"reflect"
	"testing"

	"studyplanner/internal/core/observer"
)

func TestRegistry_NotifyInRegistrationOrder(t *testing.T) {
	registry := observer.New[int]("test")
	var calls []string

	registry.Add(func(v int) { calls = append(calls, "first") })
	registry.Add(func(v int) { calls = append(calls, "second") })
	registry.Add(func(v int) { calls = append(calls, "third") })

	registry.Notify(7)

	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("expected %v, got %v", want, calls)
	}
}

func TestRegistry_PanicDoesNotBlockLaterListeners(t *testing.T) {
	registry := observer.New[int]("test")
	var got []int

	registry.Add(func(v int) { panic("boom") })
	registry.Add(func(v int) { got = append(got, v) })

	registry.Notify(3)
	registry.Notify(2)

	if !reflect.DeepEqual(got, []int{3, 2}) {
		t.Errorf("expected [3 2], got %v", got)
	}
}

func TestRegistry_Remove(t *testing.T) {
	var registry observer.Registry[string]
	count := 0

	remove := registry.Add(func(string) { count++ })
	registry.Notify("a")
	remove()
	remove()
	registry.Notify("b")

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
	if registry.Len() != 0 {
		t.Errorf("expected empty registry, got %d listeners", registry.Len())
	}
}

func TestRegistry_AddDuringNotifyTakesEffectNextTime(t *testing.T) {
	registry := observer.New[int]("test")
	lateCalls := 0
	added := false

	registry.Add(func(int) {
		if !added {
			added = true
			registry.Add(func(int) { lateCalls++ })
		}
	})

	registry.Notify(1)
	if lateCalls != 0 {
		t.Fatalf("listener added during delivery must not see the current value")
	}
	registry.Notify(2)
	if lateCalls != 1 {
		t.Errorf("expected late listener to be called once, got %d", lateCalls)
	}
}

func TestRegistry_NilListenerIgnored(t *testing.T) {
	registry := observer.New[int]("test")
	remove := registry.Add(nil)
	remove()
	if registry.Len() != 0 {
		t.Errorf("nil listener must not be registered")
	}
	registry.Notify(1)
}
