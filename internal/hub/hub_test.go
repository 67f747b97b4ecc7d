package hub

import (
	"testing"
	"time"

	"todoapp/internal/api/models"
)

func TestHub_DeliversToOwner(t *testing.T) {
	h := NewHub()
	go h.Run()

	ch := h.Subscribe(1)
	defer h.Unsubscribe(1, ch)

	event := TodoEvent{Action: ActionCreated, Todo: models.Todo{ID: 42, Title: "buy milk", OwnerID: 1}}
	h.Publish(1, event)

	select {
	case got := <-ch:
		if got.Action != ActionCreated || got.Todo.ID != 42 {
			t.Errorf("unexpected event %+v", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timed out waiting for event")
	}
}

func TestHub_DoesNotCrossUsers(t *testing.T) {
	h := NewHub()
	go h.Run()

	aliceCh := h.Subscribe(1)
	bobCh := h.Subscribe(2)
	defer h.Unsubscribe(1, aliceCh)
	defer h.Unsubscribe(2, bobCh)

	h.Publish(1, TodoEvent{Action: ActionCreated, Todo: models.Todo{ID: 1, OwnerID: 1}})

	select {
	case <-aliceCh:
	case <-time.After(100 * time.Millisecond):
		t.Error("timed out waiting for alice's event")
	}

	select {
	case got := <-bobCh:
		t.Errorf("bob received alice's event %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_MultipleSubscribersSameUser(t *testing.T) {
	h := NewHub()
	go h.Run()

	ch1 := h.Subscribe(1)
	ch2 := h.Subscribe(1)
	defer h.Unsubscribe(1, ch2)

	h.Publish(1, TodoEvent{Action: ActionUpdated, Todo: models.Todo{ID: 7, OwnerID: 1}})

	for i, ch := range []chan TodoEvent{ch1, ch2} {
		select {
		case got := <-ch:
			if got.Todo.ID != 7 {
				t.Errorf("subscriber %d got unexpected event %+v", i, got)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d timed out", i)
		}
	}

	// After unsubscribing, the channel is closed and no longer receives.
	h.Unsubscribe(1, ch1)
	select {
	case _, ok := <-ch1:
		if ok {
			t.Error("expected closed channel after unsubscribe")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timed out waiting for channel close")
	}

	h.Publish(1, TodoEvent{Action: ActionDeleted, Todo: models.Todo{ID: 7, OwnerID: 1}})
	select {
	case got := <-ch2:
		if got.Action != ActionDeleted {
			t.Errorf("unexpected event %+v", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("remaining subscriber timed out")
	}
}
