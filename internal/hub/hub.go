package hub

import (
	"log/slog"

	"todoapp/internal/api/models"
)

// Actions carried by a TodoEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TodoEvent describes a mutation to one of the owner's todos. Events are
// only ever delivered to subscribers authenticated as the owner.
type TodoEvent struct {
	Action string      `json:"action"`
	Todo   models.Todo `json:"todo"`
}

type subscription struct {
	userID int64
	ch     chan TodoEvent
}

type publication struct {
	userID int64
	event  TodoEvent
}

// Hub fans todo events out to per-user subscribers. All subscriber state is
// owned by the Run goroutine and reached only through channels.
type Hub struct {
	register    chan *subscription
	unregister  chan *subscription
	publish     chan *publication
	subscribers map[int64]map[chan TodoEvent]struct{}
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		register:    make(chan *subscription),
		unregister:  make(chan *subscription),
		publish:     make(chan *publication),
		subscribers: make(map[int64]map[chan TodoEvent]struct{}),
	}
}

// Run starts the hub loop. It returns when the hub's channels are closed,
// which never happens in practice; callers run it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			if h.subscribers[sub.userID] == nil {
				h.subscribers[sub.userID] = make(map[chan TodoEvent]struct{})
			}
			h.subscribers[sub.userID][sub.ch] = struct{}{}
			slog.Debug("subscriber registered", "user_id", sub.userID)

		case sub := <-h.unregister:
			if chans, ok := h.subscribers[sub.userID]; ok {
				if _, ok := chans[sub.ch]; ok {
					delete(chans, sub.ch)
					close(sub.ch)
					if len(chans) == 0 {
						delete(h.subscribers, sub.userID)
					}
				}
			}
			slog.Debug("subscriber removed", "user_id", sub.userID)

		case pub := <-h.publish:
			for ch := range h.subscribers[pub.userID] {
				select {
				case ch <- pub.event:
				default:
					// Slow consumer; drop rather than stall the hub.
				}
			}
		}
	}
}

// Subscribe registers a new event channel for the given user.
func (h *Hub) Subscribe(userID int64) chan TodoEvent {
	ch := make(chan TodoEvent, 16)
	h.register <- &subscription{userID: userID, ch: ch}
	return ch
}

// Unsubscribe removes the channel and closes it.
func (h *Hub) Unsubscribe(userID int64, ch chan TodoEvent) {
	h.unregister <- &subscription{userID: userID, ch: ch}
}

// Publish delivers the event to every subscriber of the owning user.
func (h *Hub) Publish(userID int64, event TodoEvent) {
	h.publish <- &publication{userID: userID, event: event}
}
