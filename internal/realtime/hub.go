package realtime

// Streams are named per channel or conversation; one live feed each.

func ChannelStream(channelID string) string {
	return "channel:" + channelID
}

func ConversationStream(conversationID string) string {
	return "conversation:" + conversationID
}

// Subscriber is one attached listener. Events that change its projection are
// forwarded on C; duplicates (an "added" for an id already cached) are
// swallowed.
type Subscriber struct {
	stream     string
	send       chan Event
	projection *Projection
}

func (s *Subscriber) C() <-chan Event {
	return s.send
}

func (s *Subscriber) Stream() string {
	return s.stream
}

type subscription struct {
	sub  *Subscriber
	done chan struct{}
}

type broadcast struct {
	stream string
	event  Event
}

// Hub fans document change events out to the subscribers of each stream.
// All subscription state is owned by the Run loop.
type Hub struct {
	streams    map[string]map[*Subscriber]bool
	register   chan subscription
	unregister chan *Subscriber
	events     chan broadcast
}

func NewHub() *Hub {
	return &Hub{
		streams:    make(map[string]map[*Subscriber]bool),
		register:   make(chan subscription),
		unregister: make(chan *Subscriber),
		events:     make(chan broadcast),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			subs, ok := h.streams[reg.sub.stream]
			if !ok {
				subs = make(map[*Subscriber]bool)
				h.streams[reg.sub.stream] = subs
			}
			subs[reg.sub] = true
			close(reg.done)

		case sub := <-h.unregister:
			if subs, ok := h.streams[sub.stream]; ok {
				if subs[sub] {
					delete(subs, sub)
					close(sub.send)
				}
				if len(subs) == 0 {
					delete(h.streams, sub.stream)
				}
			}

		case b := <-h.events:
			for sub := range h.streams[b.stream] {
				if !sub.projection.Apply(b.event) {
					continue
				}
				select {
				case sub.send <- b.event:
				default:
					// Slow consumer: drop it rather than stall the stream.
					delete(h.streams[b.stream], sub)
					close(sub.send)
				}
			}
		}
	}
}

// Subscribe attaches a listener with a fresh projection window.
func (h *Hub) Subscribe(stream string) *Subscriber {
	sub := &Subscriber{
		stream:     stream,
		send:       make(chan Event, 32),
		projection: NewProjection(LiveWindow),
	}

	done := make(chan struct{})
	h.register <- subscription{sub: sub, done: done}
	<-done

	return sub
}

// Unsubscribe detaches the listener and closes its event channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.unregister <- sub
}

// Broadcast delivers one change event to every subscriber of the stream.
func (h *Hub) Broadcast(stream string, event Event) {
	h.events <- broadcast{stream: stream, event: event}
}
