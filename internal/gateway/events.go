package gateway

import (
	"encoding/json"
	"sync"

	"github.com/hendrywilliam/siren/internal/structs"
)

// DispatchEvent is a decoded DISPATCH frame surfaced to the consumer
// through Session.Events(). Name is the "t" field (e.g. "MESSAGE_CREATE"),
// Data is the still-undecoded "d" payload so each consumer can unmarshal
// only the event types it cares about.
type DispatchEvent struct {
	Name     string
	Sequence uint64
	Data     json.RawMessage
}

// eventStream is the internal fan-out point: the reader goroutine pushes
// onto it, Events() exposes the read-only side. publish blocks when the
// consumer's channel is full: a slow consumer stalls the reader loop
// (and so, eventually, heartbeat liveness) rather than silently losing
// events, matching the delivery/ordering guarantee the rest of the
// gateway makes for DISPATCH frames. The only thing that unblocks a
// stuck publish is the stream being closed.
type eventStream struct {
	ch   chan DispatchEvent
	done chan struct{}
	once sync.Once
}

func newEventStream(buffer int) *eventStream {
	return &eventStream{
		ch:   make(chan DispatchEvent, buffer),
		done: make(chan struct{}),
	}
}

func (s *eventStream) publish(ev DispatchEvent) {
	select {
	case s.ch <- ev:
	case <-s.done:
	}
}

func (s *eventStream) events() <-chan DispatchEvent {
	return s.ch
}

// close unblocks every pending and future publish. It deliberately never
// closes s.ch itself: a concurrent publish racing a channel close can
// panic with "send on closed channel", so consumers must read Events()
// alongside a shutdown signal (ctx.Done()) rather than relying on the
// channel closing to end a range loop.
func (s *eventStream) close() {
	s.once.Do(func() { close(s.done) })
}

// PublishInteraction satisfies webhook.Sink: it lets the HTTP-delivered
// interaction path feed the same DispatchEvent stream the Gateway path
// publishes to, under the synthetic event name INTERACTION_CREATE, so a
// consumer never needs to know which transport an interaction arrived on.
func (s *Session) PublishInteraction(i structs.Interaction) {
	data, err := json.Marshal(i)
	if err != nil {
		s.logger.Error("gateway: could not encode webhook interaction", "error", err)
		return
	}
	s.events.publish(DispatchEvent{Name: "INTERACTION_CREATE", Data: data})
}
