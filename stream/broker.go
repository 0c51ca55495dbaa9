package stream

import (
	"sync"

	"link-tracker-service/metrics"
	"link-tracker-service/models"
)

// sessionBuffer bounds how many undelivered events a session may hold
// before further deliveries to it are dropped.
const sessionBuffer = 64

// Session is the handle for one connected observer. Events are consumed
// from Events(); a session that falls behind loses deliveries rather
// than blocking the publisher.
type Session struct {
	events chan *models.CaptureEvent
}

func newSession() *Session {
	return &Session{events: make(chan *models.CaptureEvent, sessionBuffer)}
}

// Events returns the channel of capture events delivered to this session.
func (s *Session) Events() <-chan *models.CaptureEvent {
	return s.events
}

// Broker owns the live set of observer sessions and fans newly ingested
// capture events out to all of them. There is no buffering or replay: a
// session only receives events published while it is registered.
type Broker struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
}

func NewBroker() *Broker {
	return &Broker{sessions: make(map[*Session]struct{})}
}

// Subscribe creates a new session and registers it.
func (b *Broker) Subscribe() *Session {
	s := newSession()
	b.Register(s)
	return s
}

func (b *Broker) Register(s *Session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.sessions[s]; ok {
		return
	}
	b.sessions[s] = struct{}{}
	metrics.ObserverSessions.Inc()
}

// Unregister removes the session from the live set. Unregistering a
// session that is already absent is a no-op.
func (b *Broker) Unregister(s *Session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.sessions[s]; !ok {
		return
	}
	delete(b.sessions, s)
	metrics.ObserverSessions.Dec()
}

// Publish delivers event to every currently registered session. Sends are
// non-blocking: a full session drops the delivery so one slow observer
// never stalls the rest or the ingesting caller.
func (b *Broker) Publish(event *models.CaptureEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	metrics.BroadcastsTotal.Inc()
	for s := range b.sessions {
		select {
		case s.events <- event:
		default:
			metrics.BroadcastDropsTotal.Inc()
		}
	}
}

// SessionCount reports the number of currently registered sessions.
func (b *Broker) SessionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions)
}
