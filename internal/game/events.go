package game

import "sync"

type EventType string

// Outbound events announced by the engine and session flow; presentation
// layers subscribe to react.
const (
	EventQuestionSelected     EventType = "question-selected"
	EventQuestionReadStart    EventType = "question-read-start"
	EventQuestionReadComplete EventType = "question-read-complete"
	EventBuzzingEnabled       EventType = "buzzing-enabled"
	EventBuzzingEnded         EventType = "buzzing-ended"
	EventPlayerBuzzed         EventType = "player-buzzed"
	EventAnswerTimeStart      EventType = "answer-time-start"
	EventAnswerTimeEnd        EventType = "answer-time-end"
	EventPlayerAnswered       EventType = "player-answered"
	EventScoreUpdated         EventType = "score-updated"
	EventTurnChanged          EventType = "turn-changed"
	EventRoundComplete        EventType = "round-complete"
	EventDailyDoubleFound     EventType = "daily-double-found"
	EventFinalJeopardyStart   EventType = "final-jeopardy-start"
	EventGameOver             EventType = "game-over"
	EventTimerStart           EventType = "timer-start"
	EventTimerEnd             EventType = "timer-end"
	EventStateChanged         EventType = "state-changed"
)

// Inbound UI commands carried on the same bus; the state manager reacts
// to these.
const (
	EventMicEnable         EventType = "mic-enable"
	EventMicDisable        EventType = "mic-disable"
	EventBackButtonClicked EventType = "back-button-clicked"
	EventHubShow           EventType = "hub-show"
)

type Event struct {
	Type    EventType `json:"event"`
	Payload any       `json:"payload,omitempty"`
}

type Handler func(Event)

type subscriber struct {
	id        int
	eventType EventType // empty matches every event
	handler   Handler
}

// Bus is a synchronous publish/subscribe channel owned by one session.
// Subscriptions return an id so subscribers can unregister when their
// scene goes away instead of leaking handlers.
type Bus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers []subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for one event type and returns its id.
func (that *Bus) Subscribe(eventType EventType, handler Handler) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.nextID++
	that.subscribers = append(that.subscribers, subscriber{id: that.nextID, eventType: eventType, handler: handler})

	return that.nextID
}

// SubscribeAll registers a handler for every event and returns its id.
func (that *Bus) SubscribeAll(handler Handler) int {
	return that.Subscribe("", handler)
}

func (that *Bus) Unsubscribe(id int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, sub := range that.subscribers {
		if sub.id == id {
			that.subscribers = append(that.subscribers[:i], that.subscribers[i+1:]...)
			return
		}
	}
}

// Publish fans the event out to matching subscribers in registration
// order. Handlers run synchronously on the caller's goroutine; the
// subscriber list is snapshotted first so handlers may unsubscribe.
func (that *Bus) Publish(eventType EventType, payload any) {
	that.mu.RLock()
	snapshot := make([]subscriber, len(that.subscribers))
	copy(snapshot, that.subscribers)
	that.mu.RUnlock()

	event := Event{Type: eventType, Payload: payload}
	for _, sub := range snapshot {
		if sub.eventType == "" || sub.eventType == eventType {
			sub.handler(event)
		}
	}
}
