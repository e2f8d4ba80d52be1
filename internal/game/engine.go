package game

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/MohammedAli93/jeopardy/internal/entity"
	"github.com/MohammedAli93/jeopardy/internal/questions"
)

// DefaultBuzzCeiling is the safety net that force-closes a buzz window the
// UI never resolved; it is deliberately far longer than the visible
// countdown.
const DefaultBuzzCeiling = 30 * time.Second

// Options tune an Engine; zero values select production defaults.
type Options struct {
	BuzzCeiling time.Duration
	Source      rand.Source
}

// Engine is the turn/round/buzzing state machine of one game session. It
// exclusively owns the players, game state and buzzing state, and
// announces every mutation on its event bus.
//
// Gameplay misuse (unknown lookups, out-of-range indices, re-entrant
// buzz calls) never returns errors or panics; it degrades to
// false/nil/-1 so a live game cannot crash mid-show.
//
// Methods are safe to call from overlapping timer callbacks: the guard
// check and state mutation of PlayerBuzz happen under one lock, so the
// first caller past the guard wins regardless of scheduling order.
// Events are published after the lock is released so handlers may call
// back into the engine.
type Engine struct {
	logger *slog.Logger
	bank   *questions.Bank
	events *Bus
	rng    *rand.Rand

	buzzCeiling time.Duration

	mu           sync.Mutex
	players      []*entity.Player
	state        State
	buzzing      BuzzingState
	ladder       []int
	ceilingTimer *time.Timer
}

func NewEngine(logger *slog.Logger, bank *questions.Bank, players []*entity.Player, opts Options) *Engine {
	if opts.BuzzCeiling <= 0 {
		opts.BuzzCeiling = DefaultBuzzCeiling
	}
	if opts.Source == nil {
		opts.Source = rand.NewSource(time.Now().UnixNano())
	}

	engine := &Engine{
		logger:      logger.With("component", "engine"),
		bank:        bank,
		events:      NewBus(),
		rng:         rand.New(opts.Source), //nolint: gosec // it's ok
		buzzCeiling: opts.BuzzCeiling,
		players:     players,
		state: State{
			Round:                entity.RoundJeopardy,
			AnsweredQuestions:    make(map[string]struct{}),
			CurrentPlayerIndex:   -1,
			AnsweringPlayerIndex: -1,
		},
		buzzing: BuzzingState{FastestPlayer: -1},
		ladder:  entity.DefaultPriceLadder,
	}

	return engine
}

func (that *Engine) Events() *Bus {
	return that.events
}

// ResetGame restores the session to a fresh first round: scores zeroed,
// answered set cleared, a random player picked to lead, categories and
// the working price ladder recomputed from the bank, and daily doubles
// regenerated.
func (that *Engine) ResetGame() {
	that.mu.Lock()

	for _, player := range that.players {
		player.Score = 0
		player.IsActive = false
	}

	that.state.Round = entity.RoundJeopardy
	that.state.AnsweredQuestions = make(map[string]struct{})
	that.state.CurrentQuestion = nil
	that.state.AnsweringPlayerIndex = -1

	if len(that.players) > 0 {
		that.state.CurrentPlayerIndex = that.rng.Intn(len(that.players))
	} else {
		that.state.CurrentPlayerIndex = -1
	}

	that.state.Categories = that.bank.Categories()
	that.ladder = that.bank.PriceLadder()
	if len(that.ladder) == 0 {
		that.ladder = entity.DefaultPriceLadder
	}

	that.resetBuzzingLocked()
	that.setupDailyDoublesLocked()

	// Payloads are value snapshots; a subscriber marshaling on its own
	// goroutine must not race later score mutations.
	var payload any
	if current := that.currentPlayerLocked(); current != nil {
		payload = *current
	}
	that.mu.Unlock()

	that.events.Publish(EventTurnChanged, payload)
}

// SetupDailyDoubles regenerates daily-double placements for the current
// round: one slot in jeopardy, two distinct slots in double jeopardy,
// none in the final round.
func (that *Engine) SetupDailyDoubles() {
	that.mu.Lock()
	that.setupDailyDoublesLocked()
	that.mu.Unlock()
}

func (that *Engine) setupDailyDoublesLocked() {
	that.state.DailyDoubleLocations = nil

	var count int
	switch that.state.Round {
	case entity.RoundJeopardy:
		count = 1
	case entity.RoundDoubleJeopardy:
		count = 2
	default:
		return
	}

	categories := len(that.state.Categories)
	values := len(that.ladder)
	if categories == 0 || values == 0 {
		return
	}
	if categories*values < count {
		count = categories * values
	}

	for len(that.state.DailyDoubleLocations) < count {
		location := entity.DailyDoubleLocation{
			CategoryIndex: that.rng.Intn(categories),
			ValueIndex:    that.rng.Intn(values),
		}
		if !containsLocation(that.state.DailyDoubleLocations, location) {
			that.state.DailyDoubleLocations = append(that.state.DailyDoubleLocations, location)
		}
	}
}

// AdvanceToNextRound moves jeopardy -> double-jeopardy -> final-jeopardy
// and returns the resulting round. The first advancement clears the
// answered set and regenerates daily doubles. Final jeopardy is terminal:
// advancing from it is a no-op.
func (that *Engine) AdvanceToNextRound() string {
	that.mu.Lock()

	var events []Event
	switch that.state.Round {
	case entity.RoundJeopardy:
		that.state.Round = entity.RoundDoubleJeopardy
		that.state.AnsweredQuestions = make(map[string]struct{})
		that.state.CurrentQuestion = nil
		that.setupDailyDoublesLocked()
		events = append(events, Event{Type: EventRoundComplete, Payload: entity.RoundJeopardy})
	case entity.RoundDoubleJeopardy:
		that.state.Round = entity.RoundFinalJeopardy
		events = append(events,
			Event{Type: EventRoundComplete, Payload: entity.RoundDoubleJeopardy},
			Event{Type: EventFinalJeopardyStart},
		)
	case entity.RoundFinalJeopardy:
		// terminal
	}

	round := that.state.Round
	that.mu.Unlock()

	that.publish(events)

	return round
}

// NextPlayerTurn advances the current player circularly and announces the
// new current player.
func (that *Engine) NextPlayerTurn() *entity.Player {
	that.mu.Lock()
	if len(that.players) == 0 {
		that.mu.Unlock()
		return nil
	}

	that.state.CurrentPlayerIndex = (that.state.CurrentPlayerIndex + 1) % len(that.players)
	current := that.players[that.state.CurrentPlayerIndex]
	snapshot := *current
	that.mu.Unlock()

	that.events.Publish(EventTurnChanged, snapshot)

	return current
}

// SetCurrentPicker hands question selection to the given player, e.g.
// after a correct answer. Out-of-range indices are ignored.
func (that *Engine) SetCurrentPicker(playerIndex int) {
	that.mu.Lock()
	if playerIndex >= 0 && playerIndex < len(that.players) {
		that.state.CurrentPlayerIndex = playerIndex
	}
	that.mu.Unlock()
}

// StartBuzzing opens a fresh buzz window: order and fastest player are
// cleared, the start time stamped, and the safety ceiling armed.
func (that *Engine) StartBuzzing() {
	that.mu.Lock()
	that.buzzing = BuzzingState{
		IsBuzzingActive:      true,
		FastestPlayer:        -1,
		BuzzStartTime:        time.Now(),
		QuestionReadComplete: true,
	}
	that.armCeilingLocked()
	that.mu.Unlock()

	that.events.Publish(EventBuzzingEnabled, nil)
}

// ReopenBuzzing re-arms the window after a wrong answer while preserving
// the accumulated buzz order, so players who already missed cannot retry
// the same question.
func (that *Engine) ReopenBuzzing() {
	that.mu.Lock()
	order := that.buzzing.BuzzOrder
	that.buzzing = BuzzingState{
		IsBuzzingActive:      true,
		BuzzOrder:            order,
		FastestPlayer:        -1,
		BuzzStartTime:        time.Now(),
		QuestionReadComplete: true,
	}
	that.state.AnsweringPlayerIndex = -1
	that.armCeilingLocked()
	that.mu.Unlock()

	that.events.Publish(EventBuzzingEnabled, nil)
}

// PlayerBuzz records a buzz attempt. It is rejected unless a window is
// open with the question fully read, and a player may appear in the buzz
// order at most once per question. The first accepted buzz resolves the
// window and returns true; every other call returns false.
func (that *Engine) PlayerBuzz(playerIndex int) bool {
	that.mu.Lock()

	if playerIndex < 0 || playerIndex >= len(that.players) {
		that.mu.Unlock()
		return false
	}

	// A resolved window (fastest player set) still accepts latecomers into
	// the buzz order; only a fully closed window rejects outright.
	open := that.buzzing.QuestionReadComplete &&
		(that.buzzing.IsBuzzingActive || that.buzzing.FastestPlayer >= 0)
	if !open {
		that.mu.Unlock()
		return false
	}

	for _, idx := range that.buzzing.BuzzOrder {
		if idx == playerIndex {
			that.mu.Unlock()
			return false
		}
	}

	that.buzzing.BuzzOrder = append(that.buzzing.BuzzOrder, playerIndex)
	events := []Event{{Type: EventPlayerBuzzed, Payload: playerIndex}}

	won := that.buzzing.FastestPlayer < 0
	if won {
		that.buzzing.FastestPlayer = playerIndex
		that.state.AnsweringPlayerIndex = playerIndex
		that.buzzing.IsBuzzingActive = false
		that.stopCeilingLocked()
		events = append(events, Event{Type: EventAnswerTimeStart, Payload: playerIndex})
	}

	that.mu.Unlock()
	that.publish(events)

	return won
}

// EndBuzzing force-closes an active window without a winner. Calling it
// when no window is active is ignored.
func (that *Engine) EndBuzzing() {
	that.mu.Lock()
	if !that.buzzing.IsBuzzingActive {
		that.mu.Unlock()
		return
	}

	that.buzzing.IsBuzzingActive = false
	that.stopCeilingLocked()
	that.mu.Unlock()

	that.events.Publish(EventBuzzingEnded, nil)
}

// ResetBuzzing hard-resets the whole buzzing state between questions.
func (that *Engine) ResetBuzzing() {
	that.mu.Lock()
	that.resetBuzzingLocked()
	that.mu.Unlock()
}

func (that *Engine) resetBuzzingLocked() {
	that.stopCeilingLocked()
	that.buzzing = BuzzingState{FastestPlayer: -1}
}

func (that *Engine) armCeilingLocked() {
	that.stopCeilingLocked()
	that.ceilingTimer = time.AfterFunc(that.buzzCeiling, func() {
		that.logger.Warn("buzzing ceiling reached, forcing end of buzz window")
		that.EndBuzzing()
	})
}

func (that *Engine) stopCeilingLocked() {
	if that.ceilingTimer != nil {
		that.ceilingTimer.Stop()
		that.ceilingTimer = nil
	}
}

// UpdatePlayerScore adds delta to a player's score. Scores have no floor:
// negative totals are legal and exclude the player from the final round.
func (that *Engine) UpdatePlayerScore(playerIndex, delta int) {
	that.mu.Lock()
	if playerIndex < 0 || playerIndex >= len(that.players) {
		that.mu.Unlock()
		return
	}

	player := that.players[playerIndex]
	player.Score += delta
	snapshot := *player
	that.mu.Unlock()

	that.events.Publish(EventScoreUpdated, snapshot)
}

// SetCurrentQuestion records the question in play and announces it.
func (that *Engine) SetCurrentQuestion(question *entity.Question) {
	that.mu.Lock()
	that.state.CurrentQuestion = question
	that.buzzing.QuestionReadComplete = false
	var payload any
	if question != nil {
		payload = *question
	}
	that.mu.Unlock()

	that.events.Publish(EventQuestionSelected, payload)
}

func (that *Engine) ClearCurrentQuestion() {
	that.mu.Lock()
	that.state.CurrentQuestion = nil
	that.mu.Unlock()
}

// BeginQuestionReading and CompleteQuestionReading bracket the clue
// read-out; buzzes are rejected until reading completes.
func (that *Engine) BeginQuestionReading() {
	that.mu.Lock()
	that.buzzing.QuestionReadComplete = false
	var payload any
	if that.state.CurrentQuestion != nil {
		payload = *that.state.CurrentQuestion
	}
	that.mu.Unlock()

	that.events.Publish(EventQuestionReadStart, payload)
}

func (that *Engine) CompleteQuestionReading() {
	that.mu.Lock()
	that.buzzing.QuestionReadComplete = true
	that.mu.Unlock()

	that.events.Publish(EventQuestionReadComplete, nil)
}

// MarkQuestionAnswered retires a board slot and records the winner on the
// question record.
func (that *Engine) MarkQuestionAnswered(category string, price int, winner string) {
	that.mu.Lock()
	that.state.AnsweredQuestions[entity.AnsweredKey(category, price)] = struct{}{}
	if question := that.bank.QuestionByCategoryAndPrice(category, price); question != nil && winner != "" {
		question.Winner = winner
	}
	that.mu.Unlock()
}

// Close cancels pending timers; call on session teardown so a stale
// ceiling callback cannot mutate state after the round moved on.
func (that *Engine) Close() {
	that.mu.Lock()
	that.stopCeilingLocked()
	that.mu.Unlock()
}

func (that *Engine) publish(events []Event) {
	for _, event := range events {
		that.events.Publish(event.Type, event.Payload)
	}
}

func containsLocation(locations []entity.DailyDoubleLocation, location entity.DailyDoubleLocation) bool {
	for _, existing := range locations {
		if existing == location {
			return true
		}
	}

	return false
}
