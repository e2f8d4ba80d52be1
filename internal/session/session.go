package session

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/MohammedAli93/jeopardy/internal/ai"
	"github.com/MohammedAli93/jeopardy/internal/apperror"
	"github.com/MohammedAli93/jeopardy/internal/entity"
	"github.com/MohammedAli93/jeopardy/internal/game"
	"github.com/MohammedAli93/jeopardy/internal/questions"
)

type Phase string

const (
	PhaseChoosing     Phase = "choosing"
	PhaseWagering     Phase = "wagering"
	PhaseReading      Phase = "reading"
	PhaseBuzzing      Phase = "buzzing"
	PhaseAnswering    Phase = "answering"
	PhaseFinalWagers  Phase = "final-wagers"
	PhaseFinalAnswers Phase = "final-answers"
	PhaseOver         Phase = "over"
)

// minimumDailyDoubleWager is the wager ceiling granted even to players
// with little or nothing on the board, per standard rules.
const minimumDailyDoubleWager = 1000

// Timing holds the session's countdown tunables.
type Timing struct {
	BuzzWindow     time.Duration
	AnswerWindow   time.Duration
	BuzzCeiling    time.Duration
	ReadingPerWord time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		BuzzWindow:     8 * time.Second,
		AnswerWindow:   5 * time.Second,
		BuzzCeiling:    game.DefaultBuzzCeiling,
		ReadingPerWord: 200 * time.Millisecond,
	}
}

// PendingBuzz is a scheduled AI buzz intent for the open window. Intents
// live on the session, not on the player entity, and are dropped wholesale
// whenever the window resolves.
type PendingBuzz struct {
	PlayerIndex int           `json:"player_index"`
	Delay       time.Duration `json:"delay"`
}

// AnswerResult is the payload of a player-answered event.
type AnswerResult struct {
	PlayerIndex int    `json:"player_index"`
	PlayerName  string `json:"player_name"`
	Correct     bool   `json:"correct"`
}

// Session drives one full game: question selection, daily doubles, clue
// reading, the buzz and answer windows, AI scheduling and the final
// round. It owns the engine and simulator for its lifetime.
//
// Timer callbacks carry the generation they were scheduled under; any
// phase change bumps the generation, so a stale callback that fires
// after the round moved on is discarded instead of mutating state.
type Session struct {
	id     string
	logger *slog.Logger
	engine *game.Engine
	sim    *ai.Simulator
	bank   *questions.Bank
	timing Timing

	states *game.StateManager

	mu             sync.Mutex
	phase          Phase
	question       *entity.Question
	dailyDouble    bool
	finderIndex    int
	answeringIndex int
	maxWager       int
	wager          int
	pendingBuzzes  []PendingBuzz
	final          *finalRound
	timers         []*time.Timer
	generation     int
	closed         bool
}

func newSession(id string, logger *slog.Logger, engine *game.Engine, bank *questions.Bank, sim *ai.Simulator, timing Timing) *Session {
	sessionLogger := logger.With("component", "session", "sessionID", id)

	return &Session{
		id:             id,
		logger:         sessionLogger,
		engine:         engine,
		sim:            sim,
		bank:           bank,
		timing:         timing,
		states:         game.NewStateManager(sessionLogger, engine.Events(), game.Animations{}),
		phase:          PhaseChoosing,
		finderIndex:    -1,
		answeringIndex: -1,
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Events() *game.Bus {
	return that.engine.Events()
}

func (that *Session) Engine() *game.Engine {
	return that.engine
}

func (that *Session) States() *game.StateManager {
	return that.states
}

func (that *Session) Phase() Phase {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.phase
}

// Start resets the engine and opens the first selection turn.
func (that *Session) Start() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.startLocked()
}

// Restart aborts whatever is in flight and begins a fresh game.
func (that *Session) Restart() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return apperror.ErrGameOver
	}

	that.startLocked()

	return nil
}

func (that *Session) startLocked() {
	that.cancelTimersLocked()
	that.engine.ResetGame()
	that.phase = PhaseChoosing
	that.question = nil
	that.dailyDouble = false
	that.finderIndex = -1
	that.answeringIndex = -1
	that.maxWager = 0
	that.wager = 0
	that.final = nil
	that.pendingBuzzes = nil

	that.maybeScheduleAIPickLocked()
}

// SelectQuestion puts the board slot at (category, price) in play. Only
// valid while a selection turn is open.
func (that *Session) SelectQuestion(category string, price int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.selectQuestionLocked(category, price)
}

func (that *Session) selectQuestionLocked(category string, price int) error {
	if that.phase != PhaseChoosing {
		return apperror.ErrWrongPhase
	}

	question := that.engine.QuestionByCategory(category, price)
	if question == nil {
		return apperror.ErrQuestionNotFound
	}

	if _, answered := that.engine.State().AnsweredQuestions[question.Key()]; answered {
		return apperror.ErrQuestionAnswered
	}

	// Cancels a pending AI pick so a fast human cannot race it into a
	// second selection.
	that.cancelTimersLocked()

	that.engine.ResetBuzzing()
	that.question = question
	that.engine.SetCurrentQuestion(question)

	if that.engine.IsDailyDouble(category, price) {
		that.beginDailyDoubleLocked()
		return nil
	}

	that.dailyDouble = false
	that.beginReadingLocked()

	return nil
}

func (that *Session) beginDailyDoubleLocked() {
	that.dailyDouble = true
	that.finderIndex = that.engine.State().CurrentPlayerIndex
	finder := that.engine.Player(that.finderIndex)

	that.engine.Events().Publish(game.EventDailyDoubleFound, *finder)

	that.phase = PhaseWagering
	that.maxWager = finder.Score
	if that.maxWager < minimumDailyDoubleWager {
		that.maxWager = minimumDailyDoubleWager
	}

	if !finder.IsHuman {
		wager := that.sim.SimulateWager(finder, that.maxWager, that.engine.Players())
		that.applyWagerLocked(wager)
	}
}

// SubmitWager settles the human finder's daily-double wager.
func (that *Session) SubmitWager(amount int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.phase != PhaseWagering {
		return apperror.ErrWrongPhase
	}

	finder := that.engine.Player(that.finderIndex)
	if finder == nil || !finder.IsHuman {
		return apperror.ErrNotAnsweringPlayer
	}

	if amount < 0 || amount > that.maxWager {
		return apperror.ErrWagerOutOfRange
	}

	that.applyWagerLocked(amount)

	return nil
}

func (that *Session) applyWagerLocked(amount int) {
	that.wager = amount
	that.beginReadingLocked()
}

func (that *Session) beginReadingLocked() {
	that.phase = PhaseReading
	that.engine.BeginQuestionReading()

	words := len(strings.Fields(that.question.Question))
	if words == 0 {
		words = 1
	}

	that.afterLocked(time.Duration(words)*that.timing.ReadingPerWord, func() {
		that.finishReadingLocked()
	})
}

func (that *Session) finishReadingLocked() {
	that.engine.CompleteQuestionReading()

	// A daily double skips buzzing entirely; only the finder answers.
	if that.dailyDouble {
		that.beginAnswerLocked(that.finderIndex, true)
		return
	}

	that.openBuzzingLocked(false)
}

func (that *Session) openBuzzingLocked(rebuzz bool) {
	that.phase = PhaseBuzzing

	if rebuzz {
		that.engine.ReopenBuzzing()
	} else {
		that.engine.StartBuzzing()
	}

	that.engine.Events().Publish(game.EventTimerStart, that.timing.BuzzWindow.Seconds())

	that.afterLocked(that.timing.BuzzWindow, func() {
		that.buzzWindowTimeoutLocked()
	})

	that.scheduleAIBuzzesLocked(rebuzz)
}

func (that *Session) scheduleAIBuzzesLocked(rebuzz bool) {
	that.pendingBuzzes = nil
	alreadyBuzzed := that.engine.Buzzing().BuzzOrder

	for i, player := range that.engine.Players() {
		if player.IsHuman || containsIndex(alreadyBuzzed, i) {
			continue
		}

		buzz := that.sim.SimulateBuzzing(player, that.question)
		if !buzz.WillBuzz {
			continue
		}

		delay := that.sim.BuzzWindowDelay(player.EffectiveDifficulty(), rebuzz)
		that.pendingBuzzes = append(that.pendingBuzzes, PendingBuzz{PlayerIndex: i, Delay: delay})

		playerIndex := i
		that.afterLocked(delay, func() {
			that.aiBuzzLocked(playerIndex)
		})
	}
}

func (that *Session) aiBuzzLocked(playerIndex int) {
	if that.phase != PhaseBuzzing {
		return
	}

	if that.engine.PlayerBuzz(playerIndex) {
		that.beginAnswerLocked(playerIndex, false)
	}
}

// HumanBuzz records the human player's buzz attempt and reports whether
// it won the window. Early or repeated buzzes lose silently, exactly as
// on the show floor.
func (that *Session) HumanBuzz() (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	humanIndex := that.engine.HumanPlayerIndex()
	if humanIndex < 0 {
		return false, apperror.ErrNoHumanPlayer
	}

	won := that.engine.PlayerBuzz(humanIndex)
	if won {
		that.beginAnswerLocked(humanIndex, false)
	}

	return won, nil
}

func (that *Session) buzzWindowTimeoutLocked() {
	if that.phase != PhaseBuzzing {
		return
	}

	that.engine.EndBuzzing()
	that.engine.Events().Publish(game.EventTimerEnd, nil)

	// No one buzzed: reveal and move on, no scoring.
	that.finishQuestionLocked("")
}

func (that *Session) beginAnswerLocked(playerIndex int, announce bool) {
	that.cancelTimersLocked()
	that.pendingBuzzes = nil
	that.phase = PhaseAnswering
	that.answeringIndex = playerIndex

	if announce {
		that.engine.Events().Publish(game.EventAnswerTimeStart, playerIndex)
	}

	that.afterLocked(that.timing.AnswerWindow, func() {
		that.answerTimeoutLocked(playerIndex)
	})

	player := that.engine.Player(playerIndex)
	if player != nil && !player.IsHuman {
		that.afterLocked(that.sim.ThinkingTime(), func() {
			that.aiAnswerLocked(playerIndex)
		})
	}
}

func (that *Session) aiAnswerLocked(playerIndex int) {
	if that.phase != PhaseAnswering || that.answeringIndex != playerIndex {
		return
	}

	player := that.engine.Player(playerIndex)
	response := that.sim.SimulateAnswer(that.question, player.EffectiveDifficulty())
	that.settleAnswerLocked(playerIndex, response.IsCorrect)
}

func (that *Session) answerTimeoutLocked(playerIndex int) {
	if that.phase != PhaseAnswering || that.answeringIndex != playerIndex {
		return
	}

	// Running out of time counts as a wrong answer.
	that.settleAnswerLocked(playerIndex, false)
}

// SubmitAnswer settles the answering human player's response.
func (that *Session) SubmitAnswer(text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.phase != PhaseAnswering {
		return apperror.ErrWrongPhase
	}

	player := that.engine.Player(that.answeringIndex)
	if player == nil || !player.IsHuman {
		return apperror.ErrNotAnsweringPlayer
	}

	that.settleAnswerLocked(that.answeringIndex, matchAnswer(text, that.question.Answer))

	return nil
}

func (that *Session) settleAnswerLocked(playerIndex int, correct bool) {
	that.cancelTimersLocked()

	player := that.engine.Player(playerIndex)
	question := that.question

	that.engine.Events().Publish(game.EventAnswerTimeEnd, playerIndex)
	that.engine.Events().Publish(game.EventPlayerAnswered, AnswerResult{
		PlayerIndex: playerIndex,
		PlayerName:  player.Name,
		Correct:     correct,
	})

	if that.dailyDouble {
		delta := that.wager
		if !correct {
			delta = -delta
		}
		that.engine.UpdatePlayerScore(playerIndex, delta)

		winner := ""
		if correct {
			winner = player.Name
			that.engine.SetCurrentPicker(playerIndex)
		}
		that.finishQuestionLocked(winner)

		return
	}

	if correct {
		that.engine.UpdatePlayerScore(playerIndex, question.Price)
		// Correct answerer picks the next question.
		that.engine.SetCurrentPicker(playerIndex)
		that.finishQuestionLocked(player.Name)

		return
	}

	that.engine.UpdatePlayerScore(playerIndex, -question.Price)

	if that.remainingBuzzersLocked() > 0 {
		that.openBuzzingLocked(true)
		return
	}

	that.finishQuestionLocked("")
}

func (that *Session) remainingBuzzersLocked() int {
	order := that.engine.Buzzing().BuzzOrder

	remaining := 0
	for i := range that.engine.Players() {
		if !containsIndex(order, i) {
			remaining++
		}
	}

	return remaining
}

func (that *Session) finishQuestionLocked(winner string) {
	question := that.question

	that.engine.MarkQuestionAnswered(question.Category, question.Price, winner)
	that.engine.ResetBuzzing()
	that.engine.ClearCurrentQuestion()

	that.question = nil
	that.dailyDouble = false
	that.finderIndex = -1
	that.answeringIndex = -1
	that.wager = 0
	that.maxWager = 0
	that.phase = PhaseChoosing

	if len(that.engine.AvailableQuestions()) == 0 {
		round := that.engine.AdvanceToNextRound()
		if round == entity.RoundFinalJeopardy {
			that.startFinalLocked()
			return
		}
	}

	that.maybeScheduleAIPickLocked()
}

func (that *Session) maybeScheduleAIPickLocked() {
	current := that.engine.CurrentPlayer()
	if current == nil || current.IsHuman {
		return
	}

	that.afterLocked(that.sim.ThinkingTime(), func() {
		that.aiPickLocked()
	})
}

func (that *Session) aiPickLocked() {
	if that.phase != PhaseChoosing {
		return
	}

	current := that.engine.CurrentPlayer()
	if current == nil || current.IsHuman {
		return
	}

	selection := that.sim.SimulateQuestionSelection(current, that.engine.AvailableQuestions(), that.engine.Players())
	if selection.Category == "" {
		return
	}

	if err := that.selectQuestionLocked(selection.Category, selection.Value); err != nil {
		that.logger.Error("AI question selection failed", "category", selection.Category, "value", selection.Value, "error", err)
	}
}

// Teardown cancels every pending timer and closes the engine; the session
// accepts no further commands.
func (that *Session) Teardown() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelTimersLocked()
	that.states.Destroy()
	that.engine.Close()
	that.phase = PhaseOver
	that.closed = true
}

// afterLocked schedules fn on the session's timer set. The callback
// re-acquires the lock and is dropped if the generation moved on.
func (that *Session) afterLocked(delay time.Duration, fn func()) {
	generation := that.generation

	timer := time.AfterFunc(delay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if that.generation != generation || that.closed {
			return
		}

		fn()
	})

	that.timers = append(that.timers, timer)
}

func (that *Session) cancelTimersLocked() {
	for _, timer := range that.timers {
		timer.Stop()
	}
	that.timers = nil
	that.generation++
}

// matchAnswer is the forgiving two-way substring check the game uses for
// typed answers.
func matchAnswer(given, expected string) bool {
	normalizedGiven := strings.ToLower(strings.TrimSpace(given))
	normalizedExpected := strings.ToLower(strings.TrimSpace(expected))

	if normalizedGiven == "" {
		return false
	}

	return strings.Contains(normalizedGiven, normalizedExpected) ||
		strings.Contains(normalizedExpected, normalizedGiven)
}

func containsIndex(list []int, value int) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}

	return false
}
