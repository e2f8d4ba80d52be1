package session

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MohammedAli93/jeopardy/internal/ai"
	"github.com/MohammedAli93/jeopardy/internal/apperror"
	"github.com/MohammedAli93/jeopardy/internal/entity"
	"github.com/MohammedAli93/jeopardy/internal/game"
	"github.com/MohammedAli93/jeopardy/internal/questions"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastTiming() Timing {
	return Timing{
		BuzzWindow:     3 * time.Second,
		AnswerWindow:   3 * time.Second,
		BuzzCeiling:    10 * time.Second,
		ReadingPerWord: time.Millisecond,
	}
}

func testQuestions() []*entity.Question {
	return []*entity.Question{
		{Category: "CAPITALS", Question: "Capital of France", Answer: "Paris", Price: 100},
		{Category: "CAPITALS", Question: "Capital of Japan", Answer: "Tokyo", Price: 200},
		{Category: "SPORTS", Question: "Players on a soccer team", Answer: "Eleven", Price: 100},
		{Category: "SPORTS", Question: "Innings in baseball", Answer: "Nine", Price: 200},
		{Category: "FINAL JEOPARDY: HISTORY", Question: "First US president", Answer: "Washington", IsFinalJeopardy: true},
	}
}

func newTestSession(t *testing.T, players []*entity.Player, list []*entity.Question, timing Timing) *Session {
	t.Helper()

	bank := questions.NewBank()
	bank.SetQuestions(list)

	engine := game.NewEngine(testLogger(), bank, players, game.Options{
		BuzzCeiling: timing.BuzzCeiling,
		Source:      rand.NewSource(3),
	})

	sess := newSession("test-session", testLogger(), engine, bank, ai.NewWithSource(rand.NewSource(3)), timing)
	t.Cleanup(sess.Teardown)
	sess.Start()

	return sess
}

func soloHuman() []*entity.Player {
	return []*entity.Player{{Name: "You", IsHuman: true}}
}

func waitForPhase(t *testing.T, sess *Session, phase Phase) {
	t.Helper()

	require.Eventually(t, func() bool {
		return sess.Phase() == phase
	}, 5*time.Second, 5*time.Millisecond, "expected phase %s, got %s", phase, sess.Phase())
}

// pickRegularSlot finds an available board slot that is not a daily double.
func pickRegularSlot(t *testing.T, sess *Session) (string, int) {
	t.Helper()

	for _, question := range sess.Engine().AvailableQuestions() {
		if !sess.Engine().IsDailyDouble(question.Category, question.Price) {
			return question.Category, question.Price
		}
	}

	t.Fatal("no regular slot available")
	return "", 0
}

func pickDailyDoubleSlot(t *testing.T, sess *Session) (string, int) {
	t.Helper()

	for _, question := range sess.Engine().AvailableQuestions() {
		if sess.Engine().IsDailyDouble(question.Category, question.Price) {
			return question.Category, question.Price
		}
	}

	t.Fatal("no daily double slot available")
	return "", 0
}

func TestMatchAnswer(t *testing.T) {
	tests := []struct {
		name     string
		given    string
		expected string
		want     bool
	}{
		{name: "exact match", given: "Paris", expected: "Paris", want: true},
		{name: "case insensitive", given: "PARIS", expected: "Paris", want: true},
		{name: "surrounding whitespace", given: "  paris  ", expected: "Paris", want: true},
		{name: "answer contains response", given: "Washington", expected: "George Washington", want: true},
		{name: "response contains answer", given: "it is George Washington", expected: "Washington", want: true},
		{name: "wrong answer", given: "London", expected: "Paris", want: false},
		{name: "empty response", given: "", expected: "Paris", want: false},
		{name: "whitespace only", given: "   ", expected: "Paris", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, matchAnswer(tt.given, tt.expected))
		})
	}
}

func TestSession_SelectQuestion(t *testing.T) {
	t.Run("unknown slot", func(t *testing.T) {
		sess := newTestSession(t, soloHuman(), testQuestions(), fastTiming())

		err := sess.SelectQuestion("UNKNOWN", 100)

		require.ErrorIs(t, err, apperror.ErrQuestionNotFound)
	})

	t.Run("selection only allowed while choosing", func(t *testing.T) {
		// Given: a question already in play
		sess := newTestSession(t, soloHuman(), testQuestions(), fastTiming())
		category, price := pickRegularSlot(t, sess)
		require.NoError(t, sess.SelectQuestion(category, price))

		// When: selecting again mid-question
		err := sess.SelectQuestion(category, price)

		// Then: the second selection is rejected
		require.ErrorIs(t, err, apperror.ErrWrongPhase)
	})
}

func TestSession_CorrectAnswerFlow(t *testing.T) {
	// Given: a solo human game with a regular question in play
	sess := newTestSession(t, soloHuman(), testQuestions(), fastTiming())
	category, price := pickRegularSlot(t, sess)

	require.NoError(t, sess.SelectQuestion(category, price))
	waitForPhase(t, sess, PhaseBuzzing)

	// When: the human buzzes and answers correctly
	won, err := sess.HumanBuzz()
	require.NoError(t, err)
	require.True(t, won)
	require.Equal(t, PhaseAnswering, sess.Phase())

	answer := sess.Engine().QuestionByCategory(category, price).Answer
	require.NoError(t, sess.SubmitAnswer(answer))

	// Then: the question pays out and the answerer picks next
	waitForPhase(t, sess, PhaseChoosing)
	require.Equal(t, price, sess.Engine().Player(0).Score)
	require.Equal(t, 0, sess.Engine().State().CurrentPlayerIndex)
	require.Equal(t, "You", sess.Engine().QuestionByCategory(category, price).Winner)
	require.Len(t, sess.Engine().AvailableQuestions(), 3)

	// Then: the retired slot cannot be picked again
	require.ErrorIs(t, sess.SelectQuestion(category, price), apperror.ErrQuestionAnswered)
}

func TestSession_WrongAnswerReopensForOthers(t *testing.T) {
	// Given: two human podiums so a wrong answer leaves someone to rebuzz
	players := []*entity.Player{
		{Name: "You", IsHuman: true},
		{Name: "Rival", IsHuman: true},
	}
	timing := fastTiming()
	timing.BuzzWindow = 400 * time.Millisecond

	sess := newTestSession(t, players, testQuestions(), timing)
	category, price := pickRegularSlot(t, sess)

	require.NoError(t, sess.SelectQuestion(category, price))
	waitForPhase(t, sess, PhaseBuzzing)

	// When: the first player buzzes and misses
	won, err := sess.HumanBuzz()
	require.NoError(t, err)
	require.True(t, won)
	require.NoError(t, sess.SubmitAnswer("definitely not it"))

	// Then: the score drops and the window reopens with the order preserved
	require.Equal(t, -price, sess.Engine().Player(0).Score)
	require.Equal(t, PhaseBuzzing, sess.Phase())
	require.Equal(t, []int{0}, sess.Engine().Buzzing().BuzzOrder)

	// Then: the first player cannot buzz the same question twice
	won, err = sess.HumanBuzz()
	require.NoError(t, err)
	require.False(t, won)

	// Then: with no taker the window expires and the slot retires unwon
	waitForPhase(t, sess, PhaseChoosing)
	require.Empty(t, sess.Engine().QuestionByCategory(category, price).Winner)
	require.Len(t, sess.Engine().AvailableQuestions(), 3)
}

func TestSession_NoBuzzTimeout(t *testing.T) {
	// Given: a short buzz window nobody uses
	timing := fastTiming()
	timing.BuzzWindow = 200 * time.Millisecond

	sess := newTestSession(t, soloHuman(), testQuestions(), timing)
	category, price := pickRegularSlot(t, sess)

	require.NoError(t, sess.SelectQuestion(category, price))
	waitForPhase(t, sess, PhaseBuzzing)

	// Then: the question retires with no scoring
	waitForPhase(t, sess, PhaseChoosing)
	require.Zero(t, sess.Engine().Player(0).Score)
	require.Len(t, sess.Engine().AvailableQuestions(), 3)
}

func TestSession_DailyDoubleFlow(t *testing.T) {
	// Given: the human lands on the daily double with nothing banked
	sess := newTestSession(t, soloHuman(), testQuestions(), fastTiming())
	category, price := pickDailyDoubleSlot(t, sess)

	var finder entity.Player
	sess.Events().Subscribe(game.EventDailyDoubleFound, func(event game.Event) {
		player, ok := event.Payload.(entity.Player)
		require.True(t, ok)
		finder = player
	})

	require.NoError(t, sess.SelectQuestion(category, price))
	require.Equal(t, PhaseWagering, sess.Phase())
	require.Equal(t, "You", finder.Name)

	// When: the wager exceeds the floor allowance
	require.ErrorIs(t, sess.SubmitWager(5000), apperror.ErrWagerOutOfRange)
	require.ErrorIs(t, sess.SubmitWager(-1), apperror.ErrWagerOutOfRange)

	// When: a valid wager is placed
	require.NoError(t, sess.SubmitWager(800))

	// Then: reading leads straight to answering, no buzz window
	waitForPhase(t, sess, PhaseAnswering)

	answer := sess.Engine().QuestionByCategory(category, price).Answer
	require.NoError(t, sess.SubmitAnswer(answer))

	// Then: the wager pays out instead of the board value
	waitForPhase(t, sess, PhaseChoosing)
	require.Equal(t, 800, sess.Engine().Player(0).Score)
}

func TestSession_PhaseGuards(t *testing.T) {
	sess := newTestSession(t, soloHuman(), testQuestions(), fastTiming())

	require.ErrorIs(t, sess.SubmitAnswer("Paris"), apperror.ErrWrongPhase)
	require.ErrorIs(t, sess.SubmitWager(100), apperror.ErrWrongPhase)
	require.ErrorIs(t, sess.SubmitFinalWager(100), apperror.ErrWrongPhase)
	require.ErrorIs(t, sess.SubmitFinalAnswer("Paris"), apperror.ErrWrongPhase)

	// Buzzing outside an open window simply loses.
	won, err := sess.HumanBuzz()
	require.NoError(t, err)
	require.False(t, won)
}

// singleSlotQuestions builds a board with exactly one question per round,
// which makes that slot the guaranteed daily double.
func singleSlotQuestions() []*entity.Question {
	return []*entity.Question{
		{Category: "SPORTS", Question: "Innings in baseball", Answer: "Nine", Price: 100},
		{Category: "FINAL JEOPARDY: HISTORY", Question: "First US president", Answer: "Washington", IsFinalJeopardy: true},
	}
}

func TestSession_FullGameToFinal(t *testing.T) {
	// Given: a one-slot board and a recorder for the final standings
	sess := newTestSession(t, soloHuman(), singleSlotQuestions(), fastTiming())

	var results []FinalResult
	sess.Events().Subscribe(game.EventGameOver, func(event game.Event) {
		standings, ok := event.Payload.([]FinalResult)
		require.True(t, ok)
		results = standings
	})

	playRound := func(wager int) {
		require.NoError(t, sess.SelectQuestion("SPORTS", 100))
		require.Equal(t, PhaseWagering, sess.Phase())
		require.NoError(t, sess.SubmitWager(wager))
		waitForPhase(t, sess, PhaseAnswering)
		require.NoError(t, sess.SubmitAnswer("nine"))
	}

	// When: the human sweeps the jeopardy round
	playRound(1000)
	require.Equal(t, 1000, sess.Engine().Player(0).Score)
	require.Equal(t, entity.RoundDoubleJeopardy, sess.Engine().Round())
	waitForPhase(t, sess, PhaseChoosing)

	// When: the human sweeps double jeopardy too
	playRound(1000)
	require.Equal(t, 2000, sess.Engine().Player(0).Score)
	require.Equal(t, entity.RoundFinalJeopardy, sess.Engine().Round())

	// Then: final jeopardy opens on wagers
	require.Equal(t, PhaseFinalWagers, sess.Phase())

	// When: the final wager is out of range, then valid
	require.ErrorIs(t, sess.SubmitFinalWager(2500), apperror.ErrWagerOutOfRange)
	require.NoError(t, sess.SubmitFinalWager(2000))
	require.Equal(t, PhaseFinalAnswers, sess.Phase())

	// When: the final answer is correct
	require.NoError(t, sess.SubmitFinalAnswer("washington"))

	// Then: the game is over with doubled winnings
	require.Equal(t, PhaseOver, sess.Phase())
	require.Equal(t, 4000, sess.Engine().Player(0).Score)
	require.Len(t, results, 1)
	require.Equal(t, FinalResult{PlayerIndex: 0, PlayerName: "You", Score: 4000}, results[0])
}

func TestSession_NoEligibleFinalists(t *testing.T) {
	// Given: a one-slot board the human keeps missing
	sess := newTestSession(t, soloHuman(), singleSlotQuestions(), fastTiming())

	gameOver := false
	sess.Events().Subscribe(game.EventGameOver, func(game.Event) { gameOver = true })

	missRound := func() {
		require.NoError(t, sess.SelectQuestion("SPORTS", 100))
		require.NoError(t, sess.SubmitWager(500))
		waitForPhase(t, sess, PhaseAnswering)
		require.NoError(t, sess.SubmitAnswer("wrong"))
	}

	// When: both rounds end in the red
	missRound()
	waitForPhase(t, sess, PhaseChoosing)
	missRound()

	// Then: final jeopardy is skipped for a broke field
	require.Equal(t, PhaseOver, sess.Phase())
	require.True(t, gameOver)
	require.Equal(t, -1000, sess.Engine().Player(0).Score)
}

func TestSession_Restart(t *testing.T) {
	// Given: a game with money on the board
	sess := newTestSession(t, soloHuman(), testQuestions(), fastTiming())
	sess.Engine().UpdatePlayerScore(0, 700)

	// When: restarting
	require.NoError(t, sess.Restart())

	// Then: everything is back to a clean first round
	require.Equal(t, PhaseChoosing, sess.Phase())
	require.Zero(t, sess.Engine().Player(0).Score)
	require.Len(t, sess.Engine().AvailableQuestions(), 4)

	// When: the session is torn down
	sess.Teardown()

	// Then: it cannot be restarted
	require.ErrorIs(t, sess.Restart(), apperror.ErrGameOver)
}

func TestSession_Snapshot(t *testing.T) {
	sess := newTestSession(t, soloHuman(), testQuestions(), fastTiming())

	snapshot := sess.Snapshot()

	require.Equal(t, "test-session", snapshot.ID)
	require.Equal(t, PhaseChoosing, snapshot.Phase)
	require.Equal(t, entity.RoundJeopardy, snapshot.Round)
	require.Len(t, snapshot.Players, 1)
	require.Equal(t, []string{"CAPITALS", "SPORTS"}, snapshot.Categories)
	require.Equal(t, []int{100, 200}, snapshot.PriceLadder)
	require.Empty(t, snapshot.Answered)
	require.Equal(t, -1, snapshot.Answering)
	require.Nil(t, snapshot.Question)
}
