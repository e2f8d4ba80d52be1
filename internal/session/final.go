package session

import (
	"sort"

	"github.com/MohammedAli93/jeopardy/internal/apperror"
	"github.com/MohammedAli93/jeopardy/internal/game"
)

type finalRound struct {
	eligible []int
	wagers   map[int]int
	answers  map[int]bool
}

// FinalResult is one line of the game-over standings.
type FinalResult struct {
	PlayerIndex int    `json:"player_index"`
	PlayerName  string `json:"player_name"`
	Score       int    `json:"score"`
}

func (that *Session) startFinalLocked() {
	eligible := that.engine.EligibleFinalists()
	question := that.bank.RandomFinalJeopardyQuestion()

	// No finalists with money, or no final question in the bank: the
	// game ends on the double-jeopardy standings.
	if len(eligible) == 0 || question == nil {
		that.gameOverLocked()
		return
	}

	that.final = &finalRound{
		eligible: eligible,
		wagers:   make(map[int]int, len(eligible)),
		answers:  make(map[int]bool, len(eligible)),
	}
	that.question = question
	that.engine.SetCurrentQuestion(question)
	that.phase = PhaseFinalWagers

	for _, playerIndex := range eligible {
		player := that.engine.Player(playerIndex)
		if player.IsHuman {
			continue
		}

		that.final.wagers[playerIndex] = that.sim.SimulateWager(player, player.Score, that.engine.Players())
	}

	that.checkFinalWagersLocked()
}

// SubmitFinalWager records the human finalist's wager, capped at their
// current score.
func (that *Session) SubmitFinalWager(amount int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.phase != PhaseFinalWagers {
		return apperror.ErrWrongPhase
	}

	humanIndex := that.engine.HumanPlayerIndex()
	if humanIndex < 0 || !containsIndex(that.final.eligible, humanIndex) {
		return apperror.ErrNotAnsweringPlayer
	}

	human := that.engine.Player(humanIndex)
	if amount < 0 || amount > human.Score {
		return apperror.ErrWagerOutOfRange
	}

	that.final.wagers[humanIndex] = amount
	that.checkFinalWagersLocked()

	return nil
}

func (that *Session) checkFinalWagersLocked() {
	if len(that.final.wagers) < len(that.final.eligible) {
		return
	}

	that.beginFinalAnswersLocked()
}

func (that *Session) beginFinalAnswersLocked() {
	that.phase = PhaseFinalAnswers
	that.engine.BeginQuestionReading()
	that.engine.CompleteQuestionReading()
	that.engine.Events().Publish(game.EventAnswerTimeStart, nil)

	humanPlays := false
	for _, playerIndex := range that.final.eligible {
		player := that.engine.Player(playerIndex)
		if player.IsHuman {
			humanPlays = true
			continue
		}

		index := playerIndex
		that.afterLocked(that.sim.ThinkingTime(), func() {
			that.aiFinalAnswerLocked(index)
		})
	}

	if humanPlays {
		humanIndex := that.engine.HumanPlayerIndex()
		that.afterLocked(that.timing.AnswerWindow, func() {
			that.finalAnswerTimeoutLocked(humanIndex)
		})
	}
}

func (that *Session) aiFinalAnswerLocked(playerIndex int) {
	if that.phase != PhaseFinalAnswers {
		return
	}

	player := that.engine.Player(playerIndex)
	response := that.sim.SimulateAnswer(that.question, player.EffectiveDifficulty())
	that.recordFinalAnswerLocked(playerIndex, response.IsCorrect)
}

func (that *Session) finalAnswerTimeoutLocked(playerIndex int) {
	if that.phase != PhaseFinalAnswers {
		return
	}

	if _, answered := that.final.answers[playerIndex]; answered {
		return
	}

	that.recordFinalAnswerLocked(playerIndex, false)
}

// SubmitFinalAnswer records the human finalist's typed response.
func (that *Session) SubmitFinalAnswer(text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.phase != PhaseFinalAnswers {
		return apperror.ErrWrongPhase
	}

	humanIndex := that.engine.HumanPlayerIndex()
	if humanIndex < 0 || !containsIndex(that.final.eligible, humanIndex) {
		return apperror.ErrNotAnsweringPlayer
	}

	if _, answered := that.final.answers[humanIndex]; answered {
		return apperror.ErrWrongPhase
	}

	that.recordFinalAnswerLocked(humanIndex, matchAnswer(text, that.question.Answer))

	return nil
}

func (that *Session) recordFinalAnswerLocked(playerIndex int, correct bool) {
	that.final.answers[playerIndex] = correct

	player := that.engine.Player(playerIndex)
	that.engine.Events().Publish(game.EventPlayerAnswered, AnswerResult{
		PlayerIndex: playerIndex,
		PlayerName:  player.Name,
		Correct:     correct,
	})

	if len(that.final.answers) == len(that.final.eligible) {
		that.settleFinalLocked()
	}
}

func (that *Session) settleFinalLocked() {
	for _, playerIndex := range that.final.eligible {
		delta := that.final.wagers[playerIndex]
		if !that.final.answers[playerIndex] {
			delta = -delta
		}

		that.engine.UpdatePlayerScore(playerIndex, delta)
	}

	that.gameOverLocked()
}

func (that *Session) gameOverLocked() {
	that.cancelTimersLocked()
	that.question = nil
	that.phase = PhaseOver

	players := that.engine.Players()
	results := make([]FinalResult, 0, len(players))
	for i, player := range players {
		results = append(results, FinalResult{PlayerIndex: i, PlayerName: player.Name, Score: player.Score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	that.engine.Events().Publish(game.EventGameOver, results)
	that.logger.Info("game over", "winner", results[0].PlayerName, "score", results[0].Score)
}
