package game

import (
	"github.com/MohammedAli93/jeopardy/internal/entity"
)

// Read-side accessors. Snapshots copy mutable slices and maps so callers
// can never alias engine-owned state.

func (that *Engine) Players() []*entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	players := make([]*entity.Player, len(that.players))
	copy(players, that.players)

	return players
}

func (that *Engine) PlayerCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.players)
}

// CurrentPlayer is the player choosing the next question; nil when the
// roster is empty.
func (that *Engine) CurrentPlayer() *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.currentPlayerLocked()
}

func (that *Engine) currentPlayerLocked() *entity.Player {
	if that.state.CurrentPlayerIndex < 0 || that.state.CurrentPlayerIndex >= len(that.players) {
		return nil
	}

	return that.players[that.state.CurrentPlayerIndex]
}

// HumanPlayer returns the human contestant, or nil if the roster has
// none; production rosters always have exactly one.
func (that *Engine) HumanPlayer() *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, player := range that.players {
		if player.IsHuman {
			return player
		}
	}

	return nil
}

// HumanPlayerIndex returns -1 when no human exists.
func (that *Engine) HumanPlayerIndex() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, player := range that.players {
		if player.IsHuman {
			return i
		}
	}

	return -1
}

func (that *Engine) AIPlayers() []*entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	var result []*entity.Player
	for _, player := range that.players {
		if !player.IsHuman {
			result = append(result, player)
		}
	}

	return result
}

func (that *Engine) Player(index int) *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	if index < 0 || index >= len(that.players) {
		return nil
	}

	return that.players[index]
}

// AvailableQuestions lists regular questions whose board slot has not
// been retired this round.
func (that *Engine) AvailableQuestions() []*entity.Question {
	that.mu.Lock()
	defer that.mu.Unlock()

	var available []*entity.Question
	for _, question := range that.bank.RegularQuestions() {
		if _, answered := that.state.AnsweredQuestions[question.Key()]; !answered {
			available = append(available, question)
		}
	}

	return available
}

// QuestionByCategory is an exact category+price lookup; nil when absent.
func (that *Engine) QuestionByCategory(category string, price int) *entity.Question {
	return that.bank.QuestionByCategoryAndPrice(category, price)
}

// IsDailyDouble reports whether the slot at (category, price) holds a
// daily double. Unknown categories or prices off the working ladder
// simply report false.
func (that *Engine) IsDailyDouble(category string, price int) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	categoryIndex := indexOfString(that.state.Categories, category)
	valueIndex := indexOfInt(that.ladder, price)
	if categoryIndex < 0 || valueIndex < 0 {
		return false
	}

	return containsLocation(that.state.DailyDoubleLocations, entity.DailyDoubleLocation{
		CategoryIndex: categoryIndex,
		ValueIndex:    valueIndex,
	})
}

// EligibleFinalists lists indices of players allowed into the final
// round: only a strictly positive score qualifies.
func (that *Engine) EligibleFinalists() []int {
	that.mu.Lock()
	defer that.mu.Unlock()

	var eligible []int
	for i, player := range that.players {
		if player.Score > 0 {
			eligible = append(eligible, i)
		}
	}

	return eligible
}

func (that *Engine) Round() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.Round
}

func (that *Engine) CurrentQuestion() *entity.Question {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.CurrentQuestion
}

// State returns a copy of the game state.
func (that *Engine) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := that.state

	state.AnsweredQuestions = make(map[string]struct{}, len(that.state.AnsweredQuestions))
	for key := range that.state.AnsweredQuestions {
		state.AnsweredQuestions[key] = struct{}{}
	}

	state.DailyDoubleLocations = make([]entity.DailyDoubleLocation, len(that.state.DailyDoubleLocations))
	copy(state.DailyDoubleLocations, that.state.DailyDoubleLocations)

	state.Categories = make([]string, len(that.state.Categories))
	copy(state.Categories, that.state.Categories)

	return state
}

// Buzzing returns a copy of the buzzing state.
func (that *Engine) Buzzing() BuzzingState {
	that.mu.Lock()
	defer that.mu.Unlock()

	buzzing := that.buzzing
	buzzing.BuzzOrder = make([]int, len(that.buzzing.BuzzOrder))
	copy(buzzing.BuzzOrder, that.buzzing.BuzzOrder)

	return buzzing
}

// PriceLadder returns the working value ladder derived at ResetGame.
func (that *Engine) PriceLadder() []int {
	that.mu.Lock()
	defer that.mu.Unlock()

	ladder := make([]int, len(that.ladder))
	copy(ladder, that.ladder)

	return ladder
}

func indexOfString(list []string, value string) int {
	for i, item := range list {
		if item == value {
			return i
		}
	}

	return -1
}

func indexOfInt(list []int, value int) int {
	for i, item := range list {
		if item == value {
			return i
		}
	}

	return -1
}
