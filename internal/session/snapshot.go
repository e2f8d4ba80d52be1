package session

import (
	"github.com/MohammedAli93/jeopardy/internal/entity"
	"github.com/MohammedAli93/jeopardy/internal/game"
)

// Snapshot is the read-only view handed to transports.
type Snapshot struct {
	ID            string            `json:"id"`
	Phase         Phase             `json:"phase"`
	Round         string            `json:"round"`
	Players       []entity.Player   `json:"players"`
	Categories    []string          `json:"categories"`
	PriceLadder   []int             `json:"priceLadder"`
	Answered      []string          `json:"answered"`
	CurrentPicker int               `json:"currentPicker"`
	Answering     int               `json:"answering"`
	Question      *entity.Question  `json:"question,omitempty"`
	Buzzing       game.BuzzingState `json:"buzzing"`
	PendingBuzzes []PendingBuzz     `json:"pendingBuzzes,omitempty"`
}

func (that *Session) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := that.engine.State()

	players := make([]entity.Player, 0, that.engine.PlayerCount())
	for _, player := range that.engine.Players() {
		players = append(players, *player)
	}

	answered := make([]string, 0, len(state.AnsweredQuestions))
	for key := range state.AnsweredQuestions {
		answered = append(answered, key)
	}

	var question *entity.Question
	if that.question != nil {
		copied := *that.question
		question = &copied
	}

	pending := make([]PendingBuzz, len(that.pendingBuzzes))
	copy(pending, that.pendingBuzzes)

	return Snapshot{
		ID:            that.id,
		Phase:         that.phase,
		Round:         state.Round,
		Players:       players,
		Categories:    state.Categories,
		PriceLadder:   that.engine.PriceLadder(),
		Answered:      answered,
		CurrentPicker: state.CurrentPlayerIndex,
		Answering:     that.answeringIndex,
		Question:      question,
		Buzzing:       that.engine.Buzzing(),
		PendingBuzzes: pending,
	}
}
