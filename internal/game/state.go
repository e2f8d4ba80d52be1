package game

import (
	"time"

	"github.com/MohammedAli93/jeopardy/internal/entity"
)

// State is the authoritative game state of one session. All mutation goes
// through the Engine.
type State struct {
	Round                string                       `json:"round"`
	AnsweredQuestions    map[string]struct{}          `json:"-"`
	DailyDoubleLocations []entity.DailyDoubleLocation `json:"daily_double_locations"`
	Categories           []string                     `json:"categories"`
	CurrentQuestion      *entity.Question             `json:"current_question,omitempty"`
	CurrentPlayerIndex   int                          `json:"current_player_index"`
	AnsweringPlayerIndex int                          `json:"answering_player_index"`
}

// BuzzingState tracks one buzz window. FastestPlayer is -1 until the
// window resolves and never changes again until the next reset.
type BuzzingState struct {
	IsBuzzingActive      bool      `json:"is_buzzing_active"`
	BuzzOrder            []int     `json:"buzz_order"`
	FastestPlayer        int       `json:"fastest_player"`
	BuzzStartTime        time.Time `json:"buzz_start_time"`
	QuestionReadComplete bool      `json:"question_read_complete"`
}
