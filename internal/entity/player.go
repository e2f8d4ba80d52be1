package entity

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Player is one contestant. Exactly one player in a roster is human; the
// rest are simulated and carry a difficulty tier.
type Player struct {
	Name       string     `json:"name"`
	Score      int        `json:"score"`
	IsHuman    bool       `json:"is_human"`
	IsActive   bool       `json:"is_active,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// EffectiveDifficulty falls back to medium when no tier was assigned.
func (that *Player) EffectiveDifficulty() Difficulty {
	if that.Difficulty == "" {
		return DifficultyMedium
	}
	return that.Difficulty
}
