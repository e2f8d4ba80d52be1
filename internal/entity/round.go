package entity

const (
	RoundJeopardy       = "jeopardy"
	RoundDoubleJeopardy = "double-jeopardy"
	RoundFinalJeopardy  = "final-jeopardy"
)

// DefaultPriceLadder is the historical board value ladder. Engines derive
// their working ladder from the loaded question set and fall back to this
// one only when the bank is empty.
var DefaultPriceLadder = []int{10, 25, 50, 100, 250}

// DailyDoubleLocation addresses a board slot by column and row.
type DailyDoubleLocation struct {
	CategoryIndex int `json:"category_index"`
	ValueIndex    int `json:"value_index"`
}
