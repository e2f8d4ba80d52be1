package entity

import "fmt"

// Question is a single board clue. Immutable once loaded except for Winner,
// which is set when the question has been answered.
type Question struct {
	Category        string `json:"category"`
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	Price           int    `json:"price"`
	Winner          string `json:"winner,omitempty"`
	IsFinalJeopardy bool   `json:"isFinalJeopardy,omitempty"`
}

func (that *Question) IsAnswered() bool {
	return that.Winner != ""
}

// AnsweredKey identifies a board slot in the answered-questions set.
func AnsweredKey(category string, price int) string {
	return fmt.Sprintf("%s-%d", category, price)
}

func (that *Question) Key() string {
	return AnsweredKey(that.Category, that.Price)
}
