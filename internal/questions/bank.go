package questions

import (
	"math/rand"
	"sort"

	"github.com/MohammedAli93/jeopardy/internal/entity"
)

// Bank holds the flat question list and derives per-round views of it.
// Regular-board accessors never surface Final Jeopardy entries; only the
// FinalJeopardy* accessors do.
//
// Misuse (unknown category, unknown question text) degrades to nil/zero
// results rather than errors; callers on production paths treat a nil
// lookup as a fatal precondition violation.
type Bank struct {
	data []*entity.Question
}

func NewBank() *Bank {
	return &Bank{}
}

// SetQuestions replaces the backing store.
func (that *Bank) SetQuestions(list []*entity.Question) {
	that.data = list
}

// Categories returns regular-question categories ordered by first occurrence.
func (that *Bank) Categories() []string {
	seen := make(map[string]struct{})

	var categories []string
	for _, q := range that.data {
		if q.IsFinalJeopardy {
			continue
		}
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		categories = append(categories, q.Category)
	}

	return categories
}

func (that *Bank) CategoriesCount() int {
	return len(that.Categories())
}

func (that *Bank) QuestionsCountByCategory(category string) int {
	count := 0
	for _, q := range that.data {
		if !q.IsFinalJeopardy && q.Category == category {
			count++
		}
	}

	return count
}

// QuestionsMaxCount is the largest per-category question count, used to
// size the board grid.
func (that *Bank) QuestionsMaxCount() int {
	maxCount := 0
	for _, category := range that.Categories() {
		if count := that.QuestionsCountByCategory(category); count > maxCount {
			maxCount = count
		}
	}

	return maxCount
}

func (that *Bank) QuestionsByCategory(category string) []*entity.Question {
	var result []*entity.Question
	for _, q := range that.data {
		if !q.IsFinalJeopardy && q.Category == category {
			result = append(result, q)
		}
	}

	return result
}

// QuestionByCategoryAndQuestion is an exact-match lookup; nil when absent.
func (that *Bank) QuestionByCategoryAndQuestion(category, question string) *entity.Question {
	for _, q := range that.data {
		if !q.IsFinalJeopardy && q.Category == category && q.Question == question {
			return q
		}
	}

	return nil
}

// QuestionByCategoryAndPrice finds the first regular question in a category
// with the given price; nil when absent.
func (that *Bank) QuestionByCategoryAndPrice(category string, price int) *entity.Question {
	for _, q := range that.data {
		if !q.IsFinalJeopardy && q.Category == category && q.Price == price {
			return q
		}
	}

	return nil
}

func (that *Bank) RegularQuestions() []*entity.Question {
	var result []*entity.Question
	for _, q := range that.data {
		if !q.IsFinalJeopardy {
			result = append(result, q)
		}
	}

	return result
}

func (that *Bank) FinalJeopardyQuestions() []*entity.Question {
	var result []*entity.Question
	for _, q := range that.data {
		if q.IsFinalJeopardy {
			result = append(result, q)
		}
	}

	return result
}

// RandomFinalJeopardyQuestion picks uniformly among the tagged subset;
// nil when there is none.
func (that *Bank) RandomFinalJeopardyQuestion() *entity.Question {
	final := that.FinalJeopardyQuestions()
	if len(final) == 0 {
		return nil
	}

	return final[rand.Intn(len(final))] //nolint: gosec // it's ok
}

func (that *Bank) FinalJeopardyCategories() []string {
	seen := make(map[string]struct{})

	var categories []string
	for _, q := range that.data {
		if !q.IsFinalJeopardy {
			continue
		}
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		categories = append(categories, q.Category)
	}

	return categories
}

// PriceLadder returns the distinct regular-question prices in ascending
// order. Empty when the bank holds no regular questions.
func (that *Bank) PriceLadder() []int {
	seen := make(map[int]struct{})

	var ladder []int
	for _, q := range that.data {
		if q.IsFinalJeopardy {
			continue
		}
		if _, ok := seen[q.Price]; ok {
			continue
		}
		seen[q.Price] = struct{}{}
		ladder = append(ladder, q.Price)
	}

	sort.Ints(ladder)

	return ladder
}
