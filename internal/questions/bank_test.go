package questions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MohammedAli93/jeopardy/internal/entity"
)

func testBank() *Bank {
	bank := NewBank()
	bank.SetQuestions([]*entity.Question{
		{Category: "CAPITALS", Question: "Capital of France", Answer: "Paris", Price: 100},
		{Category: "CAPITALS", Question: "Capital of Japan", Answer: "Tokyo", Price: 200},
		{Category: "SPORTS", Question: "Players on a soccer team", Answer: "Eleven", Price: 100},
		{Category: "SPORTS", Question: "Innings in baseball", Answer: "Nine", Price: 200},
		{Category: "FINAL JEOPARDY: HISTORY", Question: "First US president", Answer: "Washington", Price: 0, IsFinalJeopardy: true},
	})

	return bank
}

func TestBank_Categories(t *testing.T) {
	// Given: a bank with two regular categories and one final category
	bank := testBank()

	// Then: categories keep first-occurrence order and exclude finals
	require.Equal(t, []string{"CAPITALS", "SPORTS"}, bank.Categories())
	require.Equal(t, 2, bank.CategoriesCount())
}

func TestBank_QuestionsByCategory(t *testing.T) {
	bank := testBank()

	require.Len(t, bank.QuestionsByCategory("CAPITALS"), 2)
	require.Equal(t, 2, bank.QuestionsCountByCategory("SPORTS"))
	require.Equal(t, 2, bank.QuestionsMaxCount())
	require.Empty(t, bank.QuestionsByCategory("UNKNOWN"))
}

func TestBank_QuestionByCategoryAndPrice(t *testing.T) {
	t.Run("existing slot", func(t *testing.T) {
		bank := testBank()

		question := bank.QuestionByCategoryAndPrice("SPORTS", 200)

		require.NotNil(t, question)
		require.Equal(t, "Nine", question.Answer)
	})

	t.Run("missing slot returns nil", func(t *testing.T) {
		bank := testBank()

		require.Nil(t, bank.QuestionByCategoryAndPrice("SPORTS", 500))
		require.Nil(t, bank.QuestionByCategoryAndPrice("UNKNOWN", 100))
	})

	t.Run("lookup by question text", func(t *testing.T) {
		bank := testBank()

		question := bank.QuestionByCategoryAndQuestion("CAPITALS", "Capital of Japan")

		require.NotNil(t, question)
		require.Equal(t, "Tokyo", question.Answer)
		require.Nil(t, bank.QuestionByCategoryAndQuestion("CAPITALS", "nope"))
	})
}

func TestBank_PriceLadder(t *testing.T) {
	// Given: regular questions at two prices, final tagged at zero
	bank := testBank()

	// Then: ladder is distinct ascending prices, finals excluded
	require.Equal(t, []int{100, 200}, bank.PriceLadder())
}

func TestBank_FinalJeopardy(t *testing.T) {
	t.Run("random pick comes from the tagged subset", func(t *testing.T) {
		bank := testBank()

		question := bank.RandomFinalJeopardyQuestion()

		require.NotNil(t, question)
		require.True(t, question.IsFinalJeopardy)
		require.Equal(t, []string{"FINAL JEOPARDY: HISTORY"}, bank.FinalJeopardyCategories())
	})

	t.Run("nil when no final questions exist", func(t *testing.T) {
		bank := NewBank()
		bank.SetQuestions([]*entity.Question{
			{Category: "SPORTS", Question: "Innings in baseball", Answer: "Nine", Price: 200},
		})

		require.Nil(t, bank.RandomFinalJeopardyQuestion())
	})
}

func TestDefaultQuestions(t *testing.T) {
	// Given: the built-in question set
	bank := NewBank()
	source := DefaultQuestions()

	list := make([]*entity.Question, len(source))
	for i := range source {
		list[i] = &source[i]
	}
	bank.SetQuestions(list)

	// Then: the board is complete and a final question is available
	require.Equal(t, 4, bank.CategoriesCount())
	require.Equal(t, 5, bank.QuestionsMaxCount())
	require.NotNil(t, bank.RandomFinalJeopardyQuestion())

	for _, category := range bank.Categories() {
		require.Equal(t, 5, bank.QuestionsCountByCategory(category))
	}
}
