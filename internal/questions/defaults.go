package questions

import "github.com/MohammedAli93/jeopardy/internal/entity"

// DefaultQuestions is the built-in demo board used when no questions file
// is configured. Four categories of five clues plus two Final Jeopardy
// questions, so a full game can run out of the box.
func DefaultQuestions() []entity.Question {
	return []entity.Question{
		// CAPITALS
		{Category: "CAPITALS", Question: "What is the capital of France?", Answer: "Paris", Price: 400},
		{Category: "CAPITALS", Question: "What is the capital of Spain?", Answer: "Madrid", Price: 800},
		{Category: "CAPITALS", Question: "What is the capital of Germany?", Answer: "Berlin", Price: 1200},
		{Category: "CAPITALS", Question: "What is the capital of Italy?", Answer: "Rome", Price: 1600},
		{Category: "CAPITALS", Question: "What is the capital of the United States?", Answer: "Washington, D.C.", Price: 2000},

		// SPORTS
		{Category: "SPORTS", Question: "What is the name of the most popular player in Argentina?", Answer: "Lionel Messi", Price: 400},
		{Category: "SPORTS", Question: "What is the name of the most popular player in Brazil?", Answer: "Ronaldo", Price: 800},
		{Category: "SPORTS", Question: "What is the name of the most popular player in Portugal?", Answer: "Cristiano Ronaldo", Price: 1200},
		{Category: "SPORTS", Question: "What is the name of the most popular player in Spain?", Answer: "Raul Gonzalez", Price: 1600},
		{Category: "SPORTS", Question: "What is the name of the most popular player in France?", Answer: "Kylian Mbappe", Price: 2000},

		// CINEMA/TV
		{Category: "CINEMA/TV", Question: "What is the name of a series about a chemistry teacher who makes drugs?", Answer: "Breaking Bad", Price: 400},
		{Category: "CINEMA/TV", Question: "What is the name of a movie about a man who can fly and shoot laser beams with his eyes?", Answer: "Superman", Price: 800},
		{Category: "CINEMA/TV", Question: "What is the name of a TV show about a man who can run at super speed?", Answer: "The Flash", Price: 1200},
		{Category: "CINEMA/TV", Question: "What is the name of a movie about a ship sinking in the ocean?", Answer: "Titanic", Price: 1600},
		{Category: "CINEMA/TV", Question: "What is the name of a series about a girl playing chess?", Answer: "Queen Gambit", Price: 2000},

		// COLORS
		{Category: "COLORS", Question: "What is the color of the sky?", Answer: "Blue", Price: 400},
		{Category: "COLORS", Question: "What is the color of the sun?", Answer: "Yellow", Price: 800},
		{Category: "COLORS", Question: "What color do you get when you mix red and yellow?", Answer: "Orange", Price: 1200},
		{Category: "COLORS", Question: "What color do you get when you mix blue and red?", Answer: "Purple", Price: 1600},
		{Category: "COLORS", Question: "What color do you get when you mix yellow and blue?", Answer: "Green", Price: 2000},

		// FINAL JEOPARDY
		{Category: "FINAL JEOPARDY: GEOGRAPHY", Question: "This is the only continent that spans all four hemispheres.", Answer: "Africa", IsFinalJeopardy: true},
		{Category: "FINAL JEOPARDY: SCIENCE", Question: "This element's chemical symbol comes from its Latin name, aurum.", Answer: "Gold", IsFinalJeopardy: true},
	}
}
