package ai

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/MohammedAli93/jeopardy/internal/entity"
)

const (
	// attemptProbability is the chance an AI tries to answer at all,
	// regardless of difficulty or price.
	attemptProbability = 0.8

	// priceNormalizer and priceDifficultyWeight scale correctness down for
	// expensive questions: probability *= 1 - (price/normalizer)*weight.
	priceNormalizer       = 250.0
	priceDifficultyWeight = 0.2

	// selectionReferenceValue anchors the "play it safe" question
	// preference for trailing players.
	selectionReferenceValue = 30

	// leaderProximity is the score ratio above which a player counts as
	// being in contention with the leader.
	leaderProximity = 0.8
)

// Answer is the outcome of a simulated answer attempt.
type Answer struct {
	WillAnswer   bool
	IsCorrect    bool
	ResponseTime time.Duration
}

// Buzz is the outcome of a simulated buzz decision.
type Buzz struct {
	WillBuzz bool
	BuzzTime time.Duration
}

// Selection is a simulated question pick; zero value means no questions
// were available.
type Selection struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
}

type timingRange struct {
	base   time.Duration
	spread time.Duration
}

type answerProfile struct {
	correctProbability float64
	responseTime       timingRange
}

var answerProfiles = map[entity.Difficulty]answerProfile{
	entity.DifficultyEasy:   {correctProbability: 0.50, responseTime: timingRange{2000 * time.Millisecond, 1000 * time.Millisecond}},
	entity.DifficultyMedium: {correctProbability: 0.70, responseTime: timingRange{1500 * time.Millisecond, 1000 * time.Millisecond}},
	entity.DifficultyHard:   {correctProbability: 0.85, responseTime: timingRange{1000 * time.Millisecond, 1000 * time.Millisecond}},
}

var buzzTimes = map[entity.Difficulty]timingRange{
	entity.DifficultyEasy:   {1500 * time.Millisecond, 2000 * time.Millisecond},
	entity.DifficultyMedium: {800 * time.Millisecond, 1500 * time.Millisecond},
	entity.DifficultyHard:   {300 * time.Millisecond, 1000 * time.Millisecond},
}

// Buzz-window delays used when arming AI buzz timers against the visible
// countdown; tighter on a reopened window since part of it is spent.
var (
	windowDelays = map[entity.Difficulty]timingRange{
		entity.DifficultyEasy:   {3000 * time.Millisecond, 4000 * time.Millisecond},
		entity.DifficultyMedium: {2000 * time.Millisecond, 4000 * time.Millisecond},
		entity.DifficultyHard:   {1000 * time.Millisecond, 3000 * time.Millisecond},
	}
	rebuzzWindowDelays = map[entity.Difficulty]timingRange{
		entity.DifficultyEasy:   {2000 * time.Millisecond, 3000 * time.Millisecond},
		entity.DifficultyMedium: {1500 * time.Millisecond, 2500 * time.Millisecond},
		entity.DifficultyHard:   {800 * time.Millisecond, 2200 * time.Millisecond},
	}
)

// Simulator produces AI player behavior. It holds no game state; every
// call re-rolls against its random source. The source is injectable so
// tests can seed it, while production uses entropy.
type Simulator struct {
	rng *rand.Rand
}

func New() *Simulator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewWithSource(src rand.Source) *Simulator {
	return &Simulator{rng: rand.New(src)} //nolint: gosec // it's ok
}

func (that *Simulator) draw(r timingRange) time.Duration {
	return r.base + time.Duration(that.rng.Float64()*float64(r.spread))
}

// SimulateAnswer rolls whether an AI attempts a question, whether it is
// correct, and how long it takes. Higher-priced questions are harder.
func (that *Simulator) SimulateAnswer(question *entity.Question, difficulty entity.Difficulty) Answer {
	profile, ok := answerProfiles[difficulty]
	if !ok {
		profile = answerProfiles[entity.DifficultyMedium]
	}

	questionDifficulty := float64(question.Price) / priceNormalizer
	correctProbability := profile.correctProbability * (1 - questionDifficulty*priceDifficultyWeight)

	return Answer{
		WillAnswer:   that.rng.Float64() < attemptProbability,
		IsCorrect:    that.rng.Float64() < correctProbability,
		ResponseTime: that.draw(profile.responseTime),
	}
}

// SimulateWager picks a wager as a share of maxWager. Hard players wager
// aggressively when in contention with the leader and conservatively when
// behind.
func (that *Simulator) SimulateWager(player *entity.Player, maxWager int, players []*entity.Player) int {
	var percentage float64

	switch player.EffectiveDifficulty() {
	case entity.DifficultyEasy:
		percentage = 0.3 + that.rng.Float64()*0.2
	case entity.DifficultyHard:
		leadingScore := leadingScoreOf(players)
		if float64(player.Score) > float64(leadingScore)*leaderProximity {
			percentage = 0.7 + that.rng.Float64()*0.3
		} else {
			percentage = 0.4 + that.rng.Float64()*0.3
		}
	default:
		percentage = 0.5 + that.rng.Float64()*0.2
	}

	return int(math.Floor(float64(maxWager) * percentage))
}

// SimulateBuzzing delegates the attempt decision to SimulateAnswer; a
// declined attempt never buzzes.
func (that *Simulator) SimulateBuzzing(player *entity.Player, question *entity.Question) Buzz {
	response := that.SimulateAnswer(question, player.EffectiveDifficulty())
	if !response.WillAnswer {
		return Buzz{}
	}

	return Buzz{
		WillBuzz: true,
		BuzzTime: that.draw(buzzTimes[player.EffectiveDifficulty()]),
	}
}

// SimulateQuestionSelection picks among available questions: highest
// prices when the player is in contention with the leader, otherwise
// values closest to the reference; then uniformly among the top three.
// Returns the zero Selection when no questions remain.
func (that *Simulator) SimulateQuestionSelection(player *entity.Player, available []*entity.Question, players []*entity.Player) Selection {
	if len(available) == 0 {
		return Selection{}
	}

	candidates := make([]*entity.Question, len(available))
	copy(candidates, available)

	leadingScore := leadingScoreOf(players)
	if float64(player.Score) > float64(leadingScore)*leaderProximity {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Price > candidates[j].Price
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			return distanceFromReference(candidates[i].Price) < distanceFromReference(candidates[j].Price)
		})
	}

	pool := len(candidates)
	if pool > 3 {
		pool = 3
	}
	selected := candidates[that.rng.Intn(pool)]

	return Selection{Category: selected.Category, Value: selected.Price}
}

// BuzzWindowDelay draws the delay before an AI buzz attempt fires inside
// the visible buzz window.
func (that *Simulator) BuzzWindowDelay(difficulty entity.Difficulty, rebuzz bool) time.Duration {
	delays := windowDelays
	if rebuzz {
		delays = rebuzzWindowDelays
	}

	r, ok := delays[difficulty]
	if !ok {
		r = delays[entity.DifficultyMedium]
	}

	return that.draw(r)
}

// ThinkingTime draws the pause an AI takes before delivering its answer.
func (that *Simulator) ThinkingTime() time.Duration {
	return time.Second + time.Duration(that.rng.Float64()*float64(2*time.Second))
}

func leadingScoreOf(players []*entity.Player) int {
	leading := 0
	for i, p := range players {
		if i == 0 || p.Score > leading {
			leading = p.Score
		}
	}

	return leading
}

func distanceFromReference(price int) int {
	d := price - selectionReferenceValue
	if d < 0 {
		return -d
	}

	return d
}
