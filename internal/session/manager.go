package session

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MohammedAli93/jeopardy/internal/ai"
	"github.com/MohammedAli93/jeopardy/internal/apperror"
	"github.com/MohammedAli93/jeopardy/internal/entity"
	"github.com/MohammedAli93/jeopardy/internal/game"
	"github.com/MohammedAli93/jeopardy/internal/questions"
	"github.com/MohammedAli93/jeopardy/internal/repository"
)

// RosterEntry names one seat at the podiums.
type RosterEntry struct {
	Name       string
	Human      bool
	Difficulty entity.Difficulty
}

func DefaultRoster() []RosterEntry {
	return []RosterEntry{
		{Name: "You", Human: true},
		{Name: "Alex", Difficulty: entity.DifficultyMedium},
		{Name: "Morgan", Difficulty: entity.DifficultyHard},
	}
}

// Manager creates and tracks live sessions. Each session gets its own
// question copies, so one table's winners never bleed into another's.
type Manager struct {
	logger *slog.Logger
	repo   repository.SessionRepository
	source []entity.Question
	roster []RosterEntry
	timing Timing
}

func NewManager(logger *slog.Logger, repo repository.SessionRepository, source []entity.Question, roster []RosterEntry, timing Timing) (*Manager, error) {
	if len(roster) == 0 {
		roster = DefaultRoster()
	}

	hasHuman := false
	for _, entry := range roster {
		if entry.Human {
			hasHuman = true
			break
		}
	}
	if !hasHuman {
		return nil, apperror.ErrNoHumanPlayer
	}

	return &Manager{
		logger: logger.With("component", "session-manager"),
		repo:   repo,
		source: source,
		roster: roster,
		timing: timing,
	}, nil
}

// CreateSession builds a fresh game and starts it immediately.
func (that *Manager) CreateSession() (*Session, error) {
	id := uuid.NewString()

	bank := questions.NewBank()

	cloned := make([]*entity.Question, len(that.source))
	for i := range that.source {
		question := that.source[i]
		cloned[i] = &question
	}
	bank.SetQuestions(cloned)

	players := make([]*entity.Player, 0, len(that.roster))
	for _, entry := range that.roster {
		players = append(players, &entity.Player{
			Name:       entry.Name,
			IsHuman:    entry.Human,
			Difficulty: entry.Difficulty,
		})
	}

	engine := game.NewEngine(that.logger, bank, players, game.Options{BuzzCeiling: that.timing.BuzzCeiling})
	sess := newSession(id, that.logger, engine, bank, ai.New(), that.timing)

	if err := that.repo.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	sess.Start()
	that.logger.Info("session created", "sessionID", id, "players", len(players))

	return sess, nil
}

func (that *Manager) GetByID(id string) (*Session, error) {
	stored, err := that.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	sess, ok := stored.(*Session)
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return sess, nil
}

// EndSession tears the session down and forgets it.
func (that *Manager) EndSession(id string) error {
	sess, err := that.GetByID(id)
	if err != nil {
		return err
	}

	sess.Teardown()

	return that.repo.DeleteByID(id)
}

func (that *Manager) Count() int {
	return that.repo.Count()
}
