package repository

import (
	"sync"

	"github.com/MohammedAli93/jeopardy/internal/apperror"
)

// Session is the stored aggregate; the repository only needs identity.
type Session interface {
	ID() string
}

type SessionRepository interface {
	Save(session Session) error
	GetByID(id string) (Session, error)
	DeleteByID(id string) error
	Count() int
}

type memorySessions struct {
	mu    sync.RWMutex
	items map[string]Session
}

// NewSessionRepository returns an in-memory repository; game state is
// process-local by contract, so nothing survives a restart.
func NewSessionRepository() SessionRepository {
	return &memorySessions{
		items: make(map[string]Session),
	}
}

func (that *memorySessions) Save(session Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.items[session.ID()] = session

	return nil
}

func (that *memorySessions) GetByID(id string) (Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.items[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return session, nil
}

func (that *memorySessions) DeleteByID(id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.items[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.items, id)

	return nil
}

func (that *memorySessions) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.items)
}
