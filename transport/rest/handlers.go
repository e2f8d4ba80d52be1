package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/MohammedAli93/jeopardy/internal/apperror"
	"github.com/MohammedAli93/jeopardy/internal/session"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateSession(w http.ResponseWriter, r *http.Request, params httprouter.Params)
	GetSession(w http.ResponseWriter, r *http.Request, params httprouter.Params)
	DeleteSession(w http.ResponseWriter, r *http.Request, params httprouter.Params)
}

type sessionManager interface {
	CreateSession() (*session.Session, error)
	GetByID(id string) (*session.Session, error)
	EndSession(id string) error
}

type handlers struct {
	logger  *slog.Logger
	manager sessionManager
}

func NewHandlers(logger *slog.Logger, manager sessionManager) Handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		manager: manager,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) CreateSession(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	log := that.logger.With("method", "CreateSession")

	sess, err := that.manager.CreateSession()
	if err != nil {
		log.Error("failed to create session", "error", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (that *handlers) GetSession(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	log := that.logger.With("method", "GetSession")

	sess, err := that.manager.GetByID(params.ByName("id"))
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (that *handlers) DeleteSession(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	log := that.logger.With("method", "DeleteSession")

	err := that.manager.EndSession(params.ByName("id"))
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to end session", "error", err)
		http.Error(w, "failed to end session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
