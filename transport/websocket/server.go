package websocket

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/MohammedAli93/jeopardy/internal/apperror"
	"github.com/MohammedAli93/jeopardy/internal/game"
	"github.com/MohammedAli93/jeopardy/internal/session"
)

// outboundBufferSize bounds the per-connection event queue; a consumer
// that falls further behind starts losing events rather than blocking
// the game loop.
const outboundBufferSize = 64

type sessionManager interface {
	GetByID(id string) (*session.Session, error)
}

type Server struct {
	logger  *slog.Logger
	manager sessionManager

	upgrader websocket.Upgrader
	handlers map[string]func(client *client, message *Message) error
}

func New(logger *slog.Logger, manager sessionManager) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]func(*client, *Message) error),
	}

	server.handlers["game:reset"] = server.handleGameReset
	server.handlers["question:select"] = server.handleQuestionSelect
	server.handlers["player:buzz"] = server.handlePlayerBuzz
	server.handlers["answer:submit"] = server.handleAnswerSubmit
	server.handlers["wager:submit"] = server.handleWagerSubmit
	server.handlers["wager:final"] = server.handleFinalWager
	server.handlers["answer:final"] = server.handleFinalAnswer
	server.handlers["state:get"] = server.handleStateGet
	server.handlers["ui:event"] = server.handleUIEvent

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(port string) error {
	router := httprouter.New()
	router.GET("/ws/:id", that.serveSession)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// client is one live connection. outbound is never closed: a bus handler
// racing the disconnect may still be sending into it after Unsubscribe
// returns, so teardown signals writeLoop through done and leaves the
// channel to the GC.
type client struct {
	sess     *session.Session
	conn     *websocket.Conn
	outbound chan Response
	done     chan struct{}
}

func (that *Server) serveSession(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	log := that.logger.With("method", "serveSession")

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

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log.Info("WebSocket connection established", "sessionID", sess.ID())

	cl := &client{
		sess:     sess,
		conn:     conn,
		outbound: make(chan Response, outboundBufferSize),
		done:     make(chan struct{}),
	}

	subscription := sess.Events().SubscribeAll(func(event game.Event) {
		select {
		case cl.outbound <- Response{Action: "event", Event: string(event.Type), Payload: event.Payload}:
		default:
			log.Warn("dropping event for slow consumer", "event", event.Type, "sessionID", sess.ID())
		}
	})

	go cl.writeLoop(log)

	that.readLoop(cl)

	sess.Events().Unsubscribe(subscription)
	close(cl.done)

	log.Info("WebSocket connection closed", "sessionID", sess.ID())
}

func (that *Server) readLoop(cl *client) {
	log := that.logger.With("method", "readLoop")

	defer cl.conn.Close()

	for {
		var message Message
		if err := cl.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			cl.send(Response{Action: message.Action, Error: "unknown action"})
			continue
		}

		if err := handler(cl, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			cl.send(Response{Action: message.Action, Error: err.Error()})
		}
	}
}

func (cl *client) writeLoop(log *slog.Logger) {
	for {
		select {
		case <-cl.done:
			return
		case response := <-cl.outbound:
			if err := cl.conn.WriteJSON(response); err != nil {
				log.Error("error writing message", "error", err)
				return
			}
		}
	}
}

// send queues a frame without blocking the read loop.
func (cl *client) send(response Response) {
	select {
	case cl.outbound <- response:
	default:
	}
}
