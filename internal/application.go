package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MohammedAli93/jeopardy/internal/config"
	"github.com/MohammedAli93/jeopardy/internal/entity"
	"github.com/MohammedAli93/jeopardy/internal/questions"
	"github.com/MohammedAli93/jeopardy/internal/repository"
	"github.com/MohammedAli93/jeopardy/internal/session"
	"github.com/MohammedAli93/jeopardy/transport/rest"
	"github.com/MohammedAli93/jeopardy/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	source, err := loadQuestions(conf.QuestionsPath)
	if err != nil {
		return fmt.Errorf("could not load questions: %w", err)
	}
	log.Info("Questions loaded", "count", len(source))

	sessionRepo := repository.NewSessionRepository()
	manager, err := session.NewManager(logger, sessionRepo, source, rosterFromConfig(conf.Players), timingFromConfig(&conf.Game))
	if err != nil {
		return fmt.Errorf("could not create session manager: %w", err)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		handlers := rest.NewHandlers(logger, manager)
		if httpErr := rest.Start(conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, manager)
		if wsErr := wsServer.Start(conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// loadQuestions reads the board from disk, falling back to the built-in
// set when no path is configured.
func loadQuestions(path string) ([]entity.Question, error) {
	if path == "" {
		return questions.DefaultQuestions(), nil
	}

	return questions.LoadFile(path)
}

func rosterFromConfig(players []config.Player) []session.RosterEntry {
	roster := make([]session.RosterEntry, 0, len(players))
	for _, player := range players {
		roster = append(roster, session.RosterEntry{
			Name:       player.Name,
			Human:      player.Human,
			Difficulty: entity.Difficulty(player.Difficulty),
		})
	}

	return roster
}

func timingFromConfig(game *config.Game) session.Timing {
	return session.Timing{
		BuzzWindow:     game.BuzzWindow(),
		AnswerWindow:   game.AnswerWindow(),
		BuzzCeiling:    game.BuzzCeiling(),
		ReadingPerWord: game.ReadingPerWord(),
	}
}
