package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/MohammedAli93/jeopardy/internal/game"
)

func (that *Server) handleGameReset(cl *client, msg *Message) error {
	if err := cl.sess.Restart(); err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	cl.send(Response{Action: msg.Action, Payload: cl.sess.Snapshot()})

	return nil
}

func (that *Server) handleQuestionSelect(cl *client, msg *Message) error {
	var payload selectPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := cl.sess.SelectQuestion(payload.Category, payload.Price); err != nil {
		return fmt.Errorf("failed to select question: %w", err)
	}

	return nil
}

func (that *Server) handlePlayerBuzz(cl *client, msg *Message) error {
	won, err := cl.sess.HumanBuzz()
	if err != nil {
		return fmt.Errorf("failed to buzz: %w", err)
	}

	cl.send(Response{Action: msg.Action, Payload: buzzResult{Won: won}})

	return nil
}

func (that *Server) handleAnswerSubmit(cl *client, msg *Message) error {
	var payload answerPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := cl.sess.SubmitAnswer(payload.Answer); err != nil {
		return fmt.Errorf("failed to submit answer: %w", err)
	}

	return nil
}

func (that *Server) handleWagerSubmit(cl *client, msg *Message) error {
	var payload wagerPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := cl.sess.SubmitWager(payload.Amount); err != nil {
		return fmt.Errorf("failed to submit wager: %w", err)
	}

	return nil
}

func (that *Server) handleFinalWager(cl *client, msg *Message) error {
	var payload wagerPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := cl.sess.SubmitFinalWager(payload.Amount); err != nil {
		return fmt.Errorf("failed to submit final wager: %w", err)
	}

	return nil
}

func (that *Server) handleFinalAnswer(cl *client, msg *Message) error {
	var payload answerPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := cl.sess.SubmitFinalAnswer(payload.Answer); err != nil {
		return fmt.Errorf("failed to submit final answer: %w", err)
	}

	return nil
}

func (that *Server) handleStateGet(cl *client, msg *Message) error {
	cl.send(Response{Action: msg.Action, Payload: cl.sess.Snapshot()})

	return nil
}

// handleUIEvent forwards a UI command onto the session bus, where the
// state manager picks it up and runs the matching transition.
func (that *Server) handleUIEvent(cl *client, msg *Message) error {
	var payload uiEventPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	eventType := game.EventType(payload.Event)
	switch eventType {
	case game.EventMicEnable, game.EventMicDisable, game.EventBackButtonClicked, game.EventHubShow:
	default:
		return fmt.Errorf("unknown ui event %q", payload.Event)
	}

	cl.sess.Events().Publish(eventType, nil)

	return nil
}
