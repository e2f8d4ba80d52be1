package apperror

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrQuestionAnswered   = errors.New("question is already answered")
	ErrNoHumanPlayer      = errors.New("no human player in roster")
	ErrWrongPhase         = errors.New("operation not valid in current phase")
	ErrWagerOutOfRange    = errors.New("wager out of range")
	ErrNotAnsweringPlayer = errors.New("player is not the answering player")
	ErrGameOver           = errors.New("game is already over")
)
