package domain

import "errors"

var (
	// ErrNoActiveQuestion is returned when an answer arrives while no question is shown.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrAnswerClosed indicates the current question was already answered.
	ErrAnswerClosed = errors.New("question already answered")
	// ErrInvalidChoice indicates a submitted choice index is out of range.
	ErrInvalidChoice = errors.New("choice not found")
	// ErrInvalidSetup is returned when the setup form values fail validation.
	ErrInvalidSetup = errors.New("invalid quiz setup")
	// ErrWrongPhase is returned when an action is not allowed in the current quiz phase.
	ErrWrongPhase = errors.New("action not allowed in current phase")
)
