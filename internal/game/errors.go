package game

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientPool = errors.New("insufficient pool")
	ErrNoHandDrawn      = errors.New("no hand drawn")
	ErrEmptySelection   = errors.New("empty selection")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrOutOfRange       = errors.New("out of range")
	ErrAdminRequired    = errors.New("administrator required")
)

// ParseError reports input that should have been an integer but was not.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: not an integer", e.Input)
}
