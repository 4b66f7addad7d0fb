// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidCoordinate indicates an attempt to address a square off the board.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrIllegalMove indicates a move that violates chess rules or turn order.
	ErrIllegalMove = errors.New("illegal move")

	// ErrPromotionPending indicates a move was submitted while a pawn
	// is still waiting to be promoted.
	ErrPromotionPending = errors.New("promotion pending")

	// ErrInvalidPromotion indicates a promotion to a pawn, king or nothing.
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrLoadFormatMismatch indicates a snapshot with the wrong size or shape.
	ErrLoadFormatMismatch = errors.New("snapshot format mismatch")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSetup indicates a starting arrangement that cannot be played.
	ErrInvalidSetup = errors.New("invalid setup")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates an unknown game identifier.
	ErrGameNotFound = errors.New("game not found")
)

// MoveError wraps a rejected move with the squares involved and,
// when known, the rule that rejected it. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying error
	From   string // Source square in coordinate notation
	To     string // Destination square in coordinate notation
	Reason string // Human readable cause (optional)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %s-%s", e.From, e.To))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
