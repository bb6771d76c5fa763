package services

import (
	"errors"
	"fmt"
	"strings"

	"shopfront/internal/domain"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")

	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidPaymentAction = errors.New("invalid action for this order status")

	ErrEmptyItems           = errors.New("order must contain at least one item")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrInvalidStatus        = errors.New("unknown order status")

	// Clients display this text as-is, capitalization included.
	ErrCancelWindowClosed = errors.New("Order cancellation window (24 hours) has passed")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TerminalStateError reports a user cancellation attempt against an order
// that is already delivered or cancelled. The message names the current
// status, which clients display as-is.
type TerminalStateError struct {
	Status domain.OrderStatus
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("Order cannot be cancelled as it is already %s", strings.ToLower(string(e.Status)))
}
