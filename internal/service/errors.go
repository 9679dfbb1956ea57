package service

import "errors"

var (
	ErrEmptyTask        = errors.New("task text is empty")
	ErrNoActiveSupplier = errors.New("no supplier under negotiation")
	ErrSessionClosed    = errors.New("negotiation already closed")
)
