package service

import "errors"

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("primed: client is closed")

// ErrSpanTooLarge indicates a requested range wider than the configured
// ceiling. Matchable with errors.Is.
var ErrSpanTooLarge = errors.New("requested range span exceeds limit")
