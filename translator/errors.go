package translator

import "errors"

// Sentinel errors - Input
var (
	ErrInvalidInput = errors.New("translator: invalid input")
)

// Sentinel errors - Lifecycle
var (
	ErrNotInitialized = errors.New(
		"translator: network parameters are not loaded, did you call Init()?",
	)
	ErrAlreadyInitialized = errors.New("translator: Init() was already called")
)

// Sentinel errors - Account lookup
var (
	ErrLookupFailed = errors.New("translator: account lookup failed")
	ErrTimeout      = errors.New("translator: timed out waiting for layer 2 account")
)
