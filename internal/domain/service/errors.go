package service

import "errors"

var (
	// ErrEmptyInput a reduction that needs at least one element got none
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidRatio non-positive price or ratio where a divisor is required
	ErrInvalidRatio = errors.New("invalid price ratio")

	// ErrInvalidAddress address is not 0x + 40 hex chars
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount negative capital
	ErrInvalidAmount = errors.New("invalid amount")
)
