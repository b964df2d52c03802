package service

import "errors"

// Error taxonomy. Every one of these is absorbed by the main loop and
// surfaced, at most, as console text.
var (
	ErrAuth           = errors.New("incorrect password")
	ErrParse          = errors.New("unrecognized command")
	ErrRange          = errors.New("value out of range")
	ErrInvalidFormat  = errors.New("invalid time or date format")
	ErrDeviceFault    = errors.New("device fault")
	ErrBufferOverflow = errors.New("line too long")
)
