package cli

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrLogHandlerFailed = errors.New("log handler failed")
	ErrNoDisplay        = errors.New("no display")
)
