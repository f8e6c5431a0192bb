package domain

import "errors"

var (
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidParameters = errors.New("invalid parameters")
)
