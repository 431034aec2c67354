package services

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrAlreadyPunched     = errors.New("punch type already recorded today")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InputError is an ErrInvalidInput carrying the message shown to the caller.
type InputError struct{ Msg string }

func (e *InputError) Error() string { return e.Msg }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(msg string) error { return &InputError{Msg: msg} }
