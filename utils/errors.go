package utils

import "errors"

var (
	ErrSheetNotConfigured = errors.New("sheet source is not configured")
	ErrInvalidSheetURL    = errors.New("invalid sheet URL")
	ErrSheetResponse      = errors.New("sheet source returned an error")
	ErrEmailNotConfigured = errors.New("email delivery is not configured")
	ErrInvalidFilename    = errors.New("invalid asset filename")
	ErrIncorrectPassword  = errors.New("Incorrect password")
	ErrGiftNotConfigured  = errors.New("gift is not configured")
	ErrTooManyAttempts    = errors.New("too many attempts, try again later")
	ErrNoFaces            = errors.New("no faces provided")
	ErrDimensionMismatch  = errors.New("face embedding has the wrong dimension")
)
