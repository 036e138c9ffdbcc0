package models

import "errors"

// Sentinel errors shared between the storage layer and its callers.
// Repositories translate driver errors into these so callers can classify
// failures with errors.Is.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSetNotFound       = errors.New("card set not found")
	ErrCardNotFound      = errors.New("flashcard not found")
	ErrProgressNotFound  = errors.New("progress record not found")
	ErrDuplicateProgress = errors.New("progress record already exists")
)
