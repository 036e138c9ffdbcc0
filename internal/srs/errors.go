package srs

import "errors"

// Validation failures returned by the engine. Not-found and duplicate
// conditions are the shared sentinels in pkg/models; these two are
// engine-level: the caller can recover by re-prompting the user.
var (
	ErrSetRequired     = errors.New("learning mode requires a selected card set")
	ErrInvalidResponse = errors.New("invalid review response")
)
