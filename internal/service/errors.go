package service

import "errors"

var (
	// ErrUnknownTeam means a schedule name matched no alias closely enough.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrGameStarted means a pick was made on a game that is no longer open.
	ErrGameStarted = errors.New("game already started")
	// ErrDuplicateConfidence means two picks share a confidence value.
	ErrDuplicateConfidence = errors.New("can not reuse confidences")
	// ErrConfidenceRange means a confidence is outside 1..games in the week.
	ErrConfidenceRange = errors.New("confidence out of range")
	// ErrUnknownGame means an entry names a game that is not in the week.
	ErrUnknownGame = errors.New("unknown game")
	// ErrNoPick means an entry has no team selected.
	ErrNoPick = errors.New("no team picked")
)
