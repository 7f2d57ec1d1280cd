package pushpull

import "errors"

var (
	// ErrInsufficientItems is returned by SendItem when the source
	// doesn't hold enough of the requested item.
	ErrInsufficientItems = errors.New("not enough items to send")
	// ErrNoPath is returned by SendItem when no conveyor route connects
	// src to dest.
	ErrNoPath = errors.New("no conveyor path between source and destination")
)
