package events

import "errors"

// ErrAppendEvent is returned when an event could not be written.
var ErrAppendEvent = errors.New("failed to append event")

// ErrUnknownType is returned for an event type outside the known set.
var ErrUnknownType = errors.New("unknown event type")

// ErrListEvents is returned when events listing fails.
var ErrListEvents = errors.New("failed to list events")
