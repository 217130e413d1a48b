package domain

// EventType names what happened to an aggregate.
type EventType string

// Folder event types.
const (
	FolderCreated EventType = "FOLDER_CREATED"
	FolderUpdated EventType = "FOLDER_UPDATED"
	FolderDeleted EventType = "FOLDER_DELETED"
)

// Note event types.
const (
	NoteCreated EventType = "NOTE_CREATED"
	NoteUpdated EventType = "NOTE_UPDATED"
	NoteDeleted EventType = "NOTE_DELETED"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case FolderCreated, FolderUpdated, FolderDeleted,
		NoteCreated, NoteUpdated, NoteDeleted:
		return true
	}
	return false
}

// Payload is the opaque field mapping carried by an event.
type Payload map[string]any

// Clone returns a deep copy of p. Nested maps and slices are copied too,
// so later changes to the source never leak into a recorded event.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Payload:
		return t.Clone()
	case map[string]any:
		return map[string]any(Payload(t).Clone())
	case []any:
		cp := make([]any, len(t))
		for i := range t {
			cp[i] = cloneValue(t[i])
		}
		return cp
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
