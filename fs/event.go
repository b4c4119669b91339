package fs

// Event names a mutation reported to a Watcher.
type Event string

const (
	Created Event = "created"
	Changed Event = "changed"
	Removed Event = "removed"
	Moved   Event = "moved"
)

// Watcher observes successful mutations. Emit is called synchronously after
// the mutation; other is non-nil only for Moved, carrying the destination.
// The watcher's lifetime is independent of the objects that call it.
type Watcher interface {
	Emit(event Event, obj FSObject, other FSObject)
}

type nopWatcher struct{}

func (nopWatcher) Emit(Event, FSObject, FSObject) {}

// NopWatcher discards all events.
var NopWatcher Watcher = nopWatcher{}
