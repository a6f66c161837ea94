package driver

// Status is the lifecycle of one file inside a multi-file run, used to feed
// progress displays.
type Status uint8

const (
	StatusQueued Status = iota
	StatusProcessing
	StatusClean
	StatusIssues
	StatusFixed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusProcessing:
		return "processing"
	case StatusClean:
		return "clean"
	case StatusIssues:
		return "issues"
	case StatusFixed:
		return "fixed"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Event is one status change of one file. Err is set for StatusFailed.
type Event struct {
	Path   string
	Status Status
	Err    error
}

// emit sends an event without blocking processing when nobody listens.
func emit(ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	ch <- ev
}
