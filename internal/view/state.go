package view

import "context"

// Status is the lifecycle position of a view's data
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Phase is what a view renders for its current state
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseError     Phase = "error"
	PhaseEmpty     Phase = "empty"
	PhasePopulated Phase = "populated"
)

// State holds the entities a page shows and how it got them.
// Every trigger (page load, filter change, post-mutation reload) starts
// over from Begin; nothing is patched in place.
type State[T any] struct {
	Items  []T
	Status Status
	Error  string

	cause error
}

// Begin enters loading and clears any previous error
func (s *State[T]) Begin() {
	s.Status = StatusLoading
	s.Error = ""
	s.cause = nil
}

// Succeed stores items and enters success
func (s *State[T]) Succeed(items []T) {
	s.Items = items
	s.Status = StatusSuccess
	s.Error = ""
	s.cause = nil
}

// Fail clears items, records the user-facing message and enters error
func (s *State[T]) Fail(message string, cause error) {
	s.Items = nil
	s.Status = StatusError
	s.Error = message
	s.cause = cause
}

// Cause is the underlying error of the last failure, for logging only
func (s *State[T]) Cause() error { return s.cause }

// Phase reports which of loading, error, empty or populated to render
func (s *State[T]) Phase() Phase {
	switch {
	case s.Status == StatusLoading:
		return PhaseLoading
	case s.Status == StatusError:
		return PhaseError
	case len(s.Items) == 0:
		return PhaseEmpty
	default:
		return PhasePopulated
	}
}

// Load runs one loading cycle with fetch, failing with message on error.
// It returns the fetch error so callers can log it.
func (s *State[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error), message string) error {
	s.Begin()
	items, err := fetch(ctx)
	if err != nil {
		s.Fail(message, err)
		return err
	}
	s.Succeed(items)
	return nil
}

// Notice overrides the displayed error, keeping the loaded items. Pages use
// it to report a failed mutation after reloading.
func (s *State[T]) Notice(message string) {
	if message != "" {
		s.Error = message
	}
}
