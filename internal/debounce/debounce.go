// Package debounce models deferred recomputation as a two-stage pipeline: a
// live value that follows every input and a committed value that catches up
// after a quiet period. Timing belongs to the caller; the stage only decides
// whether a delivered ticket is still the latest one.
package debounce

// Ticket identifies one Push. Only the newest ticket can commit.
type Ticket uint64

// Stage holds the live and committed values of one pipeline
type Stage[T any] struct {
	live      T
	committed T
	pending   bool
	seq       Ticket
}

// New creates a stage whose live and committed values start at initial
func New[T any](initial T) *Stage[T] {
	return &Stage[T]{live: initial, committed: initial}
}

type event int

const (
	evPush event = iota
	evCommit
	evReset
)

// step is the single transition function of the pipeline
func (s *Stage[T]) step(ev event, v T, t Ticket) bool {
	switch ev {
	case evPush:
		s.live = v
		s.seq++
		s.pending = true
		return true
	case evCommit:
		if !s.pending || t != s.seq {
			return false
		}
		s.committed = s.live
		s.pending = false
		return true
	case evReset:
		s.live, s.committed = v, v
		s.seq++
		s.pending = false
		return true
	}
	return false
}

// Push records a new live value and supersedes every outstanding ticket
func (s *Stage[T]) Push(v T) Ticket {
	s.step(evPush, v, 0)
	return s.seq
}

// Commit promotes the live value when t is the latest ticket. It returns the
// committed value and whether it changed.
func (s *Stage[T]) Commit(t Ticket) (T, bool) {
	var zero T
	ok := s.step(evCommit, zero, t)
	return s.committed, ok
}

// Flush commits immediately, whatever ticket is outstanding
func (s *Stage[T]) Flush() (T, bool) {
	return s.Commit(s.seq)
}

// Reset sets both stages to v and drops any pending commit
func (s *Stage[T]) Reset(v T) {
	s.step(evReset, v, 0)
}

// Pending reports whether the live value is ahead of the committed one
func (s *Stage[T]) Pending() bool { return s.pending }

// Live returns the latest pushed value
func (s *Stage[T]) Live() T { return s.live }

// Committed returns the value downstream consumers should use
func (s *Stage[T]) Committed() T { return s.committed }
