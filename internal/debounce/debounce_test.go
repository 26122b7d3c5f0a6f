package debounce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_OnlyLatestTicketCommits(t *testing.T) {
	s := New("")
	t1 := s.Push("a")
	t2 := s.Push("ab")
	t3 := s.Push("abc")

	assert.Equal(t, "abc", s.Live())
	assert.Equal(t, "", s.Committed())
	assert.True(t, s.Pending())

	for _, stale := range []Ticket{t1, t2} {
		v, ok := s.Commit(stale)
		assert.False(t, ok)
		assert.Equal(t, "", v)
	}

	v, ok := s.Commit(t3)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	assert.False(t, s.Pending())

	_, ok = s.Commit(t3)
	assert.False(t, ok, "a ticket commits once")
}

func TestStage_Flush(t *testing.T) {
	s := New(0)
	_, ok := s.Flush()
	assert.False(t, ok)

	s.Push(7)
	v, ok := s.Flush()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestStage_ResetInvalidatesTickets(t *testing.T) {
	s := New([]byte("old"))
	ticket := s.Push([]byte("typing"))
	s.Reset([]byte("replaced"))

	_, ok := s.Commit(ticket)
	assert.False(t, ok)
	assert.Equal(t, "replaced", string(s.Committed()))
	assert.Equal(t, "replaced", string(s.Live()))
}
