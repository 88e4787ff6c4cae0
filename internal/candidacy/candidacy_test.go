package candidacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	t.Run("legal transitions", func(t *testing.T) {
		cases := []struct {
			from  State
			event Event
			want  State
		}{
			{StateApplied, EventInterview, StateInterviewed},
			{StateInterviewed, EventApprove, StateApproved},
			{StateInterviewed, EventReject, StateRejected},
		}
		for _, tc := range cases {
			got, ok := Advance(tc.from, tc.event)
			assert.True(t, ok, "%s + %s", tc.from, tc.event)
			assert.Equal(t, tc.want, got)
		}
	})

	t.Run("everything else is a no-op", func(t *testing.T) {
		states := []State{StateApplied, StateInterviewed, StateRejected, StateApproved}
		events := []Event{EventInterview, EventApprove, EventReject}
		legal := map[State]map[Event]bool{
			StateApplied:     {EventInterview: true},
			StateInterviewed: {EventApprove: true, EventReject: true},
		}
		for _, from := range states {
			for _, event := range events {
				if legal[from][event] {
					continue
				}
				got, ok := Advance(from, event)
				assert.False(t, ok, "%s + %s should not apply", from, event)
				assert.Equal(t, from, got, "%s + %s must leave state unchanged", from, event)
			}
		}
	})

	t.Run("no path skips interviewed", func(t *testing.T) {
		_, ok := Advance(StateApplied, EventApprove)
		assert.False(t, ok)
		_, ok = Advance(StateApplied, EventReject)
		assert.False(t, ok)
	})
}

func TestTerminal(t *testing.T) {
	assert.False(t, StateApplied.Terminal())
	assert.False(t, StateInterviewed.Terminal())
	assert.True(t, StateRejected.Terminal())
	assert.True(t, StateApproved.Terminal())
}

func TestParseState(t *testing.T) {
	for _, s := range []State{StateApplied, StateInterviewed, StateRejected, StateApproved} {
		got, err := ParseState(uint8(s))
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseState(7)
	assert.Error(t, err)
}
