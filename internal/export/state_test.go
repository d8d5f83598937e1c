package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "Disconnected", StateDisconnected.String())
	assert.Equal(t, "Merging", StateMerging.String())
	assert.Equal(t, "Failed", StateFailed.String())
	assert.Equal(t, "State(42)", State(42).String())
}

func TestState_Transitions(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StateDisconnected, StateConnected, true},
		{StateDisconnected, StateProbing, false},
		{StateConnected, StateProbing, true},
		{StateProbing, StateFetching, true},
		{StateFetching, StateProbing, true},
		{StateFetching, StateWriting, false},
		{StateMerging, StateWriting, true},
		{StateWriting, StateClosed, true},
		{StateWriting, StateFailed, true},
		{StateDisconnected, StateFailed, true},
		{StateClosed, StateFailed, false},
		{StateFailed, StateClosed, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, canTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestState_Terminal(t *testing.T) {
	assert.True(t, StateClosed.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateWriting.Terminal())
}
