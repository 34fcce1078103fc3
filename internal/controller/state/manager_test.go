package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_BeginIssuesNewDraft(t *testing.T) {
	sm := NewManager()

	first := sm.Begin(1, StateAddName)
	require.NotEmpty(t, first)
	sm.SetData(1, KeyName, "Algorithms")

	second := sm.Begin(1, StateAddName)
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, sm.Draft(1))
	assert.Empty(t, sm.GetString(1, KeyName), "begin must drop old dialog data")
}

func TestManager_IsCurrent(t *testing.T) {
	sm := NewManager()
	draft := sm.Begin(1, StateAddDay)

	assert.True(t, sm.IsCurrent(1, draft, StateAddDay))
	assert.False(t, sm.IsCurrent(1, draft, StateAddStart))
	assert.False(t, sm.IsCurrent(1, "stale", StateAddDay))
	assert.False(t, sm.IsCurrent(2, draft, StateAddDay))
	assert.False(t, sm.IsCurrent(1, "", StateAddDay))
}

func TestManager_StateLifecycle(t *testing.T) {
	sm := NewManager()
	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateAddClassroom)
	assert.Equal(t, StateAddClassroom, sm.GetState(1))

	sm.SetData(1, KeyClassroom, "B-2")
	assert.Equal(t, "B-2", sm.GetString(1, KeyClassroom))

	sm.SetState(1, StateNone)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.GetData(1, KeyClassroom)
	assert.False(t, ok)

	sm.Begin(1, StateAddName)
	sm.ClearState(1)
	assert.Empty(t, sm.Draft(1))
}

func TestManager_GetStringWrongType(t *testing.T) {
	sm := NewManager()
	sm.SetData(1, KeyDay, 3)
	assert.Empty(t, sm.GetString(1, KeyDay))
}
