package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestStore_EnsureIdempotent(t *testing.T) {
	s := NewStore()

	first := s.Ensure("r1")
	require.NotNil(t, first)
	assert.Equal(t, "", first.AdminID)
	assert.Equal(t, State{}, first.State)

	// Repeat joins must not reset an existing room.
	s.ClaimAdmin("r1", "admin1")
	s.ApplyPlay("r1", 42, strptr("/uploads/x.mp3"))
	again := s.Ensure("r1")
	assert.Same(t, first, again)
	assert.Equal(t, "admin1", again.AdminID)
	assert.Equal(t, 1, s.RoomCount())
}

func TestStore_ClaimAdminLastWriterWins(t *testing.T) {
	s := NewStore()
	s.Ensure("r1")

	s.ClaimAdmin("r1", "a1")
	s.ClaimAdmin("r1", "a2")

	adminID, ok := s.AdminID("r1")
	require.True(t, ok)
	assert.Equal(t, "a2", adminID)
}

func TestStore_ClearAdminIfMatches(t *testing.T) {
	tests := []struct {
		name      string
		clearID   string
		wantAdmin string
	}{
		{name: "current admin clears slot", clearID: "a2", wantAdmin: ""},
		{name: "superseded admin is a no-op", clearID: "a1", wantAdmin: "a2"},
		{name: "non-admin is a no-op", clearID: "member", wantAdmin: "a2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Ensure("r1")
			s.ClaimAdmin("r1", "a1")
			s.ClaimAdmin("r1", "a2")

			s.ClearAdminIfMatches("r1", tt.clearID)

			adminID, ok := s.AdminID("r1")
			require.True(t, ok)
			assert.Equal(t, tt.wantAdmin, adminID)
		})
	}
}

func TestStore_ApplyTransitions(t *testing.T) {
	s := NewStore()
	s.Ensure("r1")

	s.ApplyPlay("r1", 5, strptr("/uploads/a.mp3"))
	state, ok := s.GetState("r1")
	require.True(t, ok)
	assert.True(t, state.Playing)
	assert.Equal(t, 5.0, state.CurrentTime)
	require.NotNil(t, state.Track)
	assert.Equal(t, "/uploads/a.mp3", *state.Track)

	s.ApplyPause("r1", 7.5)
	state, _ = s.GetState("r1")
	assert.False(t, state.Playing)
	assert.Equal(t, 7.5, state.CurrentTime)
	assert.Equal(t, "/uploads/a.mp3", *state.Track)

	// Seek moves the playhead only.
	s.ApplyPlay("r1", 8, strptr("/uploads/a.mp3"))
	s.ApplySeek("r1", 60)
	state, _ = s.GetState("r1")
	assert.True(t, state.Playing)
	assert.Equal(t, 60.0, state.CurrentTime)
}

func TestStore_AbsentRoomIsNoOp(t *testing.T) {
	s := NewStore()

	s.ClaimAdmin("ghost", "a1")
	s.ClearAdminIfMatches("ghost", "a1")
	s.ApplyPlay("ghost", 1, strptr("x"))
	s.ApplyPause("ghost", 1)
	s.ApplySeek("ghost", 1)

	_, ok := s.GetState("ghost")
	assert.False(t, ok)
	_, ok = s.AdminID("ghost")
	assert.False(t, ok)
	assert.Equal(t, 0, s.RoomCount())
}
