package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/sequence"
)

// AssertValid asserts that seq passes every consistency check.
func AssertValid(t *testing.T, seq *sequence.Sequence) {
	t.Helper()
	require.NoError(t, seq.Validate(), "sequence %v", seq.IDs())
}

// AssertOrder asserts the exact layer order of seq.
func AssertOrder(t *testing.T, seq *sequence.Sequence, ids ...string) {
	t.Helper()
	assert.Equal(t, ids, seq.IDs(), "layer order mismatch")
}

// AssertGroup asserts that groupID holds exactly ids, in rank order.
func AssertGroup(t *testing.T, seq *sequence.Sequence, groupID string, ids ...string) {
	t.Helper()

	members := seq.GroupMembers(groupID)
	got := make([]string, len(members))
	for i, m := range members {
		got[i] = m.ID
		assert.Equal(t, i, m.Desc.IndexInGroup, "rank of %q in %q", m.ID, groupID)
	}
	assert.Equal(t, ids, got, "members of %q", groupID)
	if len(members) > 0 {
		assert.Equal(t, group.IDFor(members[0].ID), groupID, "leader of %q", groupID)
	}
}

// AssertUngrouped asserts that none of ids carries a descriptor.
func AssertUngrouped(t *testing.T, seq *sequence.Sequence, ids ...string) {
	t.Helper()
	for _, id := range ids {
		tgt := seq.Get(id)
		require.NotNil(t, tgt, "target %q missing", id)
		assert.Nil(t, tgt.Group(), "target %q should be ungrouped", id)
	}
}
