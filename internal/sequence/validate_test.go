package sequence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/targetorder/internal/group"
)

func TestValidateValid(t *testing.T) {
	t.Parallel()

	s := sample()
	require.NoError(t, s.Validate())

	groupOf(s, "A", "B")
	groupOf(s, "C")
	require.NoError(t, s.Validate())
}

func TestValidateUngroupedClones(t *testing.T) {
	t.Parallel()

	a := NewSprite("A", "cat")
	clone := &Target{ID: "A2", Sprite: a.Sprite}
	s := New(NewStage("stage"), a, clone, NewSprite("B", ""))
	require.NoError(t, s.Validate())
	assert.True(t, s.SharesSprite("A"))
	assert.True(t, s.SharesSprite("A2"))
	assert.False(t, s.SharesSprite("B"))
	assert.False(t, s.SharesSprite("stage"))

	c := s.Clone()
	assert.Same(t, c.Get("A").Sprite, c.Get("A2").Sprite, "clone keeps sharing")
	require.NoError(t, c.Validate())
}

func TestValidateViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func() *Sequence
		rule  string
	}{
		{
			name: "duplicate id",
			setup: func() *Sequence {
				return New(NewSprite("A", ""), NewSprite("A", ""))
			},
			rule: "unique-id",
		},
		{
			name: "empty id",
			setup: func() *Sequence {
				return New(NewSprite("", ""))
			},
			rule: "target",
		},
		{
			name: "placeholder left",
			setup: func() *Sequence {
				s := sample()
				_ = s.InsertAt(1, NewPlaceholder(0))
				return s
			},
			rule: "placeholder",
		},
		{
			name: "stage with sprite",
			setup: func() *Sequence {
				st := NewStage("stage")
				st.Sprite = &Sprite{}
				return New(st)
			},
			rule: "stage",
		},
		{
			name: "sprite without sprite record",
			setup: func() *Sequence {
				return New(&Target{ID: "A"})
			},
			rule: "sprite",
		},
		{
			name: "shared grouped sprite",
			setup: func() *Sequence {
				a := NewSprite("A", "")
				a.SetGroup(group.New("A", "g"))
				return New(a, &Target{ID: "B", Sprite: a.Sprite})
			},
			rule: "sprite",
		},
		{
			name: "duplicate rank",
			setup: func() *Sequence {
				s := sample()
				groupOf(s, "A", "B", "C")
				s.Get("C").Group().IndexInGroup = 1
				return s
			},
			rule: "rank",
		},
		{
			name: "rank gap",
			setup: func() *Sequence {
				s := sample()
				groupOf(s, "A", "B")
				s.Get("B").Group().IndexInGroup = 2
				return s
			},
			rule: "rank",
		},
		{
			name: "stale leader id",
			setup: func() *Sequence {
				s := sample()
				groupOf(s, "A", "B")
				s.Get("A").Group().IndexInGroup = 1
				s.Get("B").Group().IndexInGroup = 0
				return s
			},
			rule: "leader",
		},
		{
			name: "split run",
			setup: func() *Sequence {
				s := sample()
				groupOf(s, "A", "C")
				return s
			},
			rule: "contiguity",
		},
		{
			name: "run out of rank order",
			setup: func() *Sequence {
				s := sample()
				groupOf(s, "A", "B", "C")
				_ = s.Swap(2, 3)
				return s
			},
			rule: "contiguity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.setup().Validate()
			require.Error(t, err)
			assert.True(t, IsInvariantError(err))

			var ie InvariantError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.rule, ie.Rule)
		})
	}
}

func TestInvariantErrorMessage(t *testing.T) {
	t.Parallel()

	err := InvariantError{Rule: "rank", Message: "bad"}
	assert.Equal(t, "invariant violation: rank: bad", err.Error())
	assert.False(t, IsInvariantError(errors.New("other")))
}
