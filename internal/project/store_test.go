package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/sequence"
)

func sampleSequence() *sequence.Sequence {
	seq := sequence.New(
		sequence.NewStage("stage"),
		sequence.NewSprite("A", "Cat"),
		sequence.NewSprite("B", "Dog"),
		sequence.NewSprite("C", ""),
	)
	leader := group.New("B", "Pets")
	leader.IsOpen = true
	seq.Get("B").SetGroup(leader)
	seq.Get("C").SetGroup(leader.Join(1))
	return seq
}

func TestStoreSaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "project.yaml")
	store := NewStore(path)
	assert.False(t, store.Exists())

	require.NoError(t, store.Save(sampleSequence()))
	assert.True(t, store.Exists())
	assert.Equal(t, path, store.Path())

	got, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, got.Validate())

	assert.Equal(t, []string{"stage", "A", "B", "C"}, got.IDs())
	assert.True(t, got.Get("stage").IsStage)
	assert.Nil(t, got.Get("stage").Sprite)
	assert.Equal(t, "Cat", got.Get("A").Name())
	assert.Nil(t, got.Get("A").Group())
	assert.Equal(t, &group.Descriptor{GroupID: "Bg", GroupName: "Pets", IndexInGroup: 1, IsOpen: true}, got.Get("C").Group())
}

func TestStoreLoad_NotFound(t *testing.T) {
	t.Parallel()

	_, err := NewStore(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

func TestStoreLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets: {"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse project file")
}

func TestStoreLoad_HandWritten(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "project.yaml")
	content := `targets:
  - id: stage
    stage: true
  - id: X
    group:
      group_id: Xg
      group_name: Ships
      index_in_group: 0
  - id: "Y"
    group:
      group_id: Xg
      group_name: Ships
      index_in_group: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	seq, err := NewStore(path).Load()
	require.NoError(t, err)
	require.NoError(t, seq.Validate())
	assert.Equal(t, []int{1, 2}, seq.Members("Xg"))
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := Decode(&File{Targets: []Record{{Name: "nameless"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")

	_, err = Decode(&File{Targets: []Record{{ID: "A"}, {ID: "A"}}})
	assert.ErrorIs(t, err, ErrDuplicateTarget)
}

func TestEncodeDoesNotAlias(t *testing.T) {
	t.Parallel()

	seq := sampleSequence()
	f := Encode(seq)
	f.Targets[2].Group.IndexInGroup = 7
	assert.Equal(t, 0, seq.Get("B").Group().IndexInGroup)
}

func TestAdd(t *testing.T) {
	t.Parallel()

	seq := sampleSequence()
	require.NoError(t, Add(seq, sequence.NewSprite("D", "Bird")))
	assert.Equal(t, "D", seq.At(seq.Len()-1).ID)

	err := Add(seq, sequence.NewSprite("A", ""))
	assert.ErrorIs(t, err, ErrDuplicateTarget)
}
