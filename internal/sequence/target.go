package sequence

import (
	"fmt"
	"strings"

	"github.com/thruflo/targetorder/internal/group"
)

// placeholderPrefix marks padding targets. The NUL byte keeps them from
// colliding with ids handed out by the runtime.
const placeholderPrefix = "\x00placeholder-"

// Sprite is the entity that owns a target's grouping metadata.
type Sprite struct {
	Name  string
	Group *group.Descriptor
}

// Target is one entry of the layer order: a sprite or the stage.
type Target struct {
	ID      string
	IsStage bool
	Sprite  *Sprite
}

// NewStage returns the stage target.
func NewStage(id string) *Target {
	return &Target{ID: id, IsStage: true}
}

// NewSprite returns an ungrouped sprite target.
func NewSprite(id, name string) *Target {
	return &Target{ID: id, Sprite: &Sprite{Name: name}}
}

// NewPlaceholder returns a padding target used while two runs of different
// lengths are interleaved. n distinguishes placeholders within one sequence.
func NewPlaceholder(n int) *Target {
	return &Target{ID: fmt.Sprintf("%s%d", placeholderPrefix, n)}
}

// IsPlaceholder reports whether t is a padding target.
func (t *Target) IsPlaceholder() bool {
	return strings.HasPrefix(t.ID, placeholderPrefix)
}

// Name returns the sprite's display name, or the id when there is none.
func (t *Target) Name() string {
	if t.Sprite == nil || t.Sprite.Name == "" {
		return t.ID
	}
	return t.Sprite.Name
}

// Group returns the target's descriptor, or nil for the stage and
// ungrouped sprites.
func (t *Target) Group() *group.Descriptor {
	if t.Sprite == nil {
		return nil
	}
	return t.Sprite.Group
}

// SetGroup replaces the target's descriptor. It is a no-op for targets
// without a sprite.
func (t *Target) SetGroup(d *group.Descriptor) {
	if t.Sprite == nil {
		return
	}
	t.Sprite.Group = d
}

// Member returns t as a member for the renumbering passes.
func (t *Target) Member() group.Member {
	return group.Member{ID: t.ID, Desc: t.Group()}
}
