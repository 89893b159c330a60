// Package group models the optional grouping metadata carried by a sprite
// and the renumbering passes used when members enter or leave a group.
//
// A group is identified by its leader: the member ranked 0 owns the group,
// and the group id is always the leader's target id followed by "g".
package group

import (
	"errors"
	"strings"
)

// idSuffix is appended to the leader's id to form the group id.
const idSuffix = "g"

// ErrAlreadyGrouped is returned when a group is created for a sprite that
// already carries a descriptor.
var ErrAlreadyGrouped = errors.New("sprite is already grouped")

// Descriptor is the per-sprite grouping record.
type Descriptor struct {
	GroupID      string `yaml:"group_id"`
	GroupName    string `yaml:"group_name"`
	IndexInGroup int    `yaml:"index_in_group"`
	IsOpen       bool   `yaml:"is_open,omitempty"`
	IsEdit       bool   `yaml:"is_edit,omitempty"`
}

// IDFor returns the group id owned by the given leader.
func IDFor(leaderID string) string {
	return leaderID + idSuffix
}

// LeaderID returns the leader id encoded in a group id.
func LeaderID(groupID string) (string, bool) {
	if !strings.HasSuffix(groupID, idSuffix) || len(groupID) == len(idSuffix) {
		return "", false
	}
	return strings.TrimSuffix(groupID, idSuffix), true
}

// New returns a descriptor making leaderID the sole leader of a new group.
func New(leaderID, name string) *Descriptor {
	return &Descriptor{
		GroupID:      IDFor(leaderID),
		GroupName:    name,
		IndexInGroup: 0,
	}
}

// Join returns a member descriptor for the group described by d, at the
// given rank. The name and UI flags are shared with d.
func (d *Descriptor) Join(rank int) *Descriptor {
	return &Descriptor{
		GroupID:      d.GroupID,
		GroupName:    d.GroupName,
		IndexInGroup: rank,
		IsOpen:       d.IsOpen,
		IsEdit:       d.IsEdit,
	}
}

// Clone returns a copy of d. A nil descriptor clones to nil.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// IsGrouped reports whether d is present and names a group.
func IsGrouped(d *Descriptor) bool {
	return d != nil && d.GroupID != ""
}

// SameGroup reports whether a and b are both grouped under the same id.
func SameGroup(a, b *Descriptor) bool {
	return IsGrouped(a) && IsGrouped(b) && a.GroupID == b.GroupID
}

// IsLeader reports whether d is the leader of its group.
func IsLeader(d *Descriptor) bool {
	return IsGrouped(d) && d.IndexInGroup == 0
}
