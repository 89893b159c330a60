package group

// Member pairs a target id with its descriptor so the passes below can
// rewrite ranks and leadership in place.
type Member struct {
	ID   string
	Desc *Descriptor
}

// CloseGap shifts every member ranked above rank down by one. It is run after
// the member holding rank has been taken out of the group.
func CloseGap(members []Member, rank int) {
	for _, m := range members {
		if m.Desc.IndexInGroup > rank {
			m.Desc.IndexInGroup--
		}
	}
}

// OpenGap shifts every member ranked at or above rank up by one, freeing rank
// for a member about to be inserted.
func OpenGap(members []Member, rank int) {
	for _, m := range members {
		if m.Desc.IndexInGroup >= rank {
			m.Desc.IndexInGroup++
		}
	}
}

// Relead rewrites the group id of every member to the one owned by the
// member now ranked 0, and returns that id. It returns false if no member is
// ranked 0, leaving the members untouched.
func Relead(members []Member) (string, bool) {
	var leader *Member
	for i := range members {
		if members[i].Desc.IndexInGroup == 0 {
			if leader != nil {
				return "", false
			}
			leader = &members[i]
		}
	}
	if leader == nil {
		return "", false
	}

	id := IDFor(leader.ID)
	for _, m := range members {
		m.Desc.GroupID = id
	}
	return id, true
}
