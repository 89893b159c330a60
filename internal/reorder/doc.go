// Package reorder mutates the layer order of a project's targets and the
// grouping metadata of its sprites.
//
// Every exported operation runs as one synchronous transaction:
//
//  1. the live targets are cloned into a private working sequence
//  2. the operation validates its endpoints and transforms the working copy
//  3. the working copy is checked against the sequence invariants
//  4. the result is committed to the Runtime (order and descriptors)
//  5. the commit observer, if any, receives the Commit, then the Notifier
//     fires once
//
// A failure at any step before 4 discards the working copy, leaving the
// runtime as it was. Intermediate states, such as placeholder padding during
// MergeGroups or the transiently duplicated ranks of a renumbering pass, only
// ever exist in the working copy.
//
// The four primitives are MoveUngrouped, SwapPositions, JoinGroup and
// MergeGroups. CreateGroup, LeaveGroup, DissolveGroup, MoveGroupToEdge and
// the descriptor setters are built from the same passes, and Drop picks the
// right primitive for a drag-and-drop gesture.
package reorder
