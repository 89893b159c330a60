// Package testutil provides shared test utilities for targetorder.
//
// # Fixtures
//
// The fixtures.go file builds sequences from short id lists:
//
//   - Layers(ids...) - a sequence where StageID is the stage and every other id a sprite
//   - Group(seq, ids...) - groups ids in rank order, led by the first
//   - ScenarioGroups() - [stage X Y Z W V] with X,Y and Z,W,V grouped
//   - TakeSnapshot(seq) - a deep, comparable copy of order and descriptors
//
// # Environment Helpers
//
// The env.go file provides test environment setup:
//
//   - SetupTestDir(t) - a temp directory with a default config and an empty project
//   - WriteTestFile(t, base, path, content) - writes a file in the test dir
//
// # Assertions
//
// The assertions.go file provides custom test assertions:
//
//   - AssertValid(t, seq) - the sequence passes Validate
//   - AssertOrder(t, seq, ids...) - exact layer order
//   - AssertGroup(t, seq, groupID, ids...) - membership in rank order
//   - AssertUngrouped(t, seq, ids...) - ids carry no descriptor
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    seq := testutil.Layers(testutil.StageID, "A", "B")
//	    testutil.Group(seq, "A", "B")
//	    testutil.AssertGroup(t, seq, "Ag", "A", "B")
//	}
package testutil
