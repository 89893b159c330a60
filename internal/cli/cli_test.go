package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/targetorder/internal/config"
	"github.com/thruflo/targetorder/internal/project"
	"github.com/thruflo/targetorder/internal/reorder"
	"github.com/thruflo/targetorder/internal/sequence"
	"github.com/thruflo/targetorder/internal/testutil"
)

// runCLI executes a fresh command tree against dir and returns stdout.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	require.NoError(t, err, "targetorder %v", args)
	return out
}

func loadProject(t *testing.T, dir string) *sequence.Sequence {
	t.Helper()
	seq, err := project.NewStore(filepath.Join(dir, "project.yaml")).Load()
	require.NoError(t, err)
	return seq
}

// setupLayers returns a test dir whose project holds the stage followed by
// ungrouped sprites ids.
func setupLayers(t *testing.T, ids ...string) string {
	t.Helper()
	dir := testutil.SetupTestDir(t)
	for _, id := range ids {
		mustRun(t, dir, "add", id)
	}
	return dir
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "init")
	assert.Contains(t, out, "config.yaml")
	assert.Contains(t, out, "project.yaml")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), *cfg)

	seq := loadProject(t, dir)
	testutil.AssertOrder(t, seq, "stage")
	assert.True(t, seq.Get("stage").IsStage)

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := runCLI(t, dir, "init")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force overwrites", func(t *testing.T) {
		mustRun(t, dir, "add", "A")
		mustRun(t, dir, "init", "--force", "--stage-id", "backdrop")
		testutil.AssertOrder(t, loadProject(t, dir), "backdrop")
	})
}

func TestAddCommand(t *testing.T) {
	dir := testutil.SetupTestDir(t)

	out := mustRun(t, dir, "add", "A", "--name", "Cat")
	assert.Equal(t, "Added A at position 1\n", out)

	seq := loadProject(t, dir)
	testutil.AssertOrder(t, seq, "stage", "A")
	assert.Equal(t, "Cat", seq.Get("A").Name())

	_, err := runCLI(t, dir, "add", "A")
	require.ErrorIs(t, err, project.ErrDuplicateTarget)
}

func TestCommandsNeedProject(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

func TestGroupWorkflow(t *testing.T) {
	dir := setupLayers(t, "A", "B", "C", "D")

	out := mustRun(t, dir, "group", "create", "A")
	assert.Equal(t, "Created group Ag (Group 1)\n", out)
	mustRun(t, dir, "group", "join", "B", "A")
	mustRun(t, dir, "group", "create", "C")
	mustRun(t, dir, "group", "join", "D", "C")

	seq := loadProject(t, dir)
	testutil.AssertOrder(t, seq, "stage", "A", "B", "C", "D")
	testutil.AssertGroup(t, seq, "Ag", "A", "B")
	testutil.AssertGroup(t, seq, "Cg", "C", "D")
	assert.Equal(t, "Group 2", seq.Get("C").Group().GroupName)

	t.Run("edge", func(t *testing.T) {
		mustRun(t, dir, "group", "edge", "Cg", "start")
		seq := loadProject(t, dir)
		testutil.AssertOrder(t, seq, "stage", "C", "D", "A", "B")
		testutil.AssertValid(t, seq)
	})

	t.Run("rename and flags", func(t *testing.T) {
		mustRun(t, dir, "group", "rename", "Ag", "Heroes")
		mustRun(t, dir, "group", "open", "Ag")
		mustRun(t, dir, "group", "edit", "Ag")

		d := loadProject(t, dir).Get("B").Group()
		assert.Equal(t, "Heroes", d.GroupName)
		assert.True(t, d.IsOpen)
		assert.True(t, d.IsEdit)

		mustRun(t, dir, "group", "close", "Ag")
		mustRun(t, dir, "group", "edit", "Ag", "--off")
		d = loadProject(t, dir).Get("A").Group()
		assert.False(t, d.IsOpen)
		assert.False(t, d.IsEdit)
	})

	t.Run("leave", func(t *testing.T) {
		mustRun(t, dir, "group", "leave", "A")
		seq := loadProject(t, dir)
		testutil.AssertOrder(t, seq, "stage", "C", "D", "B", "A")
		testutil.AssertGroup(t, seq, "Bg", "B")
		testutil.AssertUngrouped(t, seq, "A")
	})

	t.Run("dissolve", func(t *testing.T) {
		mustRun(t, dir, "group", "dissolve", "Cg")
		seq := loadProject(t, dir)
		testutil.AssertUngrouped(t, seq, "C", "D")
		testutil.AssertValid(t, seq)
	})
}

func TestMoveAndSwapCommands(t *testing.T) {
	dir := setupLayers(t, "A", "B", "C")

	mustRun(t, dir, "move", "C", "1")
	testutil.AssertOrder(t, loadProject(t, dir), "stage", "C", "A", "B")

	mustRun(t, dir, "swap", "C", "B")
	testutil.AssertOrder(t, loadProject(t, dir), "stage", "B", "A", "C")

	_, err := runCLI(t, dir, "move", "C", "one")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")

	_, err = runCLI(t, dir, "move", "C", "9")
	require.ErrorIs(t, err, sequence.ErrOutOfRange)
}

func TestDropCommand(t *testing.T) {
	dir := setupLayers(t, "A", "B", "C")

	mustRun(t, dir, "drop", "C", "A")
	testutil.AssertOrder(t, loadProject(t, dir), "stage", "C", "A", "B")

	mustRun(t, dir, "drop", "B", "C", "--into")
	seq := loadProject(t, dir)
	testutil.AssertOrder(t, seq, "stage", "C", "B", "A")
	testutil.AssertGroup(t, seq, "Cg", "C", "B")

	mustRun(t, dir, "drop", "A", "Cg", "--group")
	seq = loadProject(t, dir)
	testutil.AssertOrder(t, seq, "stage", "A", "C", "B")
	testutil.AssertGroup(t, seq, "Cg", "C", "B")
}

func TestRejectedOperationLeavesFileUntouched(t *testing.T) {
	dir := setupLayers(t, "A", "B", "C")
	mustRun(t, dir, "group", "create", "A")
	mustRun(t, dir, "group", "join", "B", "A")

	path := filepath.Join(dir, "project.yaml")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = runCLI(t, dir, "move", "C", "2")
	require.ErrorIs(t, err, reorder.ErrInvalidMove)

	_, err = runCLI(t, dir, "group", "create", "B")
	require.Error(t, err)

	mustRun(t, dir, "show")
	mustRun(t, dir, "check")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestUnknownRefSuggestsClosest(t *testing.T) {
	dir := setupLayers(t, "Cat", "Dog")

	_, err := runCLI(t, dir, "swap", "Cta", "Dog")
	require.ErrorIs(t, err, sequence.ErrNotFound)
	assert.Contains(t, err.Error(), `did you mean "Cat"?`)

	_, err = runCLI(t, dir, "swap", "Zebra", "Dog")
	require.ErrorIs(t, err, sequence.ErrNotFound)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestShowCommand(t *testing.T) {
	dir := setupLayers(t, "A", "B")
	mustRun(t, dir, "group", "create", "A")
	mustRun(t, dir, "group", "join", "B", "A")

	out := mustRun(t, dir, "show")
	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 5)
	assert.Contains(t, string(lines[0]), "POS")
	assert.Contains(t, string(lines[0]), "GROUP NAME")
	assert.Contains(t, string(lines[2]), "(stage)")
	assert.Contains(t, string(lines[3]), "Ag")
	assert.Contains(t, string(lines[3]), "Group 1")
	assert.Contains(t, string(lines[4]), "  B")
}

func TestCheckCommand(t *testing.T) {
	dir := setupLayers(t, "A", "B")
	mustRun(t, dir, "group", "create", "B")

	out := mustRun(t, dir, "check")
	assert.Equal(t, "OK: 3 targets, 1 groups\n", out)

	testutil.WriteTestFile(t, dir, "project.yaml", `targets:
  - id: stage
    stage: true
  - id: A
    group:
      group_id: Ag
      group_name: broken
      index_in_group: 1
`)
	_, err := runCLI(t, dir, "check")
	require.Error(t, err)
	assert.True(t, sequence.IsInvariantError(err))
}

func TestLogLevelFlag(t *testing.T) {
	dir := setupLayers(t, "A")

	_, err := runCLI(t, dir, "show", "--log-level", "loud")
	require.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	dir := setupLayers(t, "A", "B")

	assert.Equal(t, "No history.\n", mustRun(t, dir, "history"))

	mustRun(t, dir, "group", "create", "A")
	mustRun(t, dir, "swap", "A", "B")
	_, err := runCLI(t, dir, "swap", "A", "A")
	require.Error(t, err)
	mustRun(t, dir, "show")

	out := mustRun(t, dir, "history")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "create-group")
	assert.Contains(t, lines[1], "swap")
	assert.True(t, strings.HasSuffix(lines[1], "A B"))

	out = mustRun(t, dir, "history", "-n", "1")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "swap")
}

func TestHistoryDisabled(t *testing.T) {
	dir := setupLayers(t, "A", "B")
	testutil.WriteTestFile(t, dir, filepath.Join(".targetorder", "config.yaml"), "history:\n  file: \"\"\n")

	mustRun(t, dir, "swap", "A", "B")
	_, err := os.Stat(filepath.Join(dir, ".targetorder", "history.jsonl"))
	assert.True(t, os.IsNotExist(err))

	_, err = runCLI(t, dir, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestPrintLayersWidth(t *testing.T) {
	seq := testutil.Layers(testutil.StageID, "A")
	testutil.Group(seq, "A")

	var buf bytes.Buffer
	printLayers(&buf, seq, 12)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len(line), 12)
	}

	buf.Reset()
	printLayers(&buf, seq, 0)
	assert.Contains(t, buf.String(), testutil.SampleGroupName)
	assert.Equal(t, 0, terminalWidth(&buf))

	buf.Reset()
	printLayers(&buf, sequence.New(), 0)
	assert.Equal(t, "No targets.\n", buf.String())
}

func TestPrintLayersNonASCII(t *testing.T) {
	seq := sequence.New(sequence.NewStage("stage"), sequence.NewSprite("A", "Kätzchen"), sequence.NewSprite("B", "猫猫猫猫"))

	var buf bytes.Buffer
	printLayers(&buf, seq, 0)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	// Columns after NAME line up when widths count runes.
	idx := strings.Index(lines[0], "GROUP")
	for _, line := range lines[3:] {
		assert.Equal(t, idx, utf8.RuneCountInString(line[:strings.Index(line, "-")]), line)
	}

	for width := 1; width <= 20; width++ {
		buf.Reset()
		printLayers(&buf, seq, width)
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			assert.True(t, utf8.ValidString(line), "width %d: %q", width, line)
			assert.LessOrEqual(t, utf8.RuneCountInString(line), width)
		}
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Kä", truncate("Kätzchen", 2))
	assert.Equal(t, "猫", truncate("猫猫", 1))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "abc", truncate("abc", 0))
}
