package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DefaultConfigYAML is the config SetupTestDir writes.
const DefaultConfigYAML = `groups:
  name_format: "Group %d"
log:
  level: error
project:
  file: project.yaml
history:
  file: .targetorder/history.jsonl
`

// EmptyProjectYAML is a project holding only the stage.
const EmptyProjectYAML = `targets:
  - id: stage
    stage: true
`

// SetupTestDir creates a temporary directory with a .targetorder config and
// an empty project.yaml. It returns the directory path. The directory is
// removed when the test completes.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	WriteTestFile(t, tmpDir, filepath.Join(".targetorder", "config.yaml"), DefaultConfigYAML)
	WriteTestFile(t, tmpDir, "project.yaml", EmptyProjectYAML)
	return tmpDir
}

// WriteTestFile writes content to path under base, creating parent
// directories.
func WriteTestFile(t *testing.T, base, path, content string) {
	t.Helper()

	full := filepath.Join(base, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}
