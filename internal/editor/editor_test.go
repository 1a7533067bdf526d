package editor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeEditor creates a shell script that overwrites the file argument
// with fixed content, standing in for a real editor.
func writeFakeEditor(t *testing.T, content string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script fake editor not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "fake-editor")
	script := "#!/bin/sh\nprintf '%s' \"$FAKE_EDITOR_CONTENT\" > \"$1\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	t.Setenv("FAKE_EDITOR_CONTENT", content)
	return path
}

func TestNew_DefaultsToVim(t *testing.T) {
	ed := New("")
	assert.Equal(t, "vim", ed.command)
}

func TestNew_SplitsArguments(t *testing.T) {
	ed := New("code --wait")
	assert.Equal(t, "code", ed.command)
	assert.Equal(t, []string{"--wait"}, ed.args)
}

func TestExternalEditor_Edit(t *testing.T) {
	ed := New(writeFakeEditor(t, "fix: typo"))

	result, err := ed.Edit(context.Background(), "feat: original")
	require.NoError(t, err)
	assert.Equal(t, "fix: typo", result)
}

func TestExternalEditor_MissingBinaryKeepsInitial(t *testing.T) {
	ed := New("definitely-not-an-editor-xyz")

	result, err := ed.Edit(context.Background(), "feat: original")
	require.NoError(t, err)
	assert.Equal(t, "feat: original", result)
}

func TestExternalEditor_EditorFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake editor not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "failing-editor")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 1\n"), 0755))

	ed := New(path)
	_, err := ed.Edit(context.Background(), "feat: original")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor")
}
