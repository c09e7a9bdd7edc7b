package shell_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-uvtool/pkg/shell"
)

const panelForm = "../../assets/panel.yaml"

func TestLoadForm(t *testing.T) {
	t.Parallel()

	form, err := shell.LoadForm(panelForm)
	require.NoError(t, err)
	assert.Equal(t, "Remesh and UV Tool", form.Title)
	assert.Len(t, form.Widgets, 12)

	w, ok := form.Widget(shell.FixAssetPush)
	require.True(t, ok)
	assert.Equal(t, shell.Button, w.Kind)

	_, ok = form.Widget("nope")
	assert.False(t, ok)
}

func TestLoadFormErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := shell.LoadForm(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, shell.ErrResourceMissing)

	_, err = shell.LoadForm(dir)
	assert.ErrorIs(t, err, shell.ErrResourceUnreadable)

	malformed := filepath.Join(dir, "malformed.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("widgets: ["), 0o600))
	_, err = shell.LoadForm(malformed)
	assert.ErrorIs(t, err, shell.ErrResourceUnreadable)
}

func TestParseFormChecksWidgets(t *testing.T) {
	t.Parallel()

	valid, err := os.ReadFile(panelForm)
	require.NoError(t, err)

	withoutClear := strings.Replace(string(valid), "id: clearButton", "id: somethingElse", 1)
	_, err = shell.ParseForm([]byte(withoutClear))
	assert.ErrorIs(t, err, shell.ErrResourceUnreadable)
	assert.Contains(t, err.Error(), "clearButton")

	wrongKind := strings.Replace(string(valid), "  - id: clearButton\n    kind: button", "  - id: clearButton\n    kind: label", 1)
	_, err = shell.ParseForm([]byte(wrongKind))
	assert.ErrorIs(t, err, shell.ErrResourceUnreadable)

	duplicate := string(valid) + "  - id: clearButton\n    kind: button\n"
	_, err = shell.ParseForm([]byte(duplicate))
	assert.ErrorIs(t, err, shell.ErrResourceUnreadable)

	untitled := strings.Replace(string(valid), "title: Remesh and UV Tool\n", "", 1)
	form, err := shell.ParseForm([]byte(untitled))
	require.NoError(t, err)
	assert.Equal(t, "Remesh and UV Tool", form.Title)
}
