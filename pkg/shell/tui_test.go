package shell_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-uvtool/pkg/shell"
)

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) tea.Model {
	t.Helper()

	for _, key := range keys {
		m, _ = m.Update(key)
	}

	return m
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func focus(t *testing.T, m tea.Model, id string) tea.Model {
	t.Helper()

	for range 20 {
		if m.(shell.Model).Focused() == id {
			return m
		}

		m = press(t, m, tab)
	}

	require.Failf(t, "widget not reachable", "%s", id)

	return m
}

func TestModelRunFlow(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	p := newPanel(t, runner)

	var m tea.Model = shell.NewModel(p)
	assert.Equal(t, shell.ImportBrowse, m.(shell.Model).Focused())
	assert.Contains(t, m.View(), "Remesh and UV Tool")

	m = focus(t, m, shell.FixAssetPush)
	m = press(t, m, enter)
	assert.Contains(t, m.View(), "Not available yet")

	m = focus(t, m, shell.ImportBrowse)
	m = press(t, m, enter, typed("/models/Crate01.fbx"), enter)
	assert.Equal(t, "Crate01.fbx", p.Label(shell.ImportFileLabel))
	assert.Contains(t, m.View(), "Crate01.fbx")

	m = focus(t, m, shell.RemeshCheck)
	m = press(t, m, enter)
	assert.True(t, p.Checked(shell.RemeshCheck))
	assert.Contains(t, m.View(), "[x] Reduce to 1000 polygons")

	m = focus(t, m, shell.FixAssetPush)
	m = press(t, m, enter)
	require.Len(t, runner.requests, 1)
	assert.True(t, runner.requests[0].ApplyReduction)
	assert.Equal(t, "/models", runner.requests[0].ExportPath)
	assert.Contains(t, m.View(), "Successfully processed in 1.23 seconds")

	m = focus(t, m, shell.UVShellCheck)
	m = press(t, m, enter)
	assert.Equal(t, []bool{true}, runner.overlay)

	m = focus(t, m, shell.ClearButton)
	m = press(t, m, enter)
	assert.Equal(t, 1, runner.clears)
	assert.Contains(t, m.View(), "Cleared")
}

func TestModelBrowseCancelAndModal(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: assert.AnError}
	p := newPanel(t, runner)

	var m tea.Model = shell.NewModel(p)
	m = press(t, m, enter, typed("/models/Crate01.fbx"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, p.Label(shell.ImportFileLabel), "esc cancels the dialog")

	m = press(t, m, enter, typed("/models/Crate01.fbx"), enter)
	m = focus(t, m, shell.FixAssetPush)
	m = press(t, m, enter)
	assert.Contains(t, p.Message(), "Run failed")
	assert.Contains(t, m.View(), "Run failed")

	m = press(t, m, typed("x"))
	assert.Empty(t, p.Message(), "any key dismisses the message")

	_, cmd := m.Update(typed("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
