package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

// Styles for the terminal panel.
type Styles struct {
	Title    lipgloss.Style
	Focused  lipgloss.Style
	Normal   lipgloss.Style
	Disabled lipgloss.Style
	Label    lipgloss.Style
	Status   lipgloss.Style
	Modal    lipgloss.Style
}

// DefaultStyles returns the default panel styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Focused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Normal:   lipgloss.NewStyle(),
		Disabled: lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Status:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11")),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 2),
	}
}

// Model is the bubbletea model of the panel. A text input stands in for the file dialogs.
type Model struct {
	panel *Panel

	// controls are the indices of the non label widgets of the form.
	controls []int
	focus    int

	input    textinput.Model
	browsing string
	status   string

	styles Styles
}

// NewModel creates the terminal model of panel.
func NewModel(panel *Panel) Model {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 60

	m := Model{
		panel:  panel,
		input:  ti,
		styles: DefaultStyles(),
	}

	for i, w := range panel.Form().Widgets {
		if w.Kind != Label {
			m.controls = append(m.controls, i)
		}
	}

	return m
}

// Focused returns the id of the focused widget.
func (m Model) Focused() string {
	if len(m.controls) == 0 {
		return ""
	}

	return m.panel.Form().Widgets[m.controls[m.focus]].ID
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.browsing != "" {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.panel.Message() != "" {
		m.panel.DismissMessage()

		return m, nil
	}

	if m.browsing != "" {
		return m.updateBrowse(key)
	}

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k", "shift+tab":
		if len(m.controls) > 0 {
			m.focus = (m.focus - 1 + len(m.controls)) % len(m.controls)
		}
	case "down", "j", "tab":
		if len(m.controls) > 0 {
			m.focus = (m.focus + 1) % len(m.controls)
		}
	case "enter", " ":
		return m.activate(m.Focused())
	}

	return m, nil
}

func (m Model) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.browsing = ""
		m.input.Blur()

		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		id := m.browsing
		m.browsing = ""
		m.input.Blur()

		var err error
		if id == ImportBrowse {
			err = m.panel.BrowseImport(value)
		} else {
			err = m.panel.BrowseExport(value)
		}

		m.setStatus(err, "")

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)

	return m, cmd
}

func (m *Model) setStatus(err error, ok string) {
	switch {
	case errors.Is(err, ErrWidgetDisabled):
		m.status = "Not available yet"
	case err != nil:
		m.status = ""
	default:
		m.status = ok
	}
}

func (m Model) activate(id string) (tea.Model, tea.Cmd) {
	if !m.panel.Enabled(id) {
		m.setStatus(ErrWidgetDisabled, "")

		return m, nil
	}

	var err error

	switch id {
	case ImportBrowse, ExportBrowse:
		m.browsing = id
		m.input.Placeholder = "path to an FBX or OBJ file"
		if id == ExportBrowse {
			m.input.Placeholder = "export folder"
		}
		m.input.SetValue("")
		cmd := m.input.Focus()

		return m, cmd
	case ExportCheck:
		err = m.panel.SetExportFollowsImport(!m.panel.Checked(id))
	case RemeshCheck:
		err = m.panel.SetRemesh(!m.panel.Checked(id))
	case OpenFileCheck:
		err = m.panel.SetOpenFolder(!m.panel.Checked(id))
	case UVShellCheck:
		err = m.panel.SetOverlay(!m.panel.Checked(id))
	case FixAssetPush:
		_, err = m.panel.Run()
	case ClearButton:
		err = m.panel.Clear()
		if err == nil {
			m.setStatus(nil, "Cleared")

			return m, nil
		}
	}

	m.setStatus(err, "")

	return m, nil
}

// View renders the panel.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.panel.Form().Title))
	b.WriteString("\n")

	focused := m.Focused()

	for _, w := range m.panel.Form().Widgets {
		style := m.styles.Normal
		if !m.panel.Enabled(w.ID) {
			style = m.styles.Disabled
		}

		cursor := "  "
		if w.Kind != Label && w.ID == focused {
			cursor = "> "
			if m.panel.Enabled(w.ID) {
				style = m.styles.Focused
			}
		}

		var line string

		switch w.Kind {
		case Button:
			line = "[ " + w.Label + " ]"
		case Checkbox:
			box := "[ ] "
			if m.panel.Checked(w.ID) {
				box = "[x] "
			}

			line = box + w.Label
		default:
			line = w.Label + ": " + m.styles.Label.Render(m.panel.Label(w.ID))
		}

		b.WriteString(cursor + style.Render(line) + "\n")
	}

	if m.browsing != "" {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.styles.Status.Render(m.status) + "\n")
	}

	if msg := m.panel.Message(); msg != "" {
		b.WriteString("\n" + m.styles.Modal.Render(msg) + "\n")
	}

	b.WriteString("\n" + m.styles.Disabled.Render("tab/arrows move, enter selects, q quits") + "\n")

	return b.String()
}

// Start runs the panel until the user quits.
func Start(panel *Panel, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(panel), opts...).Run()

	return errors.Wrap(err, "unable to run panel")
}
