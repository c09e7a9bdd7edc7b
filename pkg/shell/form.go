// Package shell is the interactive front-end of the tool: a panel laid out by a form definition, its state
// model and a terminal renderer.
package shell

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrResourceMissing    = errors.New("form definition not found")
	ErrResourceUnreadable = errors.New("form definition unreadable")
)

// WidgetKind is how a widget is rendered and activated.
type WidgetKind string

const (
	Button   WidgetKind = "button"
	Checkbox WidgetKind = "checkbox"
	Label    WidgetKind = "label"
)

// Widget identifiers the panel binds to.
const (
	ImportBrowse    = "importBrowse"
	ExportBrowse    = "exportBrowse"
	ExportCheck     = "exportCheck"
	RemeshCheck     = "remeshCheck"
	OpenFileCheck   = "openFileCheck"
	FixAssetPush    = "fixAssetPush"
	ClearButton     = "clearButton"
	UVShellCheck    = "uvShellCheck"
	ImportFileLabel = "importFileLabel"
	ExportLabel     = "exportLabel"
	AssetLabel      = "assetLabel"
	TimeLabel       = "timeLabel"
)

var requiredWidgets = map[string]WidgetKind{
	ImportBrowse:    Button,
	ExportBrowse:    Button,
	ExportCheck:     Checkbox,
	RemeshCheck:     Checkbox,
	OpenFileCheck:   Checkbox,
	FixAssetPush:    Button,
	ClearButton:     Button,
	UVShellCheck:    Checkbox,
	ImportFileLabel: Label,
	ExportLabel:     Label,
	AssetLabel:      Label,
	TimeLabel:       Label,
}

// Widget is a single control of the form.
type Widget struct {
	ID    string     `yaml:"id"`
	Kind  WidgetKind `yaml:"kind"`
	Label string     `yaml:"label"`
}

// Form is the panel layout. Widgets are rendered in order.
type Form struct {
	Title   string   `yaml:"title"`
	Widgets []Widget `yaml:"widgets"`
}

// LoadForm reads and checks the form definition at path.
func LoadForm(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrResourceMissing, "%s", path)
		}

		return nil, errors.Wrapf(ErrResourceUnreadable, "%s: %v", path, err)
	}

	form, err := ParseForm(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return form, nil
}

// ParseForm decodes a form definition and checks every widget the panel binds to is declared with the right kind.
func ParseForm(data []byte) (*Form, error) {
	form := &Form{}

	err := yaml.Unmarshal(data, form)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceUnreadable, "%v", err)
	}

	seen := make(map[string]struct{}, len(form.Widgets))
	for _, w := range form.Widgets {
		if _, ok := seen[w.ID]; ok {
			return nil, errors.Wrapf(ErrResourceUnreadable, "widget %q declared twice", w.ID)
		}

		seen[w.ID] = struct{}{}

		if kind, ok := requiredWidgets[w.ID]; ok && kind != w.Kind {
			return nil, errors.Wrapf(ErrResourceUnreadable, "widget %q must be a %s, got %q", w.ID, kind, w.Kind)
		}
	}

	for id := range requiredWidgets {
		if _, ok := seen[id]; !ok {
			return nil, errors.Wrapf(ErrResourceUnreadable, "widget %q missing", id)
		}
	}

	if form.Title == "" {
		form.Title = "Remesh and UV Tool"
	}

	return form, nil
}

// Widget returns the widget declared with id.
func (f *Form) Widget(id string) (Widget, bool) {
	for _, w := range f.Widgets {
		if w.ID == id {
			return w, true
		}
	}

	return Widget{}, false
}
