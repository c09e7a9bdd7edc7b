package shell

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/logging"
	"github.com/askiada/go-uvtool/pkg/naming"
	"github.com/askiada/go-uvtool/pkg/orchestrator"
)

var ErrWidgetDisabled = errors.New("widget disabled")

// PreconditionMessage is shown when a run is requested without both paths.
const PreconditionMessage = "Both an import and export path must be selected."

// Runner is the part of the orchestrator the panel drives.
type Runner interface {
	Run(req orchestrator.Request) (*orchestrator.RunRecord, error)
	Clear() error
	SetOverlayVisibility(visible bool) error
}

// Panel holds the state of the interactive panel and decides which widgets are enabled.
type Panel struct {
	form   *Form
	runner Runner
	logger *zap.Logger

	importPath string
	importDir  string
	exportPath string

	exportFollowsImport bool
	remesh              bool
	openFolder          bool
	overlay             bool
	// built is set by a successful run and reset by Clear.
	built bool

	labels  map[string]string
	message string
}

// NewPanel creates a panel laid out by form.
func NewPanel(form *Form, runner Runner, logger *zap.Logger) *Panel {
	return &Panel{
		form:   form,
		runner: runner,
		logger: logging.OrNop(logger),
		labels: make(map[string]string),
	}
}

// Form returns the form the panel is laid out by.
func (p *Panel) Form() *Form {
	return p.form
}

// Enabled reports whether the widget id can be used in the current state.
func (p *Panel) Enabled(id string) bool {
	hasImport := p.importPath != ""

	switch id {
	case ImportBrowse, RemeshCheck:
		return true
	case ExportCheck, OpenFileCheck:
		return hasImport
	case ExportBrowse, ExportLabel:
		return hasImport && !p.exportFollowsImport
	case FixAssetPush:
		return hasImport && p.exportPath != ""
	case ClearButton, UVShellCheck:
		return p.built
	default:
		return true
	}
}

// Checked returns the state of a checkbox.
func (p *Panel) Checked(id string) bool {
	switch id {
	case ExportCheck:
		return p.exportFollowsImport
	case RemeshCheck:
		return p.remesh
	case OpenFileCheck:
		return p.openFolder
	case UVShellCheck:
		return p.overlay
	default:
		return false
	}
}

// Label returns the text of a label widget.
func (p *Panel) Label(id string) string {
	return p.labels[id]
}

// Message returns the pending modal message, if any.
func (p *Panel) Message() string {
	return p.message
}

// DismissMessage closes the modal message.
func (p *Panel) DismissMessage() {
	p.message = ""
}

func (p *Panel) require(id string) error {
	if !p.Enabled(id) {
		return errors.Wrapf(ErrWidgetDisabled, "%s", id)
	}

	return nil
}

func (p *Panel) setExport(dir string) {
	p.exportPath = dir
	p.labels[ExportLabel] = "/" + naming.Base(dir)
}

// BrowseImport selects the file to import. An empty path means the dialog was cancelled. The export folder
// defaults to the folder of the import file.
func (p *Panel) BrowseImport(path string) error {
	if path == "" {
		return nil
	}

	p.importPath = path
	p.importDir = naming.Dir(path)
	p.labels[ImportFileLabel] = naming.Base(path)
	p.labels[AssetLabel] = naming.AssetName(path)
	p.setExport(p.importDir)

	p.logger.Info("Import path set", zap.String("path", path), zap.String("asset", p.labels[AssetLabel]))

	return nil
}

// BrowseExport selects the export folder. An empty dir means the dialog was cancelled.
func (p *Panel) BrowseExport(dir string) error {
	if err := p.require(ExportBrowse); err != nil {
		return err
	}

	if dir == "" {
		return nil
	}

	p.setExport(dir)
	p.logger.Info("Export path set", zap.String("path", dir))

	return nil
}

// SetExportFollowsImport makes the export folder mirror the folder of the import file.
func (p *Panel) SetExportFollowsImport(on bool) error {
	if err := p.require(ExportCheck); err != nil {
		return err
	}

	p.exportFollowsImport = on
	if on {
		p.setExport(p.importDir)
		p.logger.Info("Export path set", zap.String("path", p.exportPath))
	}

	return nil
}

// SetRemesh toggles the polygon reduction of the next run.
func (p *Panel) SetRemesh(on bool) error {
	p.remesh = on

	return nil
}

// SetOpenFolder toggles opening the export folder after the next run.
func (p *Panel) SetOpenFolder(on bool) error {
	if err := p.require(OpenFileCheck); err != nil {
		return err
	}

	p.openFolder = on

	return nil
}

// Run builds the networks for the selected file. Without both paths it shows PreconditionMessage instead.
func (p *Panel) Run() (*orchestrator.RunRecord, error) {
	if p.importPath == "" || p.exportPath == "" {
		p.message = PreconditionMessage
		p.logger.Warn("Run refused", zap.String("path", p.importPath), zap.String("export", p.exportPath))

		return nil, orchestrator.ErrPreconditionUnmet
	}

	record, err := p.runner.Run(orchestrator.Request{
		ImportPath:      p.importPath,
		ExportPath:      p.exportPath,
		ApplyReduction:  p.remesh,
		OpenFolderAfter: p.openFolder,
	})
	if err != nil {
		p.message = "Run failed: " + err.Error()

		return nil, err
	}

	p.built = true
	p.overlay = false
	p.labels[AssetLabel] = record.AssetName
	p.labels[TimeLabel] = record.Summary()

	return record, nil
}

// Clear destroys the networks of the last runs.
func (p *Panel) Clear() error {
	if err := p.require(ClearButton); err != nil {
		return err
	}

	err := p.runner.Clear()
	if err != nil {
		p.message = "Clear failed: " + err.Error()

		return err
	}

	p.built = false
	p.overlay = false

	return nil
}

// SetOverlay shows or hides the UV island overlay of the last run.
func (p *Panel) SetOverlay(on bool) error {
	if err := p.require(UVShellCheck); err != nil {
		return err
	}

	err := p.runner.SetOverlayVisibility(on)
	if err != nil {
		p.message = "Overlay failed: " + err.Error()

		return err
	}

	p.overlay = on

	return nil
}
