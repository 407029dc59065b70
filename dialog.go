package uc

import "strings"

// DialogResult is the typed outcome delivered through a dialog's
// result callback.
type DialogResult int

const (
	ResultNone DialogResult = iota
	ResultOK
	ResultCancel
	ResultYes
	ResultNo
	ResultRetry
	ResultAbort
	ResultIgnore
	ResultApply
	ResultClose
	ResultHelp
)

// String returns the string representation of the result.
func (r DialogResult) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultCancel:
		return "Cancel"
	case ResultYes:
		return "Yes"
	case ResultNo:
		return "No"
	case ResultRetry:
		return "Retry"
	case ResultAbort:
		return "Abort"
	case ResultIgnore:
		return "Ignore"
	case ResultApply:
		return "Apply"
	case ResultClose:
		return "Close"
	case ResultHelp:
		return "Help"
	default:
		return "NoResult"
	}
}

// Dialog is a window that delivers a typed result through callbacks.
// Modal dialogs register with the modal manager so the pump gates
// input to other windows while they are open.
//
// Results arrive by callback, never by a blocking call, preserving
// the single-loop discipline.
type Dialog struct {
	*Window

	app   *App
	modal bool

	// OnClosing runs before destruction and may veto by returning
	// false.
	OnClosing func(result DialogResult) bool
	// OnResult delivers the final result once destruction proceeds.
	OnResult func(result DialogResult)
}

// NewDialog creates a dialog window. Modal dialogs take over input
// for the process until closed.
func (a *App) NewDialog(title string, width, height int, modal bool) (*Dialog, error) {
	win, err := a.CreateWindow(title, width, height)
	if err != nil {
		return nil, err
	}
	d := &Dialog{Window: win, app: a, modal: modal}
	if modal {
		a.modal.PushModal(win)
	} else {
		a.modal.AddDialog(win)
	}
	return d, nil
}

// CloseWithResult runs the closing veto, delivers the result, and
// closes the dialog window.
func (d *Dialog) CloseWithResult(result DialogResult) {
	if d.OnClosing != nil && !d.OnClosing(result) {
		return // vetoed
	}
	if d.modal {
		d.app.modal.PopModal(d.Window)
	} else {
		d.app.modal.RemoveDialog(d.Window)
	}
	if d.OnResult != nil {
		d.OnResult(result)
	}
	d.Window.Close()
}

// ConfirmDialog asks a question and reports which button closed it.
type ConfirmDialog struct {
	*Dialog
	Message string
	Buttons []DialogResult
}

// NewConfirmDialog creates a modal confirmation dialog. With no
// explicit buttons, OK and Cancel are offered.
func (a *App) NewConfirmDialog(title, message string, buttons ...DialogResult) (*ConfirmDialog, error) {
	d, err := a.NewDialog(title, 360, 140, true)
	if err != nil {
		return nil, err
	}
	if len(buttons) == 0 {
		buttons = []DialogResult{ResultOK, ResultCancel}
	}
	return &ConfirmDialog{Dialog: d, Message: message, Buttons: buttons}, nil
}

// InputDialog collects a line of text. The typed payload is delivered
// through OnText when the dialog closes with OK.
type InputDialog struct {
	*Dialog
	Prompt string
	value  string

	OnText func(text string)
}

// NewInputDialog creates a modal input dialog.
func (a *App) NewInputDialog(title, prompt, initial string) (*InputDialog, error) {
	d, err := a.NewDialog(title, 360, 120, true)
	if err != nil {
		return nil, err
	}
	return &InputDialog{Dialog: d, Prompt: prompt, value: initial}, nil
}

// Value returns the current text.
func (d *InputDialog) Value() string { return d.value }

// SetValue replaces the current text.
func (d *InputDialog) SetValue(v string) { d.value = v }

// Accept delivers the text and closes with OK.
func (d *InputDialog) Accept() {
	if d.OnText != nil {
		d.OnText(d.value)
	}
	d.CloseWithResult(ResultOK)
}

// FileDialog picks a file path. Paths are normalized to forward
// slashes at the API boundary; OS-specific separators are the
// platform's concern at the call site.
type FileDialog struct {
	*Dialog
	Directory string
	Filter    string
	selected  string

	OnFile func(path string)
}

// NewFileDialog creates a modal file dialog rooted at dir.
func (a *App) NewFileDialog(title, dir, filter string) (*FileDialog, error) {
	d, err := a.NewDialog(title, 520, 380, true)
	if err != nil {
		return nil, err
	}
	return &FileDialog{Dialog: d, Directory: NormalizePath(dir), Filter: filter}, nil
}

// Select records the chosen path, normalized.
func (d *FileDialog) Select(path string) { d.selected = NormalizePath(path) }

// Selected returns the chosen path.
func (d *FileDialog) Selected() string { return d.selected }

// Accept delivers the selected path and closes with OK.
func (d *FileDialog) Accept() {
	if d.OnFile != nil {
		d.OnFile(d.selected)
	}
	d.CloseWithResult(ResultOK)
}

// NormalizePath converts OS separators to forward slashes.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
