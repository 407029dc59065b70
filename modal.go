package uc

// ModalManager tracks the process-wide stack of modal windows and the
// list of non-modal active dialogs. The pump consults it before
// dispatch so input cannot reach windows behind the active modal.
type ModalManager struct {
	stack   []*Window
	dialogs []*Window
}

// NewModalManager creates an empty manager.
func NewModalManager() *ModalManager {
	return &ModalManager{}
}

// PushModal makes w the active modal. Pushing the active modal again
// is a no-op.
func (m *ModalManager) PushModal(w *Window) {
	if w == nil {
		return
	}
	if len(m.stack) > 0 && m.stack[len(m.stack)-1] == w {
		return
	}
	m.stack = append(m.stack, w)
	logger().Debug("modal pushed", "title", w.Title(), "depth", len(m.stack))
}

// PopModal removes w from the modal stack wherever it sits.
func (m *ModalManager) PopModal(w *Window) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.stack[i] == w {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return
		}
	}
}

// ActiveModal returns the top of the modal stack, or nil.
func (m *ModalManager) ActiveModal() *Window {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// IsModalActive reports whether any modal is active.
func (m *ModalManager) IsModalActive() bool { return len(m.stack) > 0 }

// AddDialog registers a non-modal active dialog.
func (m *ModalManager) AddDialog(w *Window) {
	for _, d := range m.dialogs {
		if d == w {
			return
		}
	}
	m.dialogs = append(m.dialogs, w)
}

// RemoveDialog unregisters a non-modal dialog.
func (m *ModalManager) RemoveDialog(w *Window) {
	for i, d := range m.dialogs {
		if d == w {
			m.dialogs = append(m.dialogs[:i], m.dialogs[i+1:]...)
			return
		}
	}
}

// Dialogs returns the non-modal active dialog list.
func (m *ModalManager) Dialogs() []*Window { return m.dialogs }

// HandleModalEvents decides the fate of an event before dispatch.
// With a modal active, input-like events whose target window is not
// the modal are dropped; focus-steal events additionally ask the pump
// to re-raise and refocus the modal.
func (m *ModalManager) HandleModalEvents(ev *Event, target *Window) (drop bool, reraise *Window) {
	modal := m.ActiveModal()
	if modal == nil {
		return false, nil
	}
	if !ev.Kind.IsInput() {
		return false, nil
	}
	if target == modal {
		return false, nil
	}
	if ev.Kind == EventWindowFocus {
		return true, modal
	}
	return true, nil
}

// windowDestroyed clears references to a window leaving the process.
func (m *ModalManager) windowDestroyed(w *Window) {
	m.PopModal(w)
	m.RemoveDialog(w)
}
