package app

// ─────────────────────────────────────────────────────────────
// AI Handlers — remote section-editing session
// ─────────────────────────────────────────────────────────────

// StartAISession opens a remote editing session bound to a page. On
// failure the editor keeps working without AI; the frontend shows the
// returned error once.
func (a *App) StartAISession(pageID string) error {
	return a.builders.StartAISession(a.ctx, pageID)
}

// AIGenerate submits a prompt; the bound page's layout is replaced with
// the session's result. Rejected while a previous submit is in flight.
func (a *App) AIGenerate(prompt string) error {
	return a.builders.AIGenerate(a.ctx, prompt)
}

// AIUndo reverts the remote session's last operation.
func (a *App) AIUndo() error {
	return a.builders.AIUndo(a.ctx)
}

// AIRedo re-applies the remote session's last undone operation.
func (a *App) AIRedo() error {
	return a.builders.AIRedo(a.ctx)
}
