package app

// ─────────────────────────────────────────────────────────────
// History Handlers — undo/redo and snapshots
// ─────────────────────────────────────────────────────────────

import "github.com/ahtisham02/hyperpitch-io-sub002/internal/storage"

func (a *App) Undo() (string, error) {
	return a.builders.Undo(a.ctx)
}

func (a *App) Redo() (string, error) {
	return a.builders.Redo(a.ctx)
}

func (a *App) CanUndo() bool {
	return a.builders.CanUndo()
}

func (a *App) CanRedo() bool {
	return a.builders.CanRedo()
}

func (a *App) Checkpoint(label string) (*storage.Snapshot, error) {
	return a.builders.Checkpoint(label)
}

func (a *App) ListSnapshots() ([]storage.Snapshot, error) {
	return a.builders.ListSnapshots()
}

func (a *App) RestoreSnapshot(snapshotID string) error {
	return a.builders.RestoreSnapshot(a.ctx, snapshotID)
}
