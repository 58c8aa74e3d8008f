package app

// ─────────────────────────────────────────────────────────────
// Builder Handlers — pages, sections, drag and drop, preview
// ─────────────────────────────────────────────────────────────

import (
	"encoding/json"
	"fmt"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/builder"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/render"
)

// ── Pages ──────────────────────────────────────────────────

func (a *App) AddPage(name string) (string, error) {
	return a.builders.AddPage(a.ctx, name)
}

func (a *App) SelectPage(pageID string) {
	a.builders.SelectPage(a.ctx, pageID)
}

func (a *App) DeletePage(pageID string) error {
	return a.builders.DeletePage(a.ctx, pageID)
}

func (a *App) RenamePage(pageID, name string) error {
	return a.builders.RenamePage(a.ctx, pageID, name)
}

// ── Sections ───────────────────────────────────────────────

// Palette returns the registered element kinds for the sidebar.
func (a *App) Palette() []builder.ElementKind {
	return builder.Kinds()
}

func (a *App) InsertSection(kind string, index int) error {
	return a.builders.InsertSection(a.ctx, domain.SectionType(kind), index)
}

func (a *App) MoveSection(pageID string, from, to int) error {
	return a.builders.MoveSection(a.ctx, pageID, from, to)
}

// UpdateProps shallow-merges a JSON object into the props at path on the
// active page.
func (a *App) UpdateProps(path, propsJSON string) error {
	var props map[string]any
	if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
		return fmt.Errorf("props must be a JSON object: %w", err)
	}
	return a.builders.UpdateProps(a.ctx, path, props)
}

func (a *App) RemoveAtPath(path string) error {
	return a.builders.RemoveAtPath(a.ctx, path)
}

func (a *App) SetGlobalElement(kind, propsJSON string) error {
	var props map[string]any
	if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
		return fmt.Errorf("props must be a JSON object: %w", err)
	}
	return a.builders.SetGlobal(a.ctx, domain.SectionType(kind), props)
}

func (a *App) RemoveGlobalElement(kind string) error {
	return a.builders.RemoveGlobal(a.ctx, domain.SectionType(kind))
}

// ── Comments ───────────────────────────────────────────────

func (a *App) AddComment(pageID, text, author string, x, y float64, frame string) (string, error) {
	return a.builders.AddComment(a.ctx, pageID, text, author, x, y, frame)
}

func (a *App) DeleteComment(pageID, commentID string) error {
	return a.builders.DeleteComment(a.ctx, pageID, commentID)
}

// ── Drag and drop ──────────────────────────────────────────

func (a *App) RegisterDropZone(zoneID, pageID string, accepts []string) {
	caps := make([]builder.Capability, len(accepts))
	for i, c := range accepts {
		caps[i] = builder.Capability(c)
	}
	a.builders.RegisterDropZone(builder.DropZone{ID: zoneID, PageID: pageID, Accepts: caps})
}

func (a *App) UnregisterDropZone(zoneID string) {
	a.builders.UnregisterDropZone(zoneID)
}

func (a *App) DragBegin(payloadJSON string, x, y float64) error {
	var p builder.Payload
	if err := json.Unmarshal([]byte(payloadJSON), &p); err != nil {
		return fmt.Errorf("bad drag payload: %w", err)
	}
	a.builders.DragBegin(p, x, y)
	return nil
}

func (a *App) DragMove(x, y float64, hoverIndex int) {
	a.builders.DragMove(x, y, hoverIndex)
}

func (a *App) DragDrop(zoneID string) error {
	return a.builders.DragDrop(a.ctx, zoneID)
}

func (a *App) DragCancel() {
	a.builders.DragCancel()
}

// ── Preview ────────────────────────────────────────────────

// RenderPreview renders a page at a device breakpoint and returns HTML.
func (a *App) RenderPreview(pageID, frame string) (string, error) {
	return render.Page(a.builders.Document(), pageID, render.Frame(frame))
}

// RenderActivePreview renders the active page.
func (a *App) RenderActivePreview(frame string) (string, error) {
	return render.ActivePage(a.builders.Document(), render.Frame(frame))
}
