package ui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"VectorBoard/internal/editor"
	"VectorBoard/internal/export"
	"VectorBoard/internal/state"
)

// showSaveImage asks for a target and writes the committed drawing there.
func (a *boardApp) showSaveImage() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		path, err := a.saveImage(writer)
		if err != nil {
			log.Printf("[UI] Save failed: %v", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.status.Flash(fmt.Sprintf("Saved %s", path))
	}, a.window)
	d.SetFileName("drawing.png")
	d.SetFilter(storage.NewExtensionFileFilter(export.Extensions()))
	d.Show()
}

// saveImage encodes into writer by its extension. A name without one is
// written as PNG under the name with ".png" appended instead.
func (a *boardApp) saveImage(writer fyne.URIWriteCloser) (string, error) {
	w, h := a.board.CanvasSize()
	scene := a.board.ExportScene()
	uri := writer.URI()

	if uri.Extension() == "" {
		writer.Close()
		if uri.Scheme() != "file" {
			return "", fmt.Errorf("save %s: %w", uri, export.ErrUnsupportedFormat)
		}
		if err := os.Remove(uri.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[UI] Could not remove placeholder %s: %v", uri.Path(), err)
		}
		return export.Save(uri.Path(), w, h, scene)
	}

	err := export.Encode(writer, uri.Extension(), w, h, scene)
	if cerr := writer.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("save %s: %w", uri.Name(), err)
	}
	log.Printf("[UI] Saved %s", uri)
	return uri.Name(), nil
}

// showOpenSVG imports the shapes of an SVG file on top of the drawing.
func (a *boardApp) showOpenSVG() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		shapes, err := export.ReadSVG(reader)
		if err != nil {
			log.Printf("[UI] Open failed: %v", err)
			dialog.ShowError(fmt.Errorf("open %s: %w", reader.URI().Name(), err), a.window)
			return
		}
		a.board.Do(func(e *editor.Editor) []editor.Event { return e.Import(shapes) })
		a.status.Flash(fmt.Sprintf("Loaded %d shapes from %s", len(shapes), reader.URI().Name()))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".svg"}))
	d.Show()
}

// showLoadImage adds a picture to the drawing at the canvas origin.
func (a *boardApp) showLoadImage() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		name := reader.URI().Name()
		if err := a.loadImage(reader); err != nil {
			log.Printf("[UI] Load image failed: %v", err)
			dialog.ShowError(fmt.Errorf("load %s: %w", name, err), a.window)
			return
		}
		a.status.Flash(fmt.Sprintf("Loaded %s", name))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(export.ImageExtensions()))
	d.Show()
}

// loadImage decodes r and commits it as one undoable shape.
func (a *boardApp) loadImage(r io.Reader) error {
	s, err := export.ReadImage(r, state.Point{})
	if err != nil {
		return err
	}
	a.board.Do(func(e *editor.Editor) []editor.Event { return e.Import([]*state.Shape{s}) })
	return nil
}
