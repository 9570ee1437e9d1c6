package ui

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/config"
	"VectorBoard/internal/editor"
	"VectorBoard/internal/export"
	"VectorBoard/internal/state"
)

// Options are the command line settings.
type Options struct {
	ConfigPath    string
	AutoConfigure bool
	GridSize      int
}

const (
	statusTimeout = 3 * time.Second
	leaveInterval = 100 * time.Millisecond
)

// statusBar shows the pointer position and transient messages.
type statusBar struct {
	pointer *widget.Label
	message *widget.Label
	mu      sync.Mutex
	seq     int
}

func newStatusBar() *statusBar {
	return &statusBar{
		pointer: widget.NewLabel("x: 0, y: 0"),
		message: widget.NewLabel(""),
	}
}

func (s *statusBar) Object() fyne.CanvasObject {
	return container.NewBorder(nil, nil, nil, s.pointer, s.message)
}

func (s *statusBar) SetPointer(p state.Point) {
	s.pointer.SetText(fmt.Sprintf("x: %d, y: %d", int(p.X), int(p.Y)))
}

// Flash shows msg until a newer message replaces it or the timeout runs out.
func (s *statusBar) Flash(msg string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()
	s.message.SetText(msg)
	time.AfterFunc(statusTimeout, func() {
		fyne.Do(func() {
			s.mu.Lock()
			current := s.seq == seq
			s.mu.Unlock()
			if current {
				s.message.SetText("")
			}
		})
	})
}

type boardApp struct {
	opts    Options
	app     fyne.App
	window  fyne.Window
	board   *BoardWidget
	toolbar *Toolbar
	status  *statusBar

	menu     *fyne.MainMenu
	gridItem *fyne.MenuItem
}

func RunApp(opts Options) error {
	cfg := editor.DefaultConfig()
	if opts.GridSize != 0 {
		cfg.Grid.CellSize = opts.GridSize
	}
	board, err := NewBoardWidget(cfg)
	if err != nil {
		return fmt.Errorf("create board: %w", err)
	}

	myApp := app.New()
	myWindow := myApp.NewWindow("VectorBoard")
	myWindow.Resize(fyne.NewSize(1024, 768))

	a := &boardApp{
		opts:   opts,
		app:    myApp,
		window: myWindow,
		board:  board,
		status: newStatusBar(),
	}
	a.toolbar = NewToolbar(board, myWindow)
	a.toolbar.OnGridChanged = a.syncGridItem

	board.OnStatus = a.status.Flash
	board.OnPointer = a.status.SetPointer
	board.OnChange = a.toolbar.Sync

	a.restoreViewport()
	a.buildMenu()
	a.bindKeys()

	content := container.NewBorder(a.toolbar.Object(), a.status.Object(), nil, nil, board)
	myWindow.SetContent(content)

	done := make(chan struct{})
	myWindow.SetOnClosed(func() { close(done) })
	go a.watchPointer(done)

	myWindow.ShowAndRun()
	return nil
}

// watchPointer clears the hover preview once the pointer has left the
// canvas. Leave events alone are not reliable enough for that.
func (a *boardApp) watchPointer(done <-chan struct{}) {
	ticker := time.NewTicker(leaveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			fyne.Do(func() {
				if !a.board.Hovering() {
					a.board.Do(func(e *editor.Editor) []editor.Event { return e.Leave() })
				}
			})
		}
	}
}

// restoreViewport applies the stored canvas size. It only reads the
// settings file; the size is written back from the menu or Ctrl+A.
func (a *boardApp) restoreViewport() {
	if a.opts.AutoConfigure {
		log.Printf("[UI] Ignoring stored canvas size")
		return
	}
	cfg, err := config.Load(a.opts.ConfigPath)
	switch {
	case errors.Is(err, config.ErrNotFound):
		log.Printf("[UI] No stored canvas size, use Auto-Configure to save one")
		return
	case err != nil:
		log.Printf("[UI] %v", err)
		return
	}
	if !cfg.HasViewport() {
		log.Printf("[UI] %s has no canvas size", a.opts.ConfigPath)
		return
	}
	a.board.SetMinCanvasSize(cfg.MaxViewportSize[0], cfg.MaxViewportSize[1])
}

// autoConfigure stores the current canvas size as the viewport.
func (a *boardApp) autoConfigure() {
	w, h := a.board.CanvasSize()
	if w <= 0 || h <= 0 {
		return
	}
	cfg := &config.Config{MaxViewportSize: [2]int{w, h}}
	if err := config.Save(a.opts.ConfigPath, cfg); err != nil {
		log.Printf("[UI] Auto-configure failed: %v", err)
		dialog.ShowError(err, a.window)
		return
	}
	a.status.Flash(fmt.Sprintf("Canvas size saved: %dx%d", w, h))
}

func (a *boardApp) do(op func(*editor.Editor) []editor.Event) func() {
	return func() { a.board.Do(op) }
}

func (a *boardApp) newDrawing() {
	a.board.Do(func(e *editor.Editor) []editor.Event { return e.NewDrawing() })
	a.toolbar.Sync()
}

func (a *boardApp) copyShape() {
	var copied *state.Shape
	a.board.Do(func(e *editor.Editor) []editor.Event {
		events := e.Copy()
		if len(events) > 0 {
			copied = e.Copied()
		}
		return events
	})
	if copied == nil {
		return
	}
	if err := clipboard.WriteAll(export.ShapeSVG(copied)); err != nil {
		log.Printf("[UI] System clipboard unavailable: %v", err)
	}
}

func (a *boardApp) paste() {
	p := a.board.Pointer()
	a.board.Do(func(e *editor.Editor) []editor.Event { return e.Paste(p) })
}

func (a *boardApp) toggleFullScreen() {
	a.window.SetFullScreen(!a.window.FullScreen())
}

func (a *boardApp) syncGridItem(enabled bool) {
	if a.gridItem == nil || a.gridItem.Checked == enabled {
		return
	}
	a.gridItem.Checked = enabled
	a.menu.Refresh()
}

var (
	shortcutUndo = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutAuto = &desktop.CustomShortcut{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierShortcutDefault}
)

func (a *boardApp) buildMenu() {
	undo := fyne.NewMenuItem("Undo (Ctrl+Z)", a.do((*editor.Editor).Undo))
	copyItem := fyne.NewMenuItem("Copy (Ctrl+C)", a.copyShape)
	pasteItem := fyne.NewMenuItem("Paste (Ctrl+V)", a.paste)
	fullScreen := fyne.NewMenuItem("Full Screen (F11)", a.toggleFullScreen)
	auto := fyne.NewMenuItem("Auto-Configure Canvas Size (Ctrl+A)", a.autoConfigure)

	a.gridItem = fyne.NewMenuItem("Show Grid", func() {
		a.toolbar.SetGrid(!a.board.Config().Grid.Enabled)
		a.toolbar.Sync()
	})
	a.gridItem.Checked = a.board.Config().Grid.Enabled

	quit := fyne.NewMenuItem("Quit", a.app.Quit)
	quit.IsQuit = true

	a.menu = fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("New", a.newDrawing),
			fyne.NewMenuItem("Reset", a.do((*editor.Editor).Clear)),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Open SVG...", a.showOpenSVG),
			fyne.NewMenuItem("Load Image...", a.showLoadImage),
			fyne.NewMenuItem("Save Image...", a.showSaveImage),
			fyne.NewMenuItemSeparator(),
			fullScreen,
			auto,
			fyne.NewMenuItemSeparator(),
			quit,
		),
		fyne.NewMenu("Edit",
			undo,
			copyItem,
			pasteItem,
			fyne.NewMenuItem("Delete", a.do((*editor.Editor).Delete)),
		),
		fyne.NewMenu("Image", a.gridItem),
		fyne.NewMenu("Help",
			fyne.NewMenuItem("About", func() {
				dialog.ShowInformation("About VectorBoard",
					"VectorBoard\nA vector drawing board.\n\nRight-drag moves a shape, arrow keys rotate it while held.", a.window)
			}),
		),
	)
	a.window.SetMainMenu(a.menu)
}

func (a *boardApp) bindKeys() {
	c := a.window.Canvas()
	c.AddShortcut(shortcutUndo, func(fyne.Shortcut) { a.board.Do((*editor.Editor).Undo) })
	c.AddShortcut(shortcutAuto, func(fyne.Shortcut) { a.autoConfigure() })
	c.AddShortcut(&fyne.ShortcutCopy{}, func(fyne.Shortcut) { a.copyShape() })
	c.AddShortcut(&fyne.ShortcutPaste{}, func(fyne.Shortcut) { a.paste() })

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete:
			a.board.Do((*editor.Editor).Delete)
		case fyne.KeyLeft:
			a.board.Do(func(e *editor.Editor) []editor.Event { return e.Rotate(false) })
		case fyne.KeyRight:
			a.board.Do(func(e *editor.Editor) []editor.Event { return e.Rotate(true) })
		case fyne.KeyF11:
			a.toggleFullScreen()
		}
	})
}
