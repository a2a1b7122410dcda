//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"gowhiteboard/internal/config"
	"gowhiteboard/internal/crash"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/session"
	"gowhiteboard/internal/tools"
	"gowhiteboard/internal/version"
)

// Run opens a board window. cfgPath overrides the default config location when set.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	applog.Init(cfg.Logging.LogOptions())
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	cctx := &crash.Context{}
	defer crash.Recover(cctx)

	s, err := session.Open(cfg, session.Deps{})
	if err != nil {
		return fmt.Errorf("open board: %w", err)
	}
	defer s.Close()
	cctx.Describe = s.Describe

	fyneApp := app.NewWithID("gowhiteboard")
	w := fyneApp.NewWindow("Go Whiteboard")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", cfg.Board.CanvasWidth)
	winH := prefs.IntWithFallback("window.height", cfg.Board.CanvasHeight+40)
	if winW < 640 {
		winW = 640
	}
	if winH < 480 {
		winH = 480
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	board := NewBoardCanvas(s)
	status := widget.NewLabel("")
	updateStatus := func() { status.SetText(statusLine(s)) }
	board.OnChange = updateStatus
	updateStatus()

	selectTool := func(name string) func() {
		return func() {
			if err := s.Toolbox().Select(name); err != nil {
				l.Warn("select tool", slog.Any("err", err))
			}
			updateStatus()
		}
	}
	history := func(step func() bool) func() {
		return func() {
			step()
			board.Refresh()
			updateStatus()
		}
	}
	bar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), selectTool("draw")),
		widget.NewToolbarAction(theme.ContentClearIcon(), selectTool("erase")),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), selectTool("pan")),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), selectTool("select")),
		widget.NewToolbarAction(theme.FileTextIcon(), selectTool("text")),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), history(s.Toolbox().Undo)),
		widget.NewToolbarAction(theme.ContentRedoIcon(), history(s.Toolbox().Redo)),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { s.Toolbox().ZoomBy(1) }),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { s.Toolbox().ZoomBy(-1) }),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { exportDialog(w, l, "board.png", s.ExportPNG) }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { exportDialog(w, l, "board.pdf", s.ExportPDF) }),
	)

	w.SetContent(container.NewBorder(bar, status, nil, nil, board))
	w.Canvas().Focus(board)

	aboutItem := fyne.NewMenuItem("About", func() {
		dialog.ShowInformation("About", fmt.Sprintf("Go Whiteboard\nVersion %s", version.String()), w)
	})
	w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Help", aboutItem)))

	stop := board.Animate(updateStatus)
	defer stop()
	fyneApp.Lifecycle().SetOnStopped(stop)

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		stop()
		w.Close()
	})

	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

func loadConfig(path string) (config.AppConfig, error) {
	if strings.TrimSpace(path) != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func exportDialog(w fyne.Window, l *slog.Logger, name string, write func(string) error) {
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if uc == nil {
			return
		}
		path := uc.URI().Path()
		// the writers create the file themselves
		_ = uc.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, w)
			return
		}
		l.Info("exported", slog.String("path", path))
	}, w)
	d.SetFileName(name)
	d.Show()
}

func statusLine(s *session.Session) string {
	tool := "none"
	if t := s.Toolbox().Active(); t != nil {
		tool = t.Name()
	}
	return fmt.Sprintf("Tool: %s   Zoom: %.0f%%   Keys: %s draw, %s erase, %s pan, %s select, %s text",
		tool, s.Viewport().Zoom()*100, tools.KeyDraw, tools.KeyErase, tools.KeyPan, tools.KeySelect, tools.KeyText)
}
