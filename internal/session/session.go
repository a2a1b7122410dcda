/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session wires one board together: scene, camera, input routing,
// tools and history. Only one session may be open per process.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"gowhiteboard/internal/behavior"
	"gowhiteboard/internal/config"
	"gowhiteboard/internal/export"
	"gowhiteboard/internal/input"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/render"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/tools"
	"gowhiteboard/internal/undo"
	"gowhiteboard/internal/vector"
	"gowhiteboard/internal/viewport"
)

// ErrSessionActive is returned by Open while another session is open.
var ErrSessionActive = errors.New("session: another session is active")

// cursorZ keeps the pointer marker above anything the tools create.
const cursorZ = 1 << 30

var active atomic.Bool

// Deps are the collaborators a session does not build itself.
type Deps struct {
	// Clock drives viewport animations; time.Now when nil.
	Clock  func() time.Time
	Logger *slog.Logger
}

// Session is the live board. It is driven from a single goroutine, the UI
// thread or a script, and is not safe for concurrent use.
type Session struct {
	cfg     config.AppConfig
	log     *slog.Logger
	board   *scene.Board
	tree    *scene.Tree
	vp      *viewport.Viewport
	disp    *input.Dispatcher
	cursor  *scene.Cursor
	history *undo.Manager
	env     *tools.Env
	toolbox *tools.Toolbox
	closed  bool
}

// Open builds a board from cfg. It fails with ErrSessionActive until the
// previous session is closed.
func Open(cfg config.AppConfig, deps Deps) (*Session, error) {
	if !active.CompareAndSwap(false, true) {
		return nil, ErrSessionActive
	}
	l := deps.Logger
	if l == nil {
		l = applog.WithComponent("session")
	}

	vp := viewport.New(viewport.Config{
		CanvasSize: vector.P(float32(cfg.Board.CanvasWidth), float32(cfg.Board.CanvasHeight)),
		WorldSize:  vector.P(cfg.Board.WorldWidth, cfg.Board.WorldHeight),
		MaxZoom:    cfg.Board.MaxZoom,
		ZoomStep:   cfg.Board.ZoomStep,
		Clock:      deps.Clock,
		Logger:     l.With(slog.String("component", "viewport")),
	})
	board := scene.NewBoard(vp.WorldRect())
	board.Background = cfg.Board.BackgroundColor()
	board.GridSize = cfg.Board.GridSize
	tree := scene.NewTree(board)

	probe := cfg.Input.ProbeSize
	disp := input.NewDispatcher(tree, vp,
		input.WithProbeSize(vector.P(probe, probe)),
		input.WithLogger(l.With(slog.String("component", "input"))))

	cursor := scene.NewCursor(cfg.Input.CursorSize)
	cursor.SetZOrder(cursorZ)
	if err := tree.Add(behavior.Follower{Node: cursor}); err != nil {
		active.Store(false)
		return nil, fmt.Errorf("add cursor: %w", err)
	}

	history := undo.NewManager(undo.Config{MaxPerKey: cfg.Undo.Depth, MinInterval: cfg.Undo.CoalesceInterval()})
	eraser := cfg.Input.EraserSize
	env := &tools.Env{
		Tree:         tree,
		Viewport:     vp,
		History:      history,
		HistoryKey:   board.ID(),
		Log:          l.With(slog.String("component", "tools")),
		MinSpacing:   cfg.Path.MinSpacing,
		Pen:          cfg.Path.Pen(),
		EraserSize:   vector.P(eraser, eraser),
		ZoomDuration: cfg.Board.AnimationDuration(),
		Cursor:       cursor,
		CursorSize:   cfg.Input.CursorSize,
	}
	toolbox := tools.NewToolbox(env, disp,
		tools.NewDraw(env), tools.NewErase(env), tools.NewPan(env), tools.NewSelect(env), tools.NewText(env))

	l.Info("session opened",
		slog.String("board", board.ID()),
		slog.Any("canvas", vp.CanvasSize()),
		slog.Any("world", vp.WorldRect().Size()))

	return &Session{
		cfg:     cfg,
		log:     l,
		board:   board,
		tree:    tree,
		vp:      vp,
		disp:    disp,
		cursor:  cursor,
		history: history,
		env:     env,
		toolbox: toolbox,
	}, nil
}

// Close drops every binding and releases the single-session guard. It is
// safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.toolbox.Close()
	s.history.Clear(s.board.ID())
	active.Store(false)
	s.log.Info("session closed", slog.String("board", s.board.ID()))
}

func (s *Session) Config() config.AppConfig      { return s.cfg }
func (s *Session) Board() *scene.Board           { return s.board }
func (s *Session) Tree() *scene.Tree             { return s.tree }
func (s *Session) Viewport() *viewport.Viewport  { return s.vp }
func (s *Session) Dispatcher() *input.Dispatcher { return s.disp }
func (s *Session) Cursor() *scene.Cursor         { return s.cursor }
func (s *Session) Toolbox() *tools.Toolbox       { return s.toolbox }

// HandlePointer feeds a raw pointer event into the board.
func (s *Session) HandlePointer(raw input.RawPointer) { s.disp.HandlePointer(raw) }

// HandleKey feeds a raw key event into the board.
func (s *Session) HandleKey(raw input.RawKey) { s.disp.HandleKey(raw) }

// SetPointerInside shows the cursor while the pointer is over the canvas.
func (s *Session) SetPointerInside(inside bool) { s.cursor.Visible = inside }

// Resize follows the host canvas size.
func (s *Session) Resize(w, h float32) { s.vp.SetCanvasSize(vector.P(w, h)) }

// Add places n on top of everything the tools created so far.
func (s *Session) Add(n scene.Node) error {
	n.SetZOrder(s.env.NextZ())
	if err := s.tree.Add(n); err != nil {
		return fmt.Errorf("add %s: %w", n.Kind(), err)
	}
	return nil
}

// Tick advances camera animations; call it once per frame. It reports
// whether another frame is needed.
func (s *Session) Tick() bool { return s.vp.Tick() }

// Frame paints the board as the viewport sees it.
func (s *Session) Frame(surface render.Surface) { render.Frame(s.tree, s.vp, surface) }

// ExportOptions derives export settings from the config and the current canvas.
func (s *Session) ExportOptions() export.Options {
	sz := s.vp.CanvasSize()
	opt := export.Options{Width: int(sz.X), Height: int(sz.Y), Scale: s.cfg.Export.Scale}
	if bg, ok := s.cfg.Export.BackgroundColor(); ok {
		opt.Background = bg
	}
	return opt
}

// ExportPNG writes the visible board to path.
func (s *Session) ExportPNG(path string) error {
	if err := export.WritePNG(path, s.tree, s.vp, s.ExportOptions()); err != nil {
		s.log.Error("png export failed", slog.Any("err", err), slog.String("path", path))
		return err
	}
	s.log.Info("png exported", slog.String("path", path))
	return nil
}

// ExportPDF writes the visible board to path as vector PDF.
func (s *Session) ExportPDF(path string) error {
	if err := export.PDF(path, s.tree, s.vp, s.ExportOptions()); err != nil {
		s.log.Error("pdf export failed", slog.Any("err", err), slog.String("path", path))
		return err
	}
	s.log.Info("pdf exported", slog.String("path", path))
	return nil
}

// Describe is a one-line state summary for crash reports.
func (s *Session) Describe() string {
	tool := "none"
	if t := s.toolbox.Active(); t != nil {
		tool = t.Name()
	}
	_, undoable, redoable := s.history.Stats()
	return fmt.Sprintf("nodes=%d zoom=%.3g pos=%v tool=%s undo=%d redo=%d",
		s.tree.Len(), s.vp.Zoom(), s.vp.Position(), tool, undoable, redoable)
}
