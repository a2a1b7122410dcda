/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"gowhiteboard/internal/behavior"
	"gowhiteboard/internal/config"
	"gowhiteboard/internal/input"
	"gowhiteboard/internal/scene"
	"gowhiteboard/internal/session"
	"gowhiteboard/internal/vector"
)

const demoFrame = 16 * time.Millisecond

// stepClock only moves when the demo advances it, so a scripted run is deterministic.
type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

// runDemo scripts a short session headlessly and exports the result to out.
// The format follows the extension: .pdf for vector output, PNG otherwise.
func runDemo(cfg config.AppConfig, out string, l *slog.Logger) error {
	clock := &stepClock{now: time.Unix(0, 0)}
	s, err := session.Open(cfg, session.Deps{Clock: clock.Now, Logger: l})
	if err != nil {
		return err
	}
	defer s.Close()

	stroke := func(pts ...vector.Pt) {
		for i, p := range pts {
			kind := input.Move
			switch i {
			case 0:
				kind = input.Down
			case len(pts) - 1:
				kind = input.Up
			}
			s.HandlePointer(input.RawPointer{Kind: kind, Button: input.ButtonLeft, Canvas: p})
		}
	}
	key := func(k string, m input.Modifiers) {
		s.HandleKey(input.RawKey{Kind: input.KeyDown, Key: k, Mods: m})
	}

	stroke(vector.P(100, 200), vector.P(250, 200), vector.P(400, 200), vector.P(500, 200))
	stroke(vector.P(100, 320), vector.P(200, 280), vector.P(300, 360), vector.P(400, 300), vector.P(500, 340))

	// cut the first line in two
	key("e", input.Modifiers{})
	stroke(vector.P(300, 150), vector.P(300, 200), vector.P(300, 250))
	key("d", input.Modifiers{})

	// a caption the user can drag; the draw tool never sees the gesture
	caption := behavior.NewDraggable(scene.NewText(vector.P(100, 60), "gowhiteboard demo", nil))
	if err := s.Add(caption); err != nil {
		return err
	}
	stroke(vector.P(105, 65), vector.P(110, 85), vector.P(105, 105))

	// a note typed with the text tool, then the second line nudged with the select tool
	key("t", input.Modifiers{})
	s.HandlePointer(input.RawPointer{Kind: input.DoubleClick, Button: input.ButtonLeft, Canvas: vector.P(100, 420)})
	for _, r := range "typed with the text tool" {
		s.HandleKey(input.RawKey{Kind: input.KeyPress, Key: string(r)})
	}
	key("escape", input.Modifiers{})
	key("v", input.Modifiers{})
	stroke(vector.P(300, 360), vector.P(300, 380), vector.P(320, 390))
	key("escape", input.Modifiers{})
	key("d", input.Modifiers{})

	key("=", input.Modifiers{Ctrl: true})
	frames := 0
	for s.Viewport().Animating() {
		clock.now = clock.now.Add(demoFrame)
		s.Tick()
		frames++
	}
	l.Info("demo scripted", slog.Int("frames", frames), slog.String("state", s.Describe()))

	if strings.EqualFold(filepath.Ext(out), ".pdf") {
		return s.ExportPDF(out)
	}
	if err := s.ExportPNG(out); err != nil {
		return fmt.Errorf("demo export: %w", err)
	}
	return nil
}
