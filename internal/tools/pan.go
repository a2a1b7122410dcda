/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tools

import (
	"gowhiteboard/internal/behavior"
	"gowhiteboard/internal/input"
)

// Pan scrolls the board with the left or middle button.
type Pan struct {
	env   *Env
	subs  subscriptions
	state behavior.PanState
}

func NewPan(env *Env) *Pan { return &Pan{env: env} }

func (t *Pan) Name() string { return "pan" }

func (t *Pan) Activate(d *input.Dispatcher) {
	handle := func(e *input.PointerEvent) {
		if e.Kind == input.Down && !t.env.onRoot(e) {
			return
		}
		behavior.HandlePan(t.env.Viewport, &t.state, e, input.ButtonLeft, input.ButtonMiddle)
	}
	t.subs.add(
		d.On(input.Down, handle),
		d.On(input.Move, handle),
		d.On(input.Up, handle),
	)
}

func (t *Pan) Deactivate() {
	t.state = behavior.PanState{}
	t.subs.release()
}
