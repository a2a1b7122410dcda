/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package input

import "strings"

// Combo renders key plus modifiers in canonical form: modifiers in the order
// alt, ctrl, shift, then the lower-cased key. Meta (cmd on macOS) counts as ctrl.
func Combo(key string, m Modifiers) string {
	var parts []string
	if m.Alt {
		parts = append(parts, "alt")
	}
	if m.Ctrl || m.Meta {
		parts = append(parts, "ctrl")
	}
	if m.Shift {
		parts = append(parts, "shift")
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key != "" {
		parts = append(parts, key)
	}
	return strings.Join(parts, "+")
}

// ParseCombo normalizes a user-written chord such as "Shift+Cmd+Z".
func ParseCombo(s string) string {
	var m Modifiers
	key := ""
	for _, tok := range strings.Split(s, "+") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		switch tok {
		case "alt", "option":
			m.Alt = true
		case "ctrl", "control":
			m.Ctrl = true
		case "meta", "cmd", "command", "super":
			m.Meta = true
		case "shift":
			m.Shift = true
		default:
			key = tok
		}
	}
	// "ctrl++" splits into empty tokens
	if key == "" && strings.HasSuffix(s, "+") {
		key = "+"
	}
	return Combo(key, m)
}
