/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Action is one reversible edit. Undo and Redo are run by the manager;
// neither may call back into it.
type Action struct {
	// Key groups actions into independent histories, e.g. one per board.
	Key   string
	Label string
	Undo  func()
	Redo  func()
	TS    time.Time
}

// Config controls depth caps and coalescing behavior.
type Config struct {
	// MaxPerKey limits the undo depth of one key (0 means unlimited).
	MaxPerKey int
	// MaxTotal is a cap across all keys; the oldest actions anywhere are pruned first.
	MaxTotal int
	// MinInterval merges an action into the previous one when both share key
	// and label and arrive within the interval.
	MinInterval time.Duration
}

// Manager provides in-memory undo/redo stacks per key.
// It is safe for concurrent use.
type Manager struct {
	cfg  Config
	mu   sync.Mutex
	undo map[string][]Action
	redo map[string][]Action
}

func NewManager(cfg Config) *Manager {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg, undo: make(map[string][]Action), redo: make(map[string][]Action)}
}

// Push records a. A burst of same-labelled actions coalesces into one entry
// that undoes to the state before the burst and redoes to the state after it.
// Any push clears the redo stack of the key.
func (m *Manager) Push(a Action) {
	if a.TS.IsZero() {
		a.TS = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.redo[a.Key] = nil
	stack := m.undo[a.Key]
	if n := len(stack); n > 0 {
		last := stack[n-1]
		if last.Label == a.Label && a.TS.Sub(last.TS) < m.cfg.MinInterval {
			last.Redo = a.Redo
			last.TS = a.TS
			stack[n-1] = last
			return
		}
	}
	m.undo[a.Key] = append(stack, a)
	m.enforceCapsLocked(a.Key)
}

// Undo reverts the latest action of key and moves it to the redo stack.
func (m *Manager) Undo(key string) (Action, bool) {
	m.mu.Lock()
	stack := m.undo[key]
	if len(stack) == 0 {
		m.mu.Unlock()
		return Action{}, false
	}
	a := stack[len(stack)-1]
	m.undo[key] = stack[:len(stack)-1]
	m.redo[key] = append(m.redo[key], a)
	m.mu.Unlock()
	if a.Undo != nil {
		a.Undo()
	}
	return a, true
}

// Redo re-applies the latest undone action of key.
func (m *Manager) Redo(key string) (Action, bool) {
	m.mu.Lock()
	r := m.redo[key]
	if len(r) == 0 {
		m.mu.Unlock()
		return Action{}, false
	}
	a := r[len(r)-1]
	m.redo[key] = r[:len(r)-1]
	m.undo[key] = append(m.undo[key], a)
	m.enforceCapsLocked(key)
	m.mu.Unlock()
	if a.Redo != nil {
		a.Redo()
	}
	return a, true
}

// CanUndo reports whether key has anything to undo.
func (m *Manager) CanUndo(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo[key]) > 0
}

// CanRedo reports whether key has anything to redo.
func (m *Manager) CanRedo(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo[key]) > 0
}

// Clear drops both stacks of key.
func (m *Manager) Clear(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.undo, key)
	delete(m.redo, key)
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (keys int, undoable int, redoable int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.undo {
		if len(v) > 0 {
			keys++
		}
		undoable += len(v)
	}
	for _, v := range m.redo {
		redoable += len(v)
	}
	return keys, undoable, redoable
}

func (m *Manager) enforceCapsLocked(key string) {
	if m.cfg.MaxPerKey > 0 {
		stack := m.undo[key]
		if extra := len(stack) - m.cfg.MaxPerKey; extra > 0 {
			m.undo[key] = append([]Action(nil), stack[extra:]...)
		}
	}
	for m.cfg.MaxTotal > 0 && m.totalLocked() > m.cfg.MaxTotal {
		oldestKey := ""
		found := false
		var oldestTS time.Time
		for k, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if !found || stack[0].TS.Before(oldestTS) {
				oldestKey, oldestTS, found = k, stack[0].TS, true
			}
		}
		if !found {
			break
		}
		m.undo[oldestKey] = m.undo[oldestKey][1:]
		if len(m.undo[oldestKey]) == 0 {
			delete(m.undo, oldestKey)
		}
	}
}

func (m *Manager) totalLocked() int {
	n := 0
	for _, v := range m.undo {
		n += len(v)
	}
	return n
}
