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
	"bytes"
	"testing"
	"time"
)

func snap(label, blob string, ts time.Time) Snapshot {
	return Snapshot{Label: label, Blob: []byte(blob), TS: ts}
}

func TestPushUndoRedo(t *testing.T) {
	m := NewManager(Config{})
	t0 := time.Now()
	m.Push(snap("create", "v1", t0))
	m.Push(snap("move", "v2", t0.Add(time.Second)))

	s, ok := m.Undo()
	if !ok || !bytes.Equal(s.Blob, []byte("v2")) {
		t.Fatalf("Undo returned %v %q", ok, s.Blob)
	}
	s, ok = m.Redo()
	if !ok || !bytes.Equal(s.Blob, []byte("v2")) {
		t.Fatalf("Redo returned %v %q", ok, s.Blob)
	}
	if _, ok := m.Redo(); ok {
		t.Fatalf("redo stack should be exhausted")
	}
}

func TestPushInvalidatesRedo(t *testing.T) {
	m := NewManager(Config{})
	t0 := time.Now()
	m.Push(snap("a", "v1", t0))
	m.Push(snap("b", "v2", t0.Add(time.Second)))
	if _, ok := m.Undo(); !ok {
		t.Fatalf("Undo failed")
	}
	m.Push(snap("c", "v3", t0.Add(2*time.Second)))
	if _, ok := m.Redo(); ok {
		t.Fatalf("new edit must clear the redo stack")
	}
}

func TestCoalescingSameLabelWithinInterval(t *testing.T) {
	m := NewManager(Config{MinInterval: time.Second})
	t0 := time.Now()
	m.Push(snap("drag", "p1", t0))
	m.Push(snap("drag", "p2", t0.Add(100*time.Millisecond)))
	m.Push(snap("drag", "p3", t0.Add(200*time.Millisecond)))
	_, depth, _ := m.Stats()
	if depth != 1 {
		t.Fatalf("rapid drags must coalesce, depth=%d", depth)
	}
	s, _ := m.Undo()
	if !bytes.Equal(s.Blob, []byte("p3")) {
		t.Fatalf("coalesced snapshot should be the latest, got %q", s.Blob)
	}
}

func TestDifferentLabelNotCoalesced(t *testing.T) {
	m := NewManager(Config{MinInterval: time.Second})
	t0 := time.Now()
	m.Push(snap("drag", "p1", t0))
	m.Push(snap("resize", "p2", t0.Add(10*time.Millisecond)))
	_, depth, _ := m.Stats()
	if depth != 2 {
		t.Fatalf("different labels must not coalesce, depth=%d", depth)
	}
}

func TestDepthCapDropsOldest(t *testing.T) {
	m := NewManager(Config{MaxDepth: 2})
	t0 := time.Now()
	m.Push(snap("a", "v1", t0))
	m.Push(snap("b", "v2", t0.Add(time.Second)))
	m.Push(snap("c", "v3", t0.Add(2*time.Second)))
	_, depth, _ := m.Stats()
	if depth != 2 {
		t.Fatalf("depth cap not enforced, depth=%d", depth)
	}
	s, _ := m.Undo()
	if !bytes.Equal(s.Blob, []byte("v3")) {
		t.Fatalf("newest entry must survive, got %q", s.Blob)
	}
}

func TestByteCapPrunes(t *testing.T) {
	m := NewManager(Config{MaxBytes: 10})
	t0 := time.Now()
	m.Push(snap("a", "0123456789", t0))
	m.Push(snap("b", "0123456789", t0.Add(time.Second)))
	total, depth, _ := m.Stats()
	if total > 10 || depth != 1 {
		t.Fatalf("byte cap not enforced: total=%d depth=%d", total, depth)
	}
}

func TestClear(t *testing.T) {
	m := NewManager(Config{})
	m.Push(snap("a", "v1", time.Now()))
	m.Clear()
	total, depth, redo := m.Stats()
	if total != 0 || depth != 0 || redo != 0 {
		t.Fatalf("Clear left state: %d %d %d", total, depth, redo)
	}
}
