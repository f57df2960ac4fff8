// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package vfs

import (
	"fmt"
	"time"

	list "github.com/bahlo/generic-list-go"
)

// DefaultRootName is the name (and therefore the path) of the root directory.
const DefaultRootName = "root"

// Tree owns the entry graph through the root and keeps the current directory.
//
// Tree is not safe for concurrent use; a session drives it from one goroutine.
type Tree struct {
	root    *Entry
	current *Entry
	now     func() time.Time
}

// Option configures a Tree.
type Option func(*Tree)

// WithClock replaces time.Now for timestamps (for testing).
func WithClock(now func() time.Time) Option {
	return func(t *Tree) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTree creates a tree with an empty root directory as the current directory.
func NewTree(rootName string, opts ...Option) *Tree {
	if rootName == "" {
		rootName = DefaultRootName
	}
	t := &Tree{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	t.root = newEntry(rootName, Directory, t.now())
	t.current = t.root
	return t
}

func (t *Tree) Root() *Entry { return t.root }

func (t *Tree) Current() *Entry { return t.current }

// SetCurrent moves the current directory. dir must be a directory attached
// under this tree's root.
func (t *Tree) SetCurrent(dir *Entry) {
	if dir == nil || !dir.IsDir() {
		panic("vfs: current directory must be a directory")
	}
	if !t.root.IsAncestorOf(dir) {
		panic(fmt.Sprintf("vfs: %q is not reachable from root", dir.Path()))
	}
	t.current = dir
}

// Create constructs a detached entry stamped with the tree's clock.
func (t *Tree) Create(name string, kind Kind) *Entry {
	return newEntry(name, kind, t.now())
}

// Attach appends entry to the tail of parent's children and points entry's
// parent link at it. Siblings keep their order.
func (t *Tree) Attach(parent, entry *Entry) {
	if parent == nil || !parent.IsDir() {
		panic("vfs: attach target is not a directory")
	}
	if entry.parent != nil || entry.elem != nil {
		panic(fmt.Sprintf("vfs: %q is already attached", entry.Path()))
	}
	entry.parent = parent
	entry.elem = parent.children.PushBack(entry)
	parent.modifiedAt = t.now()
}

// Detach unlinks entry from its parent's children and returns it. The entry
// keeps its own subtree and can be attached somewhere else.
func (t *Tree) Detach(entry *Entry) *Entry {
	parent := entry.parent
	if parent == nil {
		panic(fmt.Sprintf("vfs: %q is not attached", entry.name))
	}
	parent.children.Remove(entry.elem)
	entry.parent = nil
	entry.elem = nil
	parent.modifiedAt = t.now()
	return entry
}

// Move detaches entry and attaches it under dst, stamping the moved entry.
func (t *Tree) Move(entry, dst *Entry) {
	if entry.IsAncestorOf(dst) {
		panic(fmt.Sprintf("vfs: cannot move %q into itself", entry.Path()))
	}
	t.Detach(entry)
	t.Attach(dst, entry)
	entry.modifiedAt = t.now()
}

// SetContent overwrites a file's content.
func (t *Tree) SetContent(file *Entry, content string) {
	if file.kind != File {
		panic(fmt.Sprintf("vfs: %q is not a file", file.Path()))
	}
	file.content = content
	file.modifiedAt = t.now()
}

// Clone returns a detached deep copy of e. Names, content and timestamps are
// copied; a directory gets an independent copy of its whole subtree.
func Clone(e *Entry) *Entry {
	c := &Entry{
		name:       e.name,
		kind:       e.kind,
		modifiedAt: e.modifiedAt,
		content:    e.content,
	}
	if e.children != nil {
		c.children = list.New[*Entry]()
		for el := e.children.Front(); el != nil; el = el.Next() {
			child := Clone(el.Value)
			child.parent = c
			child.elem = c.children.PushBack(child)
		}
	}
	return c
}

// Walk visits e and its descendants depth-first in child order. Returning a
// non-nil error from fn stops the walk.
func Walk(e *Entry, fn func(entry *Entry, depth int) error) error {
	return walk(e, 0, fn)
}

func walk(e *Entry, depth int, fn func(*Entry, int) error) error {
	if err := fn(e, depth); err != nil {
		return err
	}
	if e.children == nil {
		return nil
	}
	for el := e.children.Front(); el != nil; el = el.Next() {
		if err := walk(el.Value, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
