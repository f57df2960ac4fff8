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

// Package vfs implements the in-memory file tree: entries, the tree that owns
// them and the pure path resolution functions that walk it.
package vfs

import (
	"strings"
	"time"

	list "github.com/bahlo/generic-list-go"
)

// Kind tells files and directories apart.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "unknown"
	}
}

// Entry is a file or a directory node.
//
// A file owns its content and never has children; a directory owns an ordered
// list of children and never has content. The parent link is a non-owning
// back reference, nil for the root and for detached entries.
type Entry struct {
	name       string
	kind       Kind
	parent     *Entry
	modifiedAt time.Time

	content  string
	children *list.List[*Entry]

	// elem is this entry's node in parent.children, so detaching is O(1).
	elem *list.Element[*Entry]
}

// NewEntry constructs a detached entry stamped with the current time.
func NewEntry(name string, kind Kind) *Entry {
	return newEntry(name, kind, time.Now())
}

// NewFile constructs a detached, empty file.
func NewFile(name string) *Entry {
	return NewEntry(name, File)
}

// NewDirectory constructs a detached, empty directory.
func NewDirectory(name string) *Entry {
	return NewEntry(name, Directory)
}

func newEntry(name string, kind Kind, at time.Time) *Entry {
	e := &Entry{name: name, kind: kind, modifiedAt: at}
	if kind == Directory {
		e.children = list.New[*Entry]()
	}
	return e
}

func (e *Entry) Name() string { return e.name }

func (e *Entry) Kind() Kind { return e.kind }

func (e *Entry) IsDir() bool { return e.kind == Directory }

// Parent returns the containing directory, or nil for the root or a detached entry.
func (e *Entry) Parent() *Entry { return e.parent }

func (e *Entry) ModifiedAt() time.Time { return e.modifiedAt }

// Content returns a file's content; directories have none.
func (e *Entry) Content() string {
	if e.kind != File {
		return ""
	}
	return e.content
}

// Path builds the absolute path from the parent chain: the root's path is its
// own name and every other entry appends "/" + name to its parent's path. It is
// computed on every call so it can never go stale after a move.
func (e *Entry) Path() string {
	var names []string
	for n := e; n != nil; n = n.parent {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// Len returns the number of children of a directory.
func (e *Entry) Len() int {
	if e.children == nil {
		return 0
	}
	return e.children.Len()
}

// Children returns a snapshot of a directory's children in insertion order.
// Files return nil.
func (e *Entry) Children() []*Entry {
	if e.children == nil {
		return nil
	}
	out := make([]*Entry, 0, e.children.Len())
	for el := e.children.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// IsAncestorOf reports whether e is other or one of other's ancestors.
func (e *Entry) IsAncestorOf(other *Entry) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// FindChild scans dir's children in order and returns the first entry with
// exactly the given name and kind, or nil.
func FindChild(dir *Entry, name string, kind Kind) *Entry {
	if dir == nil || dir.children == nil {
		return nil
	}
	for el := dir.children.Front(); el != nil; el = el.Next() {
		if c := el.Value; c.kind == kind && c.name == name {
			return c
		}
	}
	return nil
}
