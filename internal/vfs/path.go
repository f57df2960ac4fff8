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

import "strings"

// Separator delimits path segments.
const Separator = "/"

// SplitDirAndName splits off the last segment of path. A leading "/" stays
// with the directory part: "/a.txt" gives ("/", "a.txt"), "a.txt" gives ("", "a.txt").
func SplitDirAndName(path string) (dir, name string) {
	i := strings.LastIndex(path, Separator)
	switch {
	case i < 0:
		return "", path
	case i == 0:
		return Separator, path[1:]
	default:
		return path[:i], path[i+1:]
	}
}

// SplitDirNameAndKind is SplitDirAndName where a trailing "/" marks the last
// segment as a directory; otherwise it names a file.
func SplitDirNameAndKind(path string) (dir, name string, kind Kind) {
	kind = File
	if len(path) > 1 && strings.HasSuffix(path, Separator) {
		kind = Directory
		path = strings.TrimSuffix(path, Separator)
	}
	dir, name = SplitDirAndName(path)
	return dir, name, kind
}

// ResolveAnchor picks where resolution of path starts: the root for absolute
// paths, the current directory otherwise. Empty segments are dropped.
func (t *Tree) ResolveAnchor(path string) (segments []string, start *Entry) {
	start = t.current
	if strings.HasPrefix(path, Separator) {
		start = t.root
		path = strings.TrimPrefix(path, Separator)
	}
	segments = strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	return segments, start
}

// Route follows segments from start through child directories. No segments
// returns start itself; any missing hop returns nil. Nothing is modified.
func Route(start *Entry, segments []string) *Entry {
	node := start
	for _, seg := range segments {
		node = FindChild(node, seg, Directory)
		if node == nil {
			return nil
		}
	}
	return node
}

// Resolve returns the directory path names, or nil.
func (t *Tree) Resolve(path string) *Entry {
	segments, start := t.ResolveAnchor(path)
	return Route(start, segments)
}

// IsValidPath reports whether path names an existing directory.
func (t *Tree) IsValidPath(path string) bool {
	return t.Resolve(path) != nil
}

// Lookup resolves the directory part of path and finds the entry of the given
// kind named by its last segment. It returns the containing directory too.
func (t *Tree) Lookup(dirPath, name string, kind Kind) (entry, parent *Entry) {
	parent = t.Resolve(dirPath)
	if parent == nil {
		return nil, nil
	}
	return FindChild(parent, name, kind), parent
}
