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

package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies a class of command rejection for programmatic handling.
type Kind string

const (
	KindUnsupportedCommand    Kind = "unsupported_command"
	KindArityMismatch         Kind = "arity_mismatch"
	KindInvalidNameSymbol     Kind = "invalid_name_symbol"
	KindUnrecognizedExtension Kind = "unrecognized_extension"
	KindPathNotFound          Kind = "path_not_found"
	KindNameCollision         Kind = "name_collision"
	KindInvalidListFlag       Kind = "invalid_list_flag"
	KindInvalidMoveTarget     Kind = "invalid_move_target"
)

// Error is a user-facing rejection of a submitted command.
type Error struct {
	Kind    Kind
	Command string
	Message string
	// EntryKind names the colliding kind ("file" or "directory") for KindNameCollision.
	EntryKind string
	Err       error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		if e.Err != nil {
			msg = e.Err.Error()
		} else {
			msg = string(e.Kind)
		}
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Command != "" {
		return e.Command + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error of the same kind, so sentinel-style checks work:
// errors.Is(err, &Error{Kind: KindPathNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a new error of the given kind for a command.
func New(kind Kind, command, message string) *Error {
	return &Error{Kind: kind, Command: command, Message: message}
}

// Newf is New with a format string.
func Newf(kind Kind, command, format string, args ...interface{}) *Error {
	return New(kind, command, fmt.Sprintf(format, args...))
}

// Wrap creates a new error of the given kind that wraps an underlying error.
func Wrap(kind Kind, command, message string, err error) *Error {
	return &Error{Kind: kind, Command: command, Message: message, Err: err}
}

// Collision reports that an entry of entryKind already exists.
func Collision(command, entryKind, name string) *Error {
	return &Error{
		Kind:      KindNameCollision,
		Command:   command,
		Message:   fmt.Sprintf("%s %q already exists", entryKind, name),
		EntryKind: entryKind,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
