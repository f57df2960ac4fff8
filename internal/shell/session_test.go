package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vfsh/internal/errors"
	"vfsh/internal/history"
	"vfsh/internal/vfs"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(Options{RootName: "root"})
}

// run submits each line, failing the test on any rejection, and returns the
// output of the last one.
func run(t *testing.T, s *Session, lines ...string) string {
	t.Helper()
	var out string
	for _, line := range lines {
		res := s.Submit(line)
		require.Truef(t, res.Accepted, "%q rejected: %v", line, res.Err)
		require.NoError(t, res.Err)
		out = res.Output
	}
	return out
}

func reject(t *testing.T, s *Session, line string, kind apperrors.Kind) *apperrors.Error {
	t.Helper()
	res := s.Submit(line)
	require.Falsef(t, res.Accepted, "%q should be rejected", line)
	var e *apperrors.Error
	require.ErrorAs(t, res.Err, &e)
	require.Equalf(t, kind, e.Kind, "%q: %v", line, res.Err)
	assert.Equal(t, res.Err.Error(), res.Text())
	return e
}

func TestMkdirCdPwd(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, "root", run(t, s, "pwd"))
	assert.Equal(t, "root/docs", run(t, s, "mkdir docs", "cd docs", "pwd"))
	assert.Equal(t, "root/docs/notes", run(t, s, "mkdir notes", "cd notes", "pwd"))
	assert.Equal(t, "root/docs/notes", s.CurrentPath())

	assert.Equal(t, "root/docs", run(t, s, "cd ..", "pwd"))
	assert.Equal(t, "root", run(t, s, "cd /", "pwd"))
	assert.Equal(t, "root/docs/notes", run(t, s, "cd /docs/notes", "pwd"))
}

func TestBlankLine(t *testing.T) {
	s := newTestSession(t)
	res := s.Submit("   ")
	assert.True(t, res.Accepted)
	assert.Empty(t, res.Output)
	assert.NoError(t, s.Validate(""))
}

func TestNameCollisionIsPerKind(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir a")

	e := reject(t, s, "mkdir a", apperrors.KindNameCollision)
	assert.Equal(t, "directory", e.EntryKind)

	run(t, s, "touch a")
	assert.Equal(t, "a/ a", run(t, s, "ls"))

	e = reject(t, s, "touch a", apperrors.KindNameCollision)
	assert.Equal(t, "file", e.EntryKind)
}

func TestSetContentAndPrint(t *testing.T) {
	s := newTestSession(t)
	out := run(t, s, "touch a.txt", "setContent a.txt hello world", "print a.txt")
	assert.Equal(t, "hello world", out)

	out = run(t, s, "setContent a.txt   spaced    out  ", "print a.txt")
	assert.Equal(t, "spaced out", out)

	assert.Equal(t, "", run(t, s, "touch b.md", "print b.md"))
}

func TestHiddenFiles(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "touch .hidden", "touch shown.txt")

	assert.Equal(t, "shown.txt", run(t, s, "ls"))
	assert.Equal(t, ".hidden shown.txt", run(t, s, "ls -a"))
	assert.Equal(t, "shown.txt", run(t, s, "ls -r"))
}

func TestListOrder(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir x", "mkdir y")

	assert.Equal(t, "y/ x/", run(t, s, "ls -r"))
	assert.Equal(t, "x/ y/", run(t, s, "ls"))
	assert.Equal(t, "x/ y/", run(t, s, "ls -a"))
}

func TestListWithPath(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir d", "touch d/one.txt", "touch d/two.txt", "touch d/.dot")

	assert.Equal(t, "one.txt two.txt", run(t, s, "ls d"))
	assert.Equal(t, "two.txt one.txt", run(t, s, "ls /d -r"))
	assert.Equal(t, "one.txt two.txt .dot", run(t, s, "ls d -a"))
	assert.Equal(t, "", run(t, s, "mkdir empty", "ls empty"))

	reject(t, s, "ls nope", apperrors.KindPathNotFound)
	reject(t, s, "ls -x", apperrors.KindInvalidListFlag)
	reject(t, s, "ls d -x", apperrors.KindInvalidListFlag)
	reject(t, s, "ls nope -a", apperrors.KindPathNotFound)
	reject(t, s, "ls d -a extra", apperrors.KindArityMismatch)
}

func TestRemove(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "touch a.txt", "touch b.txt", "rm a.txt")

	assert.Equal(t, "b.txt", run(t, s, "ls"))
	reject(t, s, "print a.txt", apperrors.KindPathNotFound)
	reject(t, s, "rm a.txt", apperrors.KindPathNotFound)

	run(t, s, "mkdir dir")
	reject(t, s, "rm dir", apperrors.KindPathNotFound)
}

func TestMove(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir src", "mkdir dst", "touch src/a.txt", "setContent src/a.txt payload")

	run(t, s, "mv src/a.txt dst")

	assert.Equal(t, "", run(t, s, "ls src"))
	assert.Equal(t, "a.txt", run(t, s, "ls dst"))
	assert.Equal(t, "payload", run(t, s, "print dst/a.txt"))
}

func TestMoveDirectoryKeepsDescendantPaths(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir a", "mkdir a/b", "mkdir box", "cd a/b")

	run(t, s, "mv /a/ /box")

	assert.Equal(t, "root/box/a/b", run(t, s, "pwd"))
	assert.Equal(t, "box/", run(t, s, "ls /"))
	assert.Equal(t, "a/", run(t, s, "ls /box"))
}

func TestMoveRejections(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir a", "mkdir a/b", "mkdir c", "touch f.txt", "touch c/f.txt")

	reject(t, s, "mv f.txt ..", apperrors.KindInvalidMoveTarget)
	reject(t, s, "mv a/ a", apperrors.KindInvalidMoveTarget)
	reject(t, s, "mv a/ a/b", apperrors.KindInvalidMoveTarget)
	reject(t, s, "mv f.txt c", apperrors.KindNameCollision)
	reject(t, s, "mv f.txt nowhere", apperrors.KindPathNotFound)
	reject(t, s, "mv missing.txt c", apperrors.KindPathNotFound)
	reject(t, s, "mv a c", apperrors.KindPathNotFound) // no trailing slash: looks for a file
	reject(t, s, "mv nowhere/f.txt c", apperrors.KindPathNotFound)
	reject(t, s, "mv f.txt", apperrors.KindArityMismatch)
	reject(t, s, "mv a/ c extra", apperrors.KindArityMismatch)
}

func TestCopyFile(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir backup", "touch a.txt", "setContent a.txt v1")

	run(t, s, "copy a.txt backup")

	assert.Equal(t, "backup/ a.txt", run(t, s, "ls"))
	assert.Equal(t, "a.txt", run(t, s, "ls backup"))
	assert.Equal(t, "v1", run(t, s, "print backup/a.txt"))

	run(t, s, "setContent backup/a.txt v2")
	assert.Equal(t, "v1", run(t, s, "print a.txt"))

	reject(t, s, "copy a.txt backup", apperrors.KindNameCollision)
	reject(t, s, "copy a.txt ..", apperrors.KindInvalidMoveTarget)
}

func TestCopyDirectoryIsDeep(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir proj", "mkdir proj/src", "touch proj/src/main.go", "setContent proj/src/main.go package main", "mkdir out")

	run(t, s, "copy proj/ out")

	assert.Equal(t, "src/", run(t, s, "ls out/proj"))
	assert.Equal(t, "package main", run(t, s, "print out/proj/src/main.go"))

	run(t, s, "rm out/proj/src/main.go", "touch out/proj/extra.txt")
	assert.Equal(t, "main.go", run(t, s, "ls proj/src"))
	assert.Equal(t, "src/", run(t, s, "ls proj"))
}

func TestCopyDirectoryIntoItself(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir a", "touch a/f.txt")

	run(t, s, "copy a/ a")

	assert.Equal(t, "f.txt a/", run(t, s, "ls a"))
	assert.Equal(t, "f.txt", run(t, s, "ls a/a"))
}

func TestChangeDirRejections(t *testing.T) {
	s := newTestSession(t)
	reject(t, s, "cd ..", apperrors.KindPathNotFound)
	reject(t, s, "cd nowhere", apperrors.KindPathNotFound)
	reject(t, s, "cd", apperrors.KindArityMismatch)

	run(t, s, "touch file.txt")
	reject(t, s, "cd file.txt", apperrors.KindPathNotFound)
	assert.Equal(t, "root", s.CurrentPath())
}

func TestCreateInNestedAndAbsolutePaths(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir a", "mkdir a/b", "touch /a/b/c.txt", "cd a")

	assert.Equal(t, "c.txt", run(t, s, "ls b"))
	run(t, s, "touch /top.txt")
	assert.Equal(t, "a/ top.txt", run(t, s, "ls /"))

	reject(t, s, "touch missing/x.txt", apperrors.KindPathNotFound)
	reject(t, s, "mkdir /missing/x", apperrors.KindPathNotFound)
}

func TestArity(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		line string
	}{
		{"pwd extra"},
		{"touch"},
		{"touch a.txt b.txt"},
		{"mkdir"},
		{"print"},
		{"rm a b"},
		{"setContent a.txt"},
		{"copy a"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			reject(t, s, tt.line, apperrors.KindArityMismatch)
		})
	}

	err := s.Validate("touch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: touch <path>")
}

func TestUnsupportedCommand(t *testing.T) {
	s := newTestSession(t)

	e := reject(t, s, "mkdr a", apperrors.KindUnsupportedCommand)
	assert.Contains(t, e.Error(), `did you mean "mkdir"?`)

	e = reject(t, s, "zzz", apperrors.KindUnsupportedCommand)
	assert.NotContains(t, e.Error(), "did you mean")

	reject(t, s, "PWD", apperrors.KindUnsupportedCommand)
}

func TestRejectionLeavesTreeUntouched(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "mkdir a", "touch a/f.txt", "setContent a/f.txt keep")

	for _, line := range []string{
		"mkdir a", "touch a/f.txt", "mv a/f.txt ..", "mv a/ a", "rm a/none.txt",
		"copy a/f.txt a", "cd ..", "touch a/bad:name.txt", "ls a -z",
	} {
		s.Submit(line)
	}

	assert.Equal(t, "a/", run(t, s, "ls"))
	assert.Equal(t, "f.txt", run(t, s, "ls a"))
	assert.Equal(t, "keep", run(t, s, "print a/f.txt"))
	assert.Equal(t, "root", s.CurrentPath())
}

func TestValidateIsDryRun(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Validate("mkdir a"))
	assert.Equal(t, "", run(t, s, "ls"))
	require.NoError(t, s.Validate("pwd"))
}

func TestHistoryRecall(t *testing.T) {
	s := newTestSession(t)
	for _, line := range []string{"ls", "pwd"} {
		s.Submit(line)
		s.History().Record(line)
	}

	got, _ := s.History().Recall(history.Older)
	assert.Equal(t, "ls", got)
	got, _ = s.History().Recall(history.Older)
	assert.Equal(t, "ls", got)
	got, _ = s.History().Recall(history.Newer)
	assert.Equal(t, "pwd", got)
}

func TestCommands(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t,
		[]string{"touch", "mkdir", "ls", "cd", "pwd", "print", "setContent", "rm", "mv", "copy"},
		s.CommandNames())
	require.Len(t, s.Commands(), 10)
	assert.Equal(t, "ls [<path>] [-r|-a]", s.Commands()[2].Usage)
}

func TestCustomRootAndExtensions(t *testing.T) {
	s := NewSession(Options{RootName: "home", Extensions: []string{".note"}})
	assert.Equal(t, "home", s.CurrentPath())

	run(t, s, "touch a.note")
	reject(t, s, "touch a.txt", apperrors.KindUnrecognizedExtension)
	assert.Equal(t, vfs.File, s.Tree().Root().Children()[0].Kind())
}
